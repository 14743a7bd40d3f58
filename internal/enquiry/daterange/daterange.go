// Package daterange resolves listing date-range selections into concrete
// bounds. Resolution is pure: the reference time is always injected so the
// same selection resolves identically for a whole request.
package daterange

import (
	"fmt"
	"time"
)

// Kind classifies a resolved range.
type Kind string

const (
	// KindPreset is one of the relative month windows.
	KindPreset Kind = "preset"
	// KindCustom is an explicit from/to pair.
	KindCustom Kind = "custom"
	// KindAll means no date restriction at all.
	KindAll Kind = "all"
)

// Selection values accepted from the client.
const (
	SelectionAll      = "all"
	Selection3Months  = "3months"
	Selection6Months  = "6months"
	Selection12Months = "12months"
	SelectionCustom   = "custom"
)

// presetMonths lists the relative windows in ascending size, the order
// reclassification checks them.
var presetMonths = []int{3, 6, 12}

// inputLayout is the wire format for custom bounds.
const inputLayout = "2006-01-02"

// displayLayout is the label format for custom bounds.
const displayLayout = "02/01/2006"

// reclassifyToleranceDays is how many calendar days a custom bound may
// drift from a preset's bound and still be treated as that preset.
const reclassifyToleranceDays = 1

// Range is a resolved date window. From and To are inclusive start-of-day
// dates; consumers derive the exclusive upper bound as To plus one day.
// KindAll carries nil bounds.
type Range struct {
	From  *time.Time
	To    *time.Time
	Kind  Kind
	Label string
}

// Resolve turns a range selection into concrete bounds relative to now in
// the given location. Unknown selections fall back to the 12 month preset.
// Custom bounds are parsed leniently: an unparsable side simply drops that
// bound, and a custom pair hugging a preset's bounds (within one day each
// side) is upgraded to that preset.
func Resolve(now time.Time, loc *time.Location, selection, fromStr, toStr string) Range {
	if loc == nil {
		loc = time.UTC
	}
	today := startOfDay(now.In(loc))

	switch selection {
	case SelectionAll:
		return Range{Kind: KindAll, Label: "in All Time"}
	case SelectionCustom:
		return resolveCustom(today, loc, fromStr, toStr)
	case Selection3Months:
		return preset(today, 3)
	case Selection6Months:
		return preset(today, 6)
	default:
		return preset(today, 12)
	}
}

func resolveCustom(today time.Time, loc *time.Location, fromStr, toStr string) Range {
	from := parseDate(fromStr, loc)
	to := parseDate(toStr, loc)

	if from == nil && to == nil {
		return Range{Kind: KindAll, Label: "in All Time"}
	}

	if from != nil && to != nil {
		for _, months := range presetMonths {
			p := preset(today, months)
			if withinTolerance(*from, *p.From) && withinTolerance(*to, *p.To) {
				return p
			}
		}
	}

	r := Range{From: from, To: to, Kind: KindCustom}
	switch {
	case from != nil && to != nil:
		r.Label = fmt.Sprintf("between %s and %s", from.Format(displayLayout), to.Format(displayLayout))
	case from != nil:
		r.Label = fmt.Sprintf("from %s", from.Format(displayLayout))
	default:
		r.Label = fmt.Sprintf("until %s", to.Format(displayLayout))
	}
	return r
}

func preset(today time.Time, months int) Range {
	from := today.AddDate(0, -months, 0)
	to := today
	return Range{
		From:  &from,
		To:    &to,
		Kind:  KindPreset,
		Label: fmt.Sprintf("in the last %d months", months),
	}
}

// withinTolerance compares calendar dates, not wall-clock durations, so a
// one-day drift across a DST transition still counts as one day.
func withinTolerance(a, b time.Time) bool {
	d := dayDelta(a, b)
	if d < 0 {
		d = -d
	}
	return d <= reclassifyToleranceDays
}

func dayDelta(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ua.Sub(ub) / (24 * time.Hour))
}

// parseDate parses a wire-format date; bad input drops the bound rather
// than failing the whole request.
func parseDate(s string, loc *time.Location) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.ParseInLocation(inputLayout, s, loc)
	if err != nil {
		return nil
	}
	return &t
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
