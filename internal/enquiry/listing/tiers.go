package listing

// tier is one first-match-wins styling threshold.
type tier struct {
	upTo  int
	style string
}

// resolutionTiers grade how long a resolution took, in business days.
// overdueTiers grade how far past due an active enquiry is. The scales are
// unrelated and must stay separate: five days is acceptable as a resolution
// time but an emergency as an overdue backlog.
var (
	resolutionTiers = []tier{{upTo: 5, style: "good"}, {upTo: 10, style: "warning"}}
	resolutionWorst = "late"

	overdueTiers = []tier{{upTo: 2, style: "warning"}, {upTo: 5, style: "urgent"}}
	overdueWorst = "critical"
)

func styleFor(tiers []tier, worst string, days int) string {
	for _, t := range tiers {
		if days <= t.upTo {
			return t.style
		}
	}
	return worst
}

// ResolutionStyle grades a resolution time in business days.
func ResolutionStyle(days int) string {
	return styleFor(resolutionTiers, resolutionWorst, days)
}

// OverdueStyle grades an overdue backlog in business days.
func OverdueStyle(days int) string {
	return styleFor(overdueTiers, overdueWorst, days)
}
