package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mid-month reference time keeps calendar-month arithmetic unsurprising.
var now = time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolvePresets(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		wantFrom  time.Time
	}{
		{"three months", Selection3Months, day(2025, time.March, 15)},
		{"six months", Selection6Months, day(2024, time.December, 15)},
		{"twelve months", Selection12Months, day(2024, time.June, 15)},
		{"unknown falls back to twelve months", "fortnight", day(2024, time.June, 15)},
		{"empty falls back to twelve months", "", day(2024, time.June, 15)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(now, time.UTC, tt.selection, "", "")
			assert.Equal(t, KindPreset, r.Kind)
			require.NotNil(t, r.From)
			require.NotNil(t, r.To)
			assert.Equal(t, tt.wantFrom, *r.From)
			assert.Equal(t, day(2025, time.June, 15), *r.To)
		})
	}
}

func TestResolvePresetLabels(t *testing.T) {
	assert.Equal(t, "in the last 3 months", Resolve(now, time.UTC, Selection3Months, "", "").Label)
	assert.Equal(t, "in the last 6 months", Resolve(now, time.UTC, Selection6Months, "", "").Label)
	assert.Equal(t, "in the last 12 months", Resolve(now, time.UTC, Selection12Months, "", "").Label)
}

func TestResolveAllTime(t *testing.T) {
	r := Resolve(now, time.UTC, SelectionAll, "", "")
	assert.Equal(t, KindAll, r.Kind)
	assert.Nil(t, r.From)
	assert.Nil(t, r.To)
	assert.Equal(t, "in All Time", r.Label)
}

func TestResolveCustom(t *testing.T) {
	t.Run("both bounds", func(t *testing.T) {
		r := Resolve(now, time.UTC, SelectionCustom, "2025-01-10", "2025-02-20")
		assert.Equal(t, KindCustom, r.Kind)
		require.NotNil(t, r.From)
		require.NotNil(t, r.To)
		assert.Equal(t, day(2025, time.January, 10), *r.From)
		assert.Equal(t, day(2025, time.February, 20), *r.To)
		assert.Equal(t, "between 10/01/2025 and 20/02/2025", r.Label)
	})

	t.Run("unparsable side drops that bound", func(t *testing.T) {
		r := Resolve(now, time.UTC, SelectionCustom, "not-a-date", "2025-02-20")
		assert.Equal(t, KindCustom, r.Kind)
		assert.Nil(t, r.From)
		require.NotNil(t, r.To)
		assert.Equal(t, "until 20/02/2025", r.Label)
	})

	t.Run("from only", func(t *testing.T) {
		r := Resolve(now, time.UTC, SelectionCustom, "2025-01-10", "")
		assert.Equal(t, KindCustom, r.Kind)
		assert.Equal(t, "from 10/01/2025", r.Label)
	})

	t.Run("no usable bounds means all time", func(t *testing.T) {
		r := Resolve(now, time.UTC, SelectionCustom, "garbage", "also-garbage")
		assert.Equal(t, KindAll, r.Kind)
		assert.Nil(t, r.From)
		assert.Nil(t, r.To)
	})
}

func TestCustomReclassifiesToPreset(t *testing.T) {
	t.Run("exact preset bounds", func(t *testing.T) {
		r := Resolve(now, time.UTC, SelectionCustom, "2025-03-15", "2025-06-15")
		assert.Equal(t, KindPreset, r.Kind)
		assert.Equal(t, "in the last 3 months", r.Label)
	})

	t.Run("one day off on each side still reclassifies", func(t *testing.T) {
		r := Resolve(now, time.UTC, SelectionCustom, "2025-03-14", "2025-06-16")
		assert.Equal(t, KindPreset, r.Kind)
		assert.Equal(t, "in the last 3 months", r.Label)
		// Bounds come from the preset, not the submitted dates.
		assert.Equal(t, day(2025, time.March, 15), *r.From)
	})

	t.Run("two days off stays custom", func(t *testing.T) {
		r := Resolve(now, time.UTC, SelectionCustom, "2025-03-13", "2025-06-15")
		assert.Equal(t, KindCustom, r.Kind)
	})

	t.Run("twelve month window reclassifies", func(t *testing.T) {
		r := Resolve(now, time.UTC, SelectionCustom, "2024-06-15", "2025-06-15")
		assert.Equal(t, KindPreset, r.Kind)
		assert.Equal(t, "in the last 12 months", r.Label)
	})

	t.Run("one day off across a clock change still reclassifies", func(t *testing.T) {
		london, err := time.LoadLocation("Europe/London")
		require.NoError(t, err)

		// Clocks went back on 26 October 2025, so midnight on the 26th is
		// 25 hours before midnight on the 27th. The drift is still one
		// calendar day and must count as such.
		now := time.Date(2026, time.January, 27, 10, 0, 0, 0, london)
		r := Resolve(now, london, SelectionCustom, "2025-10-26", "2026-01-27")
		assert.Equal(t, KindPreset, r.Kind)
		assert.Equal(t, "in the last 3 months", r.Label)
	})
}

func TestResolveIsPure(t *testing.T) {
	a := Resolve(now, time.UTC, Selection3Months, "", "")
	b := Resolve(now, time.UTC, Selection3Months, "", "")
	assert.Equal(t, a, b)
}
