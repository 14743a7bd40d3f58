package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "enquiries/pkg/domain"
)

func TestIsPastDueTracksDueDateNotAge(t *testing.T) {
	created := time.Date(2025, time.June, 9, 9, 0, 0, 0, time.UTC) // a Monday
	e, err := NewEnquiry(id.NewEnquiryID(), "MEM-25-0001", "blocked gully", "", created)
	require.NoError(t, err)
	require.Equal(t, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), e.DueDate)

	assert.False(t, e.IsPastDue(time.Date(2025, time.June, 15, 23, 0, 0, 0, time.UTC)),
		"the weekend before the due date is still on time")
	assert.False(t, e.IsPastDue(time.Date(2025, time.June, 16, 23, 59, 0, 0, time.UTC)),
		"the due day itself is still on time")
	assert.True(t, e.IsPastDue(time.Date(2025, time.June, 17, 0, 1, 0, 0, time.UTC)))

	e.ApplyClose(ServiceFailedService, time.Date(2025, time.June, 20, 9, 0, 0, 0, time.UTC))
	assert.False(t, e.IsPastDue(time.Date(2025, time.June, 30, 9, 0, 0, 0, time.UTC)),
		"closed enquiries are never past due")
}

func TestOverdueBusinessDaysZeroUntilPastDue(t *testing.T) {
	created := time.Date(2025, time.June, 9, 9, 0, 0, 0, time.UTC)
	e, err := NewEnquiry(id.NewEnquiryID(), "MEM-25-0002", "street light out", "", created)
	require.NoError(t, err)

	assert.Zero(t, e.OverdueBusinessDays(time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)))
	assert.Equal(t, 1, e.OverdueBusinessDays(time.Date(2025, time.June, 17, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, e.OverdueBusinessDays(time.Date(2025, time.June, 19, 9, 0, 0, 0, time.UTC)))
}
