package listing

import (
	"net/url"

	"enquiries/internal/enquiry/filter"
)

// DrillDown renders the active criteria as link parameters for a narrower
// listing. Inactive criteria contribute nothing: empty and "all" selections
// are dropped, false booleans are dropped, true booleans become "on", and
// entity filters carry their IDs. One extra equality pair can be appended
// for the cell the link hangs off.
func DrillDown(c filter.Criteria, extraKey, extraValue string) url.Values {
	v := url.Values{}

	if c.StatusActive() {
		v.Set("status", c.Status)
	}
	if c.ServiceType != "" {
		v.Set("service_type", string(c.ServiceType))
	}
	if !c.OfficerID.IsNil() {
		v.Set("officer", c.OfficerID.String())
	}
	if !c.MemberID.IsNil() {
		v.Set("member", c.MemberID.String())
	}
	if !c.WardID.IsNil() {
		v.Set("ward", c.WardID.String())
	}
	if !c.SectionID.IsNil() {
		v.Set("section", c.SectionID.String())
	}
	if !c.JobTypeID.IsNil() {
		v.Set("job_type", c.JobTypeID.String())
	}
	if !c.ContactID.IsNil() {
		v.Set("contact", c.ContactID.String())
	}
	if c.OverdueOnly {
		v.Set("overdue", "on")
	}

	if extraKey != "" && extraValue != "" {
		v.Set(extraKey, extraValue)
	}
	return v
}
