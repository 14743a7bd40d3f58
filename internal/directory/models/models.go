// Package models defines the reference entities an enquiry links to.
package models

import id "enquiries/pkg/domain"

// Officer is a council user who logs and works enquiries.
type Officer struct {
	ID     id.OfficerID `json:"id"`
	Name   string       `json:"name"`
	Email  string       `json:"email,omitempty"`
	Active bool         `json:"active"`
}

// Member is an elected member on whose behalf enquiries are raised.
type Member struct {
	ID     id.MemberID `json:"id"`
	Name   string      `json:"name"`
	Party  string      `json:"party,omitempty"`
	Active bool        `json:"active"`
}

// Ward is an electoral ward.
type Ward struct {
	ID   id.WardID `json:"id"`
	Name string    `json:"name"`
}

// Section is a service department grouping job types.
type Section struct {
	ID   id.SectionID `json:"id"`
	Name string       `json:"name"`
}

// JobType categorises the work an enquiry asks for.
type JobType struct {
	ID        id.JobTypeID `json:"id"`
	Name      string       `json:"name"`
	SectionID id.SectionID `json:"section_id,omitempty"`
}

// Contact is the service contact an enquiry is assigned to.
type Contact struct {
	ID      id.ContactID `json:"id"`
	Name    string       `json:"name"`
	Email   string       `json:"email,omitempty"`
	Phone   string       `json:"phone,omitempty"`
	Address string       `json:"address,omitempty"`
}
