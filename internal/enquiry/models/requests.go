package models

import (
	"strings"

	id "enquiries/pkg/domain"
	dErrors "enquiries/pkg/domain-errors"
)

// CreateEnquiryRequest is the payload for logging a new enquiry. The
// reference is allocated server side and never accepted from the client.
type CreateEnquiryRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	OfficerID   id.OfficerID `json:"officer_id,omitempty"`
	MemberID    id.MemberID  `json:"member_id,omitempty"`
	WardID      id.WardID    `json:"ward_id,omitempty"`
	JobTypeID   id.JobTypeID `json:"job_type_id,omitempty"`
	ContactID   id.ContactID `json:"contact_id,omitempty"`
}

func (r *CreateEnquiryRequest) Normalize() {
	if r == nil {
		return
	}
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *CreateEnquiryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(r.Title) > 255 {
		return dErrors.New(dErrors.CodeValidation, "title must be 255 characters or less")
	}
	if len(r.Description) > 4000 {
		return dErrors.New(dErrors.CodeValidation, "description must be 4000 characters or less")
	}

	if r.Title == "" {
		return dErrors.New(dErrors.CodeValidation, "title is required")
	}

	return nil
}

// CloseEnquiryRequest closes an enquiry with its resolution category.
type CloseEnquiryRequest struct {
	ServiceType ServiceType `json:"service_type"`
	Note        string      `json:"note"`
}

func (r *CloseEnquiryRequest) Normalize() {
	if r == nil {
		return
	}
	r.ServiceType = ServiceType(strings.TrimSpace(strings.ToLower(string(r.ServiceType))))
	r.Note = strings.TrimSpace(r.Note)
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *CloseEnquiryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(r.Note) > 2000 {
		return dErrors.New(dErrors.CodeValidation, "note must be 2000 characters or less")
	}

	if r.ServiceType == "" {
		return dErrors.New(dErrors.CodeValidation, "service_type is required")
	}

	if !r.ServiceType.IsValid() {
		return dErrors.New(dErrors.CodeValidation, "service_type must be one of 'failed_service', 'new_addition', 'pre_programmed', '3rd_party'")
	}

	return nil
}

// ReopenEnquiryRequest reopens a closed enquiry, optionally with a reason.
type ReopenEnquiryRequest struct {
	Note string `json:"note"`
}

func (r *ReopenEnquiryRequest) Normalize() {
	if r == nil {
		return
	}
	r.Note = strings.TrimSpace(r.Note)
}

func (r *ReopenEnquiryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}
	if len(r.Note) > 2000 {
		return dErrors.New(dErrors.CodeValidation, "note must be 2000 characters or less")
	}
	return nil
}

// AnnotateEnquiryRequest appends a progress note. Adding a note to a new
// enquiry moves it to open, since someone has evidently started work.
type AnnotateEnquiryRequest struct {
	Note string `json:"note"`
}

func (r *AnnotateEnquiryRequest) Normalize() {
	if r == nil {
		return
	}
	r.Note = strings.TrimSpace(r.Note)
}

// Follows validation order: Size -> Required -> Syntax -> Semantic.
func (r *AnnotateEnquiryRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request is required")
	}

	if len(r.Note) > 2000 {
		return dErrors.New(dErrors.CodeValidation, "note must be 2000 characters or less")
	}

	if r.Note == "" {
		return dErrors.New(dErrors.CodeValidation, "note is required")
	}

	return nil
}
