package audit

import (
	"time"

	id "enquiries/pkg/domain"
)

// Action names what happened, namespaced by entity.
type Action string

const (
	ActionEnquiryCreated   Action = "enquiry.created"
	ActionEnquiryClosed    Action = "enquiry.closed"
	ActionEnquiryReopened  Action = "enquiry.reopened"
	ActionEnquiryAnnotated Action = "enquiry.annotated"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	ID         id.AuditID
	OccurredAt time.Time
	OfficerID  id.OfficerID
	Action     Action
	EntityType string
	EntityID   string
	Detail     map[string]any
	ClientIP   string
	UserAgent  string
	RequestID  string
}
