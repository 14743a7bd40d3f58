// Package id defines typed identifiers for domain entities. Distinct types
// prevent cross-entity assignment at compile time (an OfficerID can never be
// passed where a MemberID is expected).
package id

import "github.com/google/uuid"

type (
	// EnquiryID identifies an enquiry record.
	EnquiryID uuid.UUID
	// HistoryID identifies an enquiry history entry.
	HistoryID uuid.UUID
	// AuditID identifies an audit log entry.
	AuditID uuid.UUID
	// OfficerID identifies a council officer (system user).
	OfficerID uuid.UUID
	// MemberID identifies an elected member raising enquiries.
	MemberID uuid.UUID
	// WardID identifies an electoral ward.
	WardID uuid.UUID
	// SectionID identifies a service section.
	SectionID uuid.UUID
	// JobTypeID identifies a job-type category.
	JobTypeID uuid.UUID
	// ContactID identifies a service contact.
	ContactID uuid.UUID
)

func (i EnquiryID) String() string { return uuid.UUID(i).String() }
func (i EnquiryID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }

func (i HistoryID) String() string { return uuid.UUID(i).String() }
func (i HistoryID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }

func (i AuditID) String() string { return uuid.UUID(i).String() }
func (i AuditID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }

func (i OfficerID) String() string { return uuid.UUID(i).String() }
func (i OfficerID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }

func (i MemberID) String() string { return uuid.UUID(i).String() }
func (i MemberID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }

func (i WardID) String() string { return uuid.UUID(i).String() }
func (i WardID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }

func (i SectionID) String() string { return uuid.UUID(i).String() }
func (i SectionID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }

func (i JobTypeID) String() string { return uuid.UUID(i).String() }
func (i JobTypeID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }

func (i ContactID) String() string { return uuid.UUID(i).String() }
func (i ContactID) IsNil() bool    { return uuid.UUID(i) == uuid.Nil }

// MarshalText/UnmarshalText keep the canonical UUID string form on the wire.
// Defined types do not inherit uuid.UUID's methods, so each ID carries its own.

func (i EnquiryID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i *EnquiryID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(i).UnmarshalText(b)
}

func (i HistoryID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i *HistoryID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(i).UnmarshalText(b)
}

func (i AuditID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i *AuditID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(i).UnmarshalText(b)
}

func (i OfficerID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i *OfficerID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(i).UnmarshalText(b)
}

func (i MemberID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i *MemberID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(i).UnmarshalText(b)
}

func (i WardID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i *WardID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(i).UnmarshalText(b)
}

func (i SectionID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i *SectionID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(i).UnmarshalText(b)
}

func (i JobTypeID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i *JobTypeID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(i).UnmarshalText(b)
}

func (i ContactID) MarshalText() ([]byte, error) { return uuid.UUID(i).MarshalText() }
func (i *ContactID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(i).UnmarshalText(b)
}

// NewEnquiryID allocates a fresh enquiry identifier.
func NewEnquiryID() EnquiryID { return EnquiryID(uuid.New()) }

// NewHistoryID allocates a fresh history entry identifier.
func NewHistoryID() HistoryID { return HistoryID(uuid.New()) }

// NewAuditID allocates a fresh audit entry identifier.
func NewAuditID() AuditID { return AuditID(uuid.New()) }

// ParseEnquiryID parses a string form enquiry ID.
func ParseEnquiryID(s string) (EnquiryID, error) {
	u, err := uuid.Parse(s)
	return EnquiryID(u), err
}

// ParseOfficerID parses a string form officer ID.
func ParseOfficerID(s string) (OfficerID, error) {
	u, err := uuid.Parse(s)
	return OfficerID(u), err
}

// ParseMemberID parses a string form member ID.
func ParseMemberID(s string) (MemberID, error) {
	u, err := uuid.Parse(s)
	return MemberID(u), err
}

// ParseWardID parses a string form ward ID.
func ParseWardID(s string) (WardID, error) {
	u, err := uuid.Parse(s)
	return WardID(u), err
}

// ParseSectionID parses a string form section ID.
func ParseSectionID(s string) (SectionID, error) {
	u, err := uuid.Parse(s)
	return SectionID(u), err
}

// ParseJobTypeID parses a string form job-type ID.
func ParseJobTypeID(s string) (JobTypeID, error) {
	u, err := uuid.Parse(s)
	return JobTypeID(u), err
}

// ParseContactID parses a string form contact ID.
func ParseContactID(s string) (ContactID, error) {
	u, err := uuid.Parse(s)
	return ContactID(u), err
}
