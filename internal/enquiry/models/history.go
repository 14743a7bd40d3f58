package models

import (
	"time"

	id "enquiries/pkg/domain"
)

// NoteType classifies a history entry.
type NoteType string

const (
	NoteCreated      NoteType = "created"
	NoteGeneral      NoteType = "note"
	NoteStatusChange NoteType = "status_change"
	NoteClosed       NoteType = "closed"
	NoteReopened     NoteType = "reopened"
)

func (n NoteType) IsValid() bool {
	switch n {
	case NoteCreated, NoteGeneral, NoteStatusChange, NoteClosed, NoteReopened:
		return true
	}
	return false
}

// HistoryEntry is one line of an enquiry's activity trail. Entries are
// append-only; corrections are made with further entries.
type HistoryEntry struct {
	ID        id.HistoryID `json:"id"`
	EnquiryID id.EnquiryID `json:"enquiry_id"`
	OfficerID id.OfficerID `json:"officer_id,omitempty"`
	NoteType  NoteType     `json:"note_type"`
	Note      string       `json:"note"`
	CreatedAt time.Time    `json:"created_at"`
}
