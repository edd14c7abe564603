// Package script holds the library's script records. Scripts are owned and
// versioned by the dashboard backend; this package models the fields the
// library tooling reads.
package script

import (
	"fmt"

	"github.com/google/uuid"
)

// Status is a script's lifecycle state.
type Status string

const (
	StatusActive   Status = "active"
	StatusDraft    Status = "draft"
	StatusArchived Status = "archived"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusDraft, StatusArchived:
		return true
	}
	return false
}

// ParseStatus converts a user-supplied string to a Status.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown status %q (want active, draft or archived)", s)
	}
	return st, nil
}

// Script is a single library entry. Category is the backend's free-text
// category path; CategoryID is the slug id derived from it on the client
// side. A script references its category, it does not own it.
type Script struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   string     `json:"category,omitempty"`
	CategoryID string     `json:"category_id,omitempty"`
	Status     Status     `json:"status"`
	Content    string     `json:"content,omitempty"`
	Versions   []*Version `json:"versions,omitempty"`
}

// NewScript creates a draft script with a generated id.
func NewScript(name string) *Script {
	return &Script{
		ID:     uuid.NewString(),
		Name:   name,
		Status: StatusDraft,
	}
}
