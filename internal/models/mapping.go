// Package models contains the data models for the golinks application.
package models

import (
	"strings"

	"github.com/google/uuid"
)

// Shortcut is a short user-chosen token used as a lookup key, e.g. "gh".
// Shortcuts are case-sensitive.
type Shortcut string

// Destination is the full URL a shortcut resolves to,
// absolute and including the scheme.
type Destination string

// Mapping is a single shortcut to destination entry.
// The ID is used by the database storage backend; the file backend
// persists only the shortcut and the destination.
type Mapping struct {
	ID          string      `json:"id,omitempty"`
	Shortcut    Shortcut    `json:"shortcut"`
	Destination Destination `json:"destination"`
}

// NewMapping creates a new mapping record with the destination
// normalized to an absolute URL.
func NewMapping(shortcut, destination string) *Mapping {
	return &Mapping{
		ID:          uuid.NewString(),
		Shortcut:    Shortcut(shortcut),
		Destination: NormalizeDestination(destination),
	}
}

// NormalizeDestination prefixes scheme-less destinations with https://
// so that the stored table always holds absolute URLs and
// "u=github.com" keeps working.
func NormalizeDestination(destination string) Destination {
	if !strings.Contains(destination, "://") {
		return Destination("https://" + destination)
	}
	return Destination(destination)
}
