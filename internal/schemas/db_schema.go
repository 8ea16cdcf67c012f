// Package schemas defines the data structures
package schemas

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates the user roles known to the system.
const (
	RoleAdmin   = "admin"
	RoleAdopter = "adopter"
)

// User represents the data model for a user in the system.
type User struct {
	ID        *uuid.UUID `json:"id"`         // Unique identifier for the user.
	Email     string     `json:"email"`      // Email address of the user, unique and lower-cased.
	Password  string     `json:"-"`          // Password hash of the user, never serialized.
	Name      string     `json:"name"`       // Display name of the user.
	Role      string     `json:"role"`       // Role of the user, admin or adopter.
	CreatedAt *time.Time `json:"created_at"` // Timestamp when the user was created.
}

// School represents the data model for an adoptable school.
// Invariant: Adopted is true exactly when AdopterID is set.
type School struct {
	ID          *uuid.UUID `json:"id"`          // Unique identifier for the school.
	Name        string     `json:"name"`        // Name of the school, unique.
	Address     string     `json:"address"`     // Street address of the school.
	Latitude    float64    `json:"latitude"`    // Latitude in [-90, 90].
	Longitude   float64    `json:"longitude"`   // Longitude in [-180, 180].
	Description string     `json:"description"` // Optional description, at most 2000 characters.
	Adopted     bool       `json:"adopted"`     // Whether the school has been adopted.
	AdopterID   *uuid.UUID `json:"adopter_id"`  // Identifier of the adopting user, nil while unadopted.
	CreatedAt   *time.Time `json:"created_at"`  // Timestamp when the school was created.
}

// Adoption represents the claim of a school by a user.
// At most one adoption exists per (UserID, SchoolID) pair and per SchoolID.
type Adoption struct {
	ID          *uuid.UUID `json:"id"`           // Unique identifier for the adoption.
	UserID      *uuid.UUID `json:"user_id"`      // Identifier of the adopting user.
	SchoolID    *uuid.UUID `json:"school_id"`    // Identifier of the adopted school.
	DateAdopted *time.Time `json:"date_adopted"` // Timestamp when the claim succeeded.
	PrayerCount int        `json:"prayer_count"` // Non-negative prayer counter, defaults to 0.
}

// AdoptionNote is a journal sub-entry attached to an adoption, distinct
// from the standalone JournalEntry collection.
type AdoptionNote struct {
	ID         *uuid.UUID `json:"id"`          // Unique identifier for the note.
	AdoptionID *uuid.UUID `json:"adoption_id"` // Identifier of the owning adoption.
	Content    string     `json:"content"`     // Note text, at most 5000 characters.
	CreatedAt  *time.Time `json:"created_at"`  // Timestamp when the note was written.
}

// JournalEntry represents a standalone journal entry owned by a user,
// optionally linked to a school.
type JournalEntry struct {
	ID        *uuid.UUID `json:"id"`         // Unique identifier for the entry.
	UserID    *uuid.UUID `json:"user_id"`    // Identifier of the owning user.
	SchoolID  *uuid.UUID `json:"school_id"`  // Optional school the entry refers to.
	Content   string     `json:"content"`    // Entry text, non-empty after trimming.
	CreatedAt *time.Time `json:"created_at"` // Timestamp when the entry was written.
}
