// Package schemas defines the request structures for various operations in the application.
package schemas

// RegistrationRequest is a struct that represents a registration request
// Email is required and must be a valid email
// Password is required and must be at least 6 characters
// Name is required and must be between 2 and 100 characters
type RegistrationRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

// LoginRequest is a struct that represents a login request
// Email is required and must be a valid email
// Password is required
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=254"`
	Password string `json:"password" validate:"required,max=72"`
}

// CreateSchoolRequest is a struct that represents a school creation request
// Name and Address are required
// Latitude and Longitude are required and must be valid coordinates
// Description is optional and must be at most 2000 characters
type CreateSchoolRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=200"`
	Address     string   `json:"address" validate:"required,min=2,max=500"`
	Latitude    *float64 `json:"latitude" validate:"required,latitude_range"`
	Longitude   *float64 `json:"longitude" validate:"required,longitude_range"`
	Description string   `json:"description" validate:"max=2000"`
}

// ClaimRequest is a struct that represents an adoption claim request
// SchoolID is required and must be a valid UUID
type ClaimRequest struct {
	SchoolID string `json:"schoolId" validate:"required,uuid4"`
}

// CreateNoteRequest is a struct that represents a request to append a journal
// sub-entry to an adoption
// Text is required and must be at most 5000 characters
type CreateNoteRequest struct {
	Text string `json:"text" validate:"required,max=5000"`
}

// CreateJournalEntryRequest is a struct that represents a standalone journal
// entry creation request
// EntryText is required and must be at most 5000 characters
// SchoolID is optional and must be a valid UUID if provided
type CreateJournalEntryRequest struct {
	EntryText string `json:"entryText" validate:"required,max=5000"`
	SchoolID  string `json:"schoolId" validate:"omitempty,uuid4"`
}
