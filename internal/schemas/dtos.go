package schemas

// ErrorDTO is a struct that represents an error response
// Success is always false for errors
// Error is the custom error, see CustomError
type ErrorDTO struct {
	Success bool        `json:"success"`
	Error   CustomError `json:"error"`
}

// UserDTO is a struct that represents a user response
type UserDTO struct {
	UserId    string `json:"userId"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

// TokenDTO is a struct that represents an authentication response
// Token is the JWT bearer token
// User is the summary of the authenticated user
type TokenDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// AdopterDTO is a struct that represents an adopter summary on a school
type AdopterDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SchoolDTO is a struct that represents a school response
// Adopter is only set when the school has been adopted
type SchoolDTO struct {
	SchoolId    string      `json:"schoolId"`
	Name        string      `json:"name"`
	Address     string      `json:"address"`
	Latitude    float64     `json:"latitude"`
	Longitude   float64     `json:"longitude"`
	Description string      `json:"description,omitempty"`
	Adopted     bool        `json:"adopted"`
	Adopter     *AdopterDTO `json:"adopter,omitempty"`
}

// NoteDTO is a struct that represents a journal sub-entry on an adoption
type NoteDTO struct {
	NoteId    string `json:"noteId"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// AdoptionDTO is a struct that represents an adoption response
// School is the resolved school summary
// Notes are the embedded journal sub-entries, oldest first
type AdoptionDTO struct {
	AdoptionId  string    `json:"adoptionId"`
	DateAdopted string    `json:"dateAdopted"`
	PrayerCount int       `json:"prayerCount"`
	School      SchoolDTO `json:"school"`
	Notes       []NoteDTO `json:"notes"`
}

// JournalEntryDTO is a struct that represents a standalone journal entry response
type JournalEntryDTO struct {
	EntryId   string `json:"entryId"`
	EntryText string `json:"entryText"`
	SchoolId  string `json:"schoolId,omitempty"`
	CreatedAt string `json:"createdAt"`
}

// DashboardDTO is a struct that represents the aggregated dashboard response
// Adoptions are the caller's adoptions with resolved school summaries
// TotalPrayers is the sum of prayer counts across adoptions
// NoteCount is the number of embedded journal sub-entries across adoptions
// JournalCount is the number of standalone journal entries
// RecentEntries are the five most recent standalone journal entries
// DaysActive is the account age in whole days
type DashboardDTO struct {
	Adoptions     []AdoptionDTO     `json:"adoptions"`
	TotalPrayers  int               `json:"totalPrayers"`
	NoteCount     int               `json:"noteCount"`
	JournalCount  int               `json:"journalCount"`
	RecentEntries []JournalEntryDTO `json:"recentEntries"`
	DaysActive    int               `json:"daysActive"`
}

// HealthDTO is a struct that represents a liveness response
type HealthDTO struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}
