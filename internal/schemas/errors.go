package schemas

// CustomError is a struct that represents a stable, user-visible error
// Code is the stable error code
// Message is the human-readable description
type CustomError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var (
	// BadRequest covers malformed or missing request input.
	BadRequest = &CustomError{
		Code:    "ADT-001",
		Message: "The request body is invalid. Please check the request body and try again.",
	}
	// EmailTaken is returned when registering with an email that already exists.
	EmailTaken = &CustomError{
		Code:    "ADT-002",
		Message: "The email is already registered. Please log in or use another email.",
	}
	// InvalidCredentials is returned on login with an unknown email or wrong password.
	InvalidCredentials = &CustomError{
		Code:    "ADT-003",
		Message: "The credentials are invalid. Please check your email and password.",
	}
	// Unauthorized is returned when the bearer token is missing or malformed.
	Unauthorized = &CustomError{
		Code:    "ADT-004",
		Message: "The request is unauthorized. Please provide a valid bearer token.",
	}
	// TokenExpired is returned when the bearer token is past its expiry.
	TokenExpired = &CustomError{
		Code:    "ADT-005",
		Message: "The token has expired. Please log in again.",
	}
	// TokenRevoked is returned when the bearer token was invalidated by logout.
	TokenRevoked = &CustomError{
		Code:    "ADT-006",
		Message: "The token has been revoked. Please log in again.",
	}
	// Forbidden is returned when the caller lacks the required role.
	Forbidden = &CustomError{
		Code:    "ADT-007",
		Message: "You do not have permission to perform this action.",
	}
	// UserNotFound is returned when the authenticated user no longer exists.
	UserNotFound = &CustomError{
		Code:    "ADT-008",
		Message: "The user was not found.",
	}
	// SchoolNotFound is returned when the requested school does not exist.
	SchoolNotFound = &CustomError{
		Code:    "ADT-009",
		Message: "The school was not found.",
	}
	// SchoolNameTaken is returned when creating a school with a duplicate name.
	SchoolNameTaken = &CustomError{
		Code:    "ADT-010",
		Message: "A school with this name already exists.",
	}
	// AlreadyAdoptedByYou is returned when the caller retries a claim that already succeeded.
	AlreadyAdoptedByYou = &CustomError{
		Code:    "ADT-011",
		Message: "You have already adopted this school.",
	}
	// AlreadyAdoptedBySomeone is returned when the school is no longer available.
	AlreadyAdoptedBySomeone = &CustomError{
		Code:    "ADT-012",
		Message: "This school has already been adopted.",
	}
	// AdoptionNotFound is returned when the adoption does not exist or is not the caller's.
	AdoptionNotFound = &CustomError{
		Code:    "ADT-013",
		Message: "The adoption was not found.",
	}
	// EntryNotFound is returned when the journal entry does not exist or is not the caller's.
	EntryNotFound = &CustomError{
		Code:    "ADT-014",
		Message: "The journal entry was not found.",
	}
	// EmptyJournalEntry is returned when the entry text is empty after trimming.
	EmptyJournalEntry = &CustomError{
		Code:    "ADT-015",
		Message: "The journal entry text must not be empty.",
	}
	// TooManyRequests is returned when the caller exceeds the rate limit.
	TooManyRequests = &CustomError{
		Code:    "ADT-016",
		Message: "Too many requests. Please try again later.",
	}
	// DatabaseError covers failures of the backing store.
	DatabaseError = &CustomError{
		Code:    "ADT-097",
		Message: "A database error occurred. Please try again later.",
	}
	// InternalServerError covers unexpected failures.
	InternalServerError = &CustomError{
		Code:    "ADT-098",
		Message: "An internal error occurred. Please try again later.",
	}
)
