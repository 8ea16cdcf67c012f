package utils

// contextKey is a type used for context keys to avoid conflicts with other packages' context keys.
type contextKey struct {
	name string
}

// Returns string representation of the context key.
func (c *contextKey) String() string {
	return c.name
}

// ClaimsKey is the context key used for storing JWT claims in a request context.
// It ensures that the key is unique to avoid conflicts with other context keys.
var ClaimsKey = &contextKey{"claims"}

// JWTTokenKey is the context key used for storing the raw bearer token of a request.
var JWTTokenKey = &contextKey{"jwtToken"}

// TraceIdKey is the context key used for storing the per-request trace id.
var TraceIdKey = &contextKey{"traceId"}

// SanitizedPayloadKey is the context key used for storing the validated request body.
var SanitizedPayloadKey = &contextKey{"sanitizedPayload"}
