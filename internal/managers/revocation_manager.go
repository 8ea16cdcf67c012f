package managers

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// RevocationMgr defines the interface for the revoked-token store consulted on
// every protected request. Implementations must be safe for concurrent use.
type RevocationMgr interface {
	Revoke(token string, expiresAt time.Time)
	IsRevoked(token string) bool
}

// RevocationManager is an in-memory implementation of RevocationMgr.
// Entries live until the token itself would have expired, so the set stays
// bounded by the number of tokens revoked within one expiry window. The state
// is process-local and cleared on restart.
type RevocationManager struct {
	mu      sync.RWMutex
	revoked map[string]time.Time
}

// NewRevocationManager creates a new in-memory revoked-token store.
func NewRevocationManager() RevocationMgr {
	log.Info("Initializing revocation manager")
	return &RevocationManager{
		revoked: make(map[string]time.Time),
	}
}

// Revoke adds the token to the revocation set until expiresAt.
// Revoking the same token again is a no-op.
func (rm *RevocationManager) Revoke(token string, expiresAt time.Time) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	rm.purgeExpiredLocked()
	rm.revoked[token] = expiresAt
}

// IsRevoked reports whether the token is in the revocation set.
// Entries whose tokens have expired anyway are treated as absent.
func (rm *RevocationManager) IsRevoked(token string) bool {
	rm.mu.RLock()
	defer rm.mu.RUnlock()

	expiresAt, ok := rm.revoked[token]
	if !ok {
		return false
	}

	return time.Now().Before(expiresAt)
}

// purgeExpiredLocked drops entries for tokens that are past their own expiry.
// Callers must hold the write lock.
func (rm *RevocationManager) purgeExpiredLocked() {
	now := time.Now()
	for token, expiresAt := range rm.revoked {
		if now.After(expiresAt) {
			delete(rm.revoked, token)
		}
	}
}
