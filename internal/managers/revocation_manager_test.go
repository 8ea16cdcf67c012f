package managers

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevokeAndIsRevoked(t *testing.T) {
	rm := NewRevocationManager()

	assert.False(t, rm.IsRevoked("token"))

	rm.Revoke("token", time.Now().Add(time.Hour))
	assert.True(t, rm.IsRevoked("token"))
	assert.False(t, rm.IsRevoked("other-token"))
}

func TestRevokeIsIdempotent(t *testing.T) {
	rm := NewRevocationManager()

	expiresAt := time.Now().Add(time.Hour)
	rm.Revoke("token", expiresAt)
	rm.Revoke("token", expiresAt)

	assert.True(t, rm.IsRevoked("token"))
}

func TestExpiredTokensAreNotRevoked(t *testing.T) {
	rm := NewRevocationManager()

	rm.Revoke("stale", time.Now().Add(-time.Minute))
	assert.False(t, rm.IsRevoked("stale"))
}

func TestExpiredEntriesArePurged(t *testing.T) {
	rm := NewRevocationManager().(*RevocationManager)

	rm.Revoke("stale", time.Now().Add(-time.Minute))
	rm.Revoke("fresh", time.Now().Add(time.Hour))

	rm.mu.RLock()
	defer rm.mu.RUnlock()
	assert.NotContains(t, rm.revoked, "stale")
	assert.Contains(t, rm.revoked, "fresh")
}

func TestConcurrentRevocation(t *testing.T) {
	rm := NewRevocationManager()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token := fmt.Sprintf("token-%d", i)
			rm.Revoke(token, time.Now().Add(time.Hour))
			assert.True(t, rm.IsRevoked(token))
		}(i)
	}
	wg.Wait()
}
