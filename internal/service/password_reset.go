package service

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// resetTokenTTL is how long a password-reset token remains redeemable
// after it is minted.
const resetTokenTTL = time.Hour

// resetTokenEntry binds a single-use reset token to the account it was
// issued for and the moment it stops being redeemable.
type resetTokenEntry struct {
	userID    int64
	expiresAt time.Time
}

// resetTokenStore is an in-process, mutex-guarded registry of outstanding
// password-reset tokens. Like the public-share abuse limiter, its state is
// intentionally not persisted: a restart invalidates pending reset links,
// which is an acceptable tradeoff for a self-hosted, single-instance
// deployment.
type resetTokenStore struct {
	mu     sync.Mutex
	tokens map[string]resetTokenEntry
}

func newResetTokenStore() *resetTokenStore {
	return &resetTokenStore{tokens: make(map[string]resetTokenEntry)}
}

// issue mints a fresh token bound to userID, valid for resetTokenTTL.
func (s *resetTokenStore) issue(userID int64) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	token := hex.EncodeToString(raw)

	s.mu.Lock()
	s.tokens[token] = resetTokenEntry{userID: userID, expiresAt: time.Now().Add(resetTokenTTL)}
	s.mu.Unlock()

	return token, nil
}

// consume validates and removes token, returning the bound user ID. A
// token may only be consumed once.
func (s *resetTokenStore) consume(token string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, found := s.tokens[token]
	if !found {
		return 0, false
	}
	delete(s.tokens, token)

	if time.Now().After(entry.expiresAt) {
		return 0, false
	}
	return entry.userID, true
}
