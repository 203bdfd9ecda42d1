// Package sessions keeps the in-memory table of live bearer tokens. A session
// binds a token to the owner's unwrapped secret key for a fixed lifetime;
// nothing here is persisted, so a restart logs everybody out.
package sessions

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/onepass/internal/common"
	"github.com/dmitrijs2005/onepass/internal/server/models"
)

// DefaultTTL is used when a Manager is built with a non-positive TTL.
const DefaultTTL = 30 * time.Minute

const tokenSize = 32

// maxIssueAttempts bounds regeneration on token hash collisions.
const maxIssueAttempts = 8

// Session is what a valid token resolves to.
type Session struct {
	UserID    string
	UserName  string
	Salt      []byte
	SecretKey []byte
	ExpiresAt time.Time
}

// Manager issues, resolves and revokes sessions. It is safe for concurrent use.
type Manager struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]*Session

	now      func() time.Time
	newToken func() (string, error)
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now as the source of issue and expiry times.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager returns an empty Manager whose sessions live for ttl.
func NewManager(ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		ttl:      ttl,
		sessions: make(map[string]*Session),
		now:      time.Now,
		newToken: func() (string, error) { return common.MakeRandHexString(tokenSize) },
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// TTL reports the lifetime given to new sessions.
func (m *Manager) TTL() time.Duration { return m.ttl }

// Issue creates a session for id and returns the raw token, which is not
// stored anywhere; only its hash is kept.
func (m *Manager) Issue(id *models.Identity) (string, time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for range maxIssueAttempts {
		token, err := m.newToken()
		if err != nil {
			return "", time.Time{}, fmt.Errorf("token generation: %w", err)
		}
		h := hashToken(token)
		if _, taken := m.sessions[h]; taken {
			continue
		}

		exp := m.now().Add(m.ttl)
		m.sessions[h] = &Session{
			UserID:    id.UserID,
			UserName:  id.UserName,
			Salt:      common.CloneBytes(id.Salt),
			SecretKey: common.CloneBytes(id.SecretKey),
			ExpiresAt: exp,
		}
		return token, exp, nil
	}
	return "", time.Time{}, fmt.Errorf("token generation: %w", common.ErrorInternal)
}

// Validate resolves token. An expired session is evicted on the first call
// that sees it, so it reports ErrTokenExpired once and ErrTokenInvalid after.
// The returned Session owns its own copy of the key material.
func (m *Manager) Validate(token string) (*Session, error) {
	h := hashToken(token)

	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[h]
	if !ok {
		return nil, common.ErrTokenInvalid
	}
	if !m.now().Before(s.ExpiresAt) {
		m.evict(h, s)
		return nil, common.ErrTokenExpired
	}

	return &Session{
		UserID:    s.UserID,
		UserName:  s.UserName,
		Salt:      common.CloneBytes(s.Salt),
		SecretKey: common.CloneBytes(s.SecretKey),
		ExpiresAt: s.ExpiresAt,
	}, nil
}

// Revoke drops token. Unknown tokens are ignored.
func (m *Manager) Revoke(token string) {
	h := hashToken(token)

	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[h]; ok {
		m.evict(h, s)
	}
}

// RevokeUser drops every session of userID and reports how many there were.
func (m *Manager) RevokeUser(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for h, s := range m.sessions {
		if s.UserID == userID {
			m.evict(h, s)
			n++
		}
	}
	return n
}

// Len reports the number of sessions held, expired ones included.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// evict must be called with mu held.
func (m *Manager) evict(h string, s *Session) {
	common.WipeByteArray(s.SecretKey)
	common.WipeByteArray(s.Salt)
	delete(m.sessions, h)
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
