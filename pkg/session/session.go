// Package session provides share-link sessions for gallery diagrams.
//
// A share session maps an unguessable token to a stored diagram so a
// saved render can be handed out without exposing the gallery API. The
// Store interface supports:
//   - Get/Set/Delete operations
//   - Automatic expiration checking
//   - Cleanup of expired sessions
//
// Implementations:
//   - memory: In-memory storage for development and single-instance servers
//   - file: File-based storage that survives restarts
//
// # Usage
//
// Create and store a share session:
//
//	sess, err := session.New(diagramID, session.DefaultTTL)
//	if err != nil {
//	    return err
//	}
//	store.Set(ctx, sess)
//
// Resolve a share token:
//
//	sess, err := store.Get(ctx, token)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    // Unknown or expired token
//	}
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("expired")
)

// Session maps a share token to a stored diagram.
type Session struct {
	ID        string    `json:"id"`
	DiagramID string    `json:"diagram_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// DefaultTTL is the default share-link duration.
const DefaultTTL = 7 * 24 * time.Hour

// GenerateID creates a cryptographically secure random session ID.
func GenerateID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// New creates a share session for the given diagram.
func New(diagramID string, ttl time.Duration) (*Session, error) {
	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	return &Session{
		ID:        id,
		DiagramID: diagramID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}, nil
}
