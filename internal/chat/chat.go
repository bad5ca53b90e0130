// Package chat keeps ephemeral per-session conversation history.
package chat

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skufu/symptomchat/internal/matcher"
)

const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// Entry is one line of a session's conversation.
type Entry struct {
	Role    string `json:"role"`
	Message string `json:"message"`
	// Timestamp is an opaque, unique, time-ordered id.
	Timestamp       string           `json:"timestamp"`
	Recommendations []matcher.Result `json:"recommendations,omitempty"`
}

// NewEntry stamps a new entry with a UUIDv7.
func NewEntry(role, message string, recs []matcher.Result) Entry {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return Entry{
		Role:            role,
		Message:         message,
		Timestamp:       id.String(),
		Recommendations: recs,
	}
}

// Store holds chat history keyed by session id.
type Store interface {
	Append(ctx context.Context, sessionID string, entries ...Entry) error
	// History returns the entries in append order; never nil.
	History(ctx context.Context, sessionID string) ([]Entry, error)
	Clear(ctx context.Context, sessionID string) error
}
