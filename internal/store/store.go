// Package store emulates the host platform's per-chat persistence: a
// JSON state blob per chat, the message feed, and prompt-injection slots.
package store

import (
	"context"

	"github.com/rcliao/secrets-tracker/internal/model"
)

// Position says where the host places injected text relative to the prompt.
type Position string

const (
	BeforePrompt Position = "before_prompt"
	InPrompt     Position = "in_prompt"
	InChat       Position = "in_chat"
)

// ValidPositions are the allowed injection positions.
var ValidPositions = map[Position]bool{
	BeforePrompt: true,
	InPrompt:     true,
	InChat:       true,
}

// Injection is one prompt-injection slot, keyed by chat and tag.
type Injection struct {
	ChatID     string   `json:"chat_id"`
	Tag        string   `json:"tag"`
	Text       string   `json:"text"`
	Position   Position `json:"position"`
	Depth      int      `json:"depth"`
	Persistent bool     `json:"persistent"`
}

// Store is the host persistence surface the tracker relies on.
type Store interface {
	// LoadState returns the chat's state, creating and persisting an empty
	// one on first access. Idempotent.
	LoadState(ctx context.Context, chatID string) (*model.State, error)

	// SaveState persists the chat's state wholesale.
	SaveState(ctx context.Context, chatID string, st *model.State) error

	// AppendMessage adds a message to the chat feed.
	AppendMessage(ctx context.Context, chatID, speaker string, isUser bool, text string) (*model.Message, error)

	// RecentMessages returns up to limit trailing messages in chronological order.
	RecentMessages(ctx context.Context, chatID string, limit int) ([]model.Message, error)

	// SetInjection upserts an injection slot; empty text clears it.
	SetInjection(ctx context.Context, inj Injection) error

	// GetInjection reads an injection slot. Returns nil when the slot is clear.
	GetInjection(ctx context.Context, chatID, tag string) (*Injection, error)

	// Chats lists known chat ids.
	Chats(ctx context.Context) ([]string, error)

	// NewID mints a unique id (secrets, messages).
	NewID() string

	// Close closes the store.
	Close() error
}
