package store

import (
	"context"
	"errors"
	"time"
)

// User represents a chat user. Usernames are stored lowercased and are unique.
// Users are created lazily on first message and never deleted.
type User struct {
	ID        int64
	Username  string
	CreatedAt time.Time
}

// Message represents a persisted chat message. Immutable once created.
type Message struct {
	ID        int64
	UserID    int64
	Text      string
	CreatedAt time.Time
}

var (
	// ErrUserNotFound is returned when a username lookup finds no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when an insert hits the unique username constraint.
	ErrUserExists = errors.New("user already exists")
)

// UserStore handles user persistence.
type UserStore interface {
	// CreateUser inserts a new user. Returns ErrUserExists if the username
	// is already taken; callers racing on get-or-create rely on this.
	CreateUser(ctx context.Context, username string) (*User, error)

	// GetUserByUsername retrieves a user by exact (lowercased) username.
	// Returns ErrUserNotFound on a miss.
	GetUserByUsername(ctx context.Context, username string) (*User, error)

	// UpsertUser inserts the username if absent and returns the row either way.
	// Used for seeding reserved names; idempotent.
	UpsertUser(ctx context.Context, username string) (*User, error)
}

// MessageStore handles message persistence.
type MessageStore interface {
	// SaveMessage persists a message and fills in its ID and CreatedAt.
	SaveMessage(ctx context.Context, msg *Message) error
}

// Store aggregates all storage interfaces.
type Store interface {
	UserStore
	MessageStore

	// Close closes the underlying database connection.
	Close() error
}
