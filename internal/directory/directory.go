package directory

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/arabchat/arabchat-server/internal/store"
)

// Localized responses returned by the availability check.
const (
	MsgInvalidName     = "اسم غير صالح"
	MsgNameUnavailable = "الاسم غير متاح"
	MsgNameAvailable   = "الاسم متاح"
)

const minUsernameLen = 3

// usernamePattern allows unicode letters, digits, underscore, period and hyphen.
var usernamePattern = regexp.MustCompile(`^[\p{L}0-9_.-]+$`)

// Availability is the outcome of a username availability check.
type Availability struct {
	Available bool   `json:"available"`
	Message   string `json:"message"`
}

// Directory validates and looks up usernames against the user store.
type Directory struct {
	users store.UserStore
}

// New constructs a Directory over the given user store.
func New(users store.UserStore) *Directory {
	return &Directory{users: users}
}

// ValidUsername reports whether the candidate has an acceptable format:
// at least three characters, no whitespace, letters/digits/_/./- only.
func ValidUsername(candidate string) bool {
	if len([]rune(candidate)) < minUsernameLen {
		return false
	}
	if strings.IndexFunc(candidate, unicode.IsSpace) >= 0 {
		return false
	}
	return usernamePattern.MatchString(candidate)
}

// CheckAvailability validates the candidate and, if well-formed, looks it up
// case-insensitively. Malformed input never touches the store. Read-only.
func (d *Directory) CheckAvailability(ctx context.Context, raw string) (Availability, error) {
	if !ValidUsername(raw) {
		return Availability{Available: false, Message: MsgInvalidName}, nil
	}

	_, err := d.users.GetUserByUsername(ctx, strings.ToLower(raw))
	switch {
	case err == nil:
		return Availability{Available: false, Message: MsgNameUnavailable}, nil
	case errors.Is(err, store.ErrUserNotFound):
		return Availability{Available: true, Message: MsgNameAvailable}, nil
	default:
		return Availability{}, fmt.Errorf("lookup username: %w", err)
	}
}

// GetOrCreate returns the user for the lowercased username, creating the row
// if absent. A concurrent create losing the unique-constraint race falls back
// to a second lookup instead of failing.
func (d *Directory) GetOrCreate(ctx context.Context, username string) (*store.User, error) {
	username = strings.ToLower(username)

	user, err := d.users.GetUserByUsername(ctx, username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	user, err = d.users.CreateUser(ctx, username)
	if err == nil {
		return user, nil
	}
	if errors.Is(err, store.ErrUserExists) {
		// Lost the race to another connection; the row exists now.
		return d.users.GetUserByUsername(ctx, username)
	}
	return nil, fmt.Errorf("create user: %w", err)
}
