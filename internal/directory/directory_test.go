package directory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arabchat/arabchat-server/internal/store"
)

// fakeUsers is an in-memory store.UserStore that counts calls.
type fakeUsers struct {
	users     map[string]*store.User
	nextID    int64
	lookups   int
	creates   int
	createErr error
}

func newFakeUsers(seeded ...string) *fakeUsers {
	f := &fakeUsers{users: make(map[string]*store.User)}
	for _, name := range seeded {
		f.nextID++
		f.users[name] = &store.User{ID: f.nextID, Username: name, CreatedAt: time.Now()}
	}
	return f
}

func (f *fakeUsers) CreateUser(_ context.Context, username string) (*store.User, error) {
	f.creates++
	if f.createErr != nil {
		if errors.Is(f.createErr, store.ErrUserExists) {
			// Model a concurrent winner: the row appears just as our
			// insert fails on the unique constraint.
			f.nextID++
			f.users[username] = &store.User{ID: f.nextID, Username: username, CreatedAt: time.Now()}
		}
		return nil, f.createErr
	}
	if _, ok := f.users[username]; ok {
		return nil, store.ErrUserExists
	}
	f.nextID++
	u := &store.User{ID: f.nextID, Username: username, CreatedAt: time.Now()}
	f.users[username] = u
	return u, nil
}

func (f *fakeUsers) GetUserByUsername(_ context.Context, username string) (*store.User, error) {
	f.lookups++
	u, ok := f.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUsers) UpsertUser(ctx context.Context, username string) (*store.User, error) {
	u, err := f.CreateUser(ctx, username)
	if errors.Is(err, store.ErrUserExists) {
		return f.GetUserByUsername(ctx, username)
	}
	return u, err
}

func TestCheckAvailabilityRejectsMalformedWithoutLookup(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
	}{
		{name: "empty", candidate: ""},
		{name: "too short", candidate: "ab"},
		{name: "whitespace inside", candidate: "ab cd"},
		{name: "leading space", candidate: " abc"},
		{name: "tab", candidate: "ab\tcd"},
		{name: "illegal punctuation", candidate: "ali!"},
		{name: "at sign", candidate: "user@host"},
		{name: "slash", candidate: "a/b/c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUsers()
			d := New(users)

			result, err := d.CheckAvailability(context.Background(), tt.candidate)
			if err != nil {
				t.Fatalf("CheckAvailability failed: %v", err)
			}
			if result.Available {
				t.Fatalf("expected %q to be rejected", tt.candidate)
			}
			if result.Message != MsgInvalidName {
				t.Fatalf("expected invalid-name message, got %q", result.Message)
			}
			if users.lookups != 0 {
				t.Fatalf("malformed input must not hit the store, got %d lookups", users.lookups)
			}
		})
	}
}

func TestCheckAvailabilityAcceptsUnicodeLetters(t *testing.T) {
	for _, candidate := range []string{"sara", "Omar_99", "a.b-c", "محمد", "Héloïse"} {
		users := newFakeUsers()
		d := New(users)

		result, err := d.CheckAvailability(context.Background(), candidate)
		if err != nil {
			t.Fatalf("CheckAvailability(%q) failed: %v", candidate, err)
		}
		if !result.Available || result.Message != MsgNameAvailable {
			t.Fatalf("expected %q available, got %+v", candidate, result)
		}
		if users.lookups != 1 {
			t.Fatalf("expected exactly one lookup for %q, got %d", candidate, users.lookups)
		}
	}
}

func TestCheckAvailabilityTakenIsCaseInsensitive(t *testing.T) {
	users := newFakeUsers("admin")
	d := New(users)

	for _, candidate := range []string{"admin", "Admin", "ADMIN"} {
		result, err := d.CheckAvailability(context.Background(), candidate)
		if err != nil {
			t.Fatalf("CheckAvailability(%q) failed: %v", candidate, err)
		}
		if result.Available {
			t.Fatalf("expected %q to be taken", candidate)
		}
		if result.Message != MsgNameUnavailable {
			t.Fatalf("expected unavailable message, got %q", result.Message)
		}
	}
}

func TestGetOrCreateCreatesLowercased(t *testing.T) {
	users := newFakeUsers()
	d := New(users)

	user, err := d.GetOrCreate(context.Background(), "Sara")
	if err != nil {
		t.Fatalf("GetOrCreate failed: %v", err)
	}
	if user.Username != "sara" {
		t.Fatalf("expected lowercased username, got %q", user.Username)
	}

	again, err := d.GetOrCreate(context.Background(), "SARA")
	if err != nil {
		t.Fatalf("second GetOrCreate failed: %v", err)
	}
	if again.ID != user.ID {
		t.Fatalf("expected same user, got %d and %d", user.ID, again.ID)
	}
	if users.creates != 1 {
		t.Fatalf("expected a single create, got %d", users.creates)
	}
}

func TestGetOrCreateRecoversFromCreateRace(t *testing.T) {
	users := newFakeUsers()
	d := New(users)

	// Another connection wins the insert between our lookup and create.
	users.createErr = store.ErrUserExists

	user, err := d.GetOrCreate(context.Background(), "sara")
	if err != nil {
		t.Fatalf("GetOrCreate did not recover from race: %v", err)
	}
	if user.Username != "sara" {
		t.Fatalf("expected the winning row, got %+v", user)
	}
	if users.lookups != 2 {
		t.Fatalf("expected fallback lookup after lost race, got %d lookups", users.lookups)
	}
}
