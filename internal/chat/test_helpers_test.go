package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/arabchat/arabchat-server/internal/directory"
	"github.com/arabchat/arabchat-server/internal/store"
)

func mustEvent(t *testing.T, ch <-chan *Event, kind EventKind) *Event {
	t.Helper()

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		select {
		case ev := <-ch:
			if ev == nil {
				continue
			}
			if ev.Kind == kind {
				return ev
			}
		default:
			time.Sleep(10 * time.Millisecond)
		}
	}
	t.Fatalf("expected event kind %v not received", kind)
	return nil
}

func expectNoEvent(t *testing.T, ch <-chan *Event) {
	t.Helper()

	select {
	case ev := <-ch:
		t.Fatalf("expected no event, got kind %v", ev.Kind)
	case <-time.After(150 * time.Millisecond):
	}
}

// fakeStore is an in-memory store.Store used by hub tests.
type fakeStore struct {
	mu      sync.Mutex
	nextID  int64
	users   map[string]*store.User
	saved   []store.Message
	saveErr error
	lookups int
	creates int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*store.User)}
}

func (f *fakeStore) CreateUser(_ context.Context, username string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	if _, ok := f.users[username]; ok {
		return nil, store.ErrUserExists
	}
	f.nextID++
	u := &store.User{ID: f.nextID, Username: username, CreatedAt: time.Now()}
	f.users[username] = u
	return u, nil
}

func (f *fakeStore) GetUserByUsername(_ context.Context, username string) (*store.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	u, ok := f.users[username]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeStore) UpsertUser(ctx context.Context, username string) (*store.User, error) {
	u, err := f.CreateUser(ctx, username)
	if errors.Is(err, store.ErrUserExists) {
		return f.GetUserByUsername(ctx, username)
	}
	return u, err
}

func (f *fakeStore) SaveMessage(_ context.Context, msg *store.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	msg.ID = int64(len(f.saved) + 1)
	msg.CreatedAt = time.Now()
	f.saved = append(f.saved, *msg)
	return nil
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) savedMessages() []store.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]store.Message, len(f.saved))
	copy(out, f.saved)
	return out
}

func (f *fakeStore) user(username string) *store.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[username]
}

func startTestHub(t *testing.T, st *fakeStore) *Hub {
	t.Helper()

	logger := zerolog.Nop()
	hub := NewHub(directory.New(st), st, NewHistory(0), NewPresence(), &logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	return hub
}

func registerClient(hub *Hub, id int) *Client {
	c := NewClient(fmt.Sprintf("conn-%d", id))
	hub.RegisterClient(c)
	return c
}
