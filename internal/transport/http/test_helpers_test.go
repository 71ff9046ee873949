package http

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/rs/zerolog"

	"github.com/arabchat/arabchat-server/internal/chat"
	"github.com/arabchat/arabchat-server/internal/config"
	"github.com/arabchat/arabchat-server/internal/directory"
	"github.com/arabchat/arabchat-server/internal/proto"
	"github.com/arabchat/arabchat-server/internal/store/sqlite"
)

// startTestServer spins up the full stack over an in-memory SQLite store.
func startTestServer(t *testing.T) (*httptest.Server, *sqlite.SQLiteStore) {
	t.Helper()

	st, err := sqlite.New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	logger := zerolog.Nop()
	dir := directory.New(st)
	hub := chat.NewHub(dir, st, chat.NewHistory(0), chat.NewPresence(), &logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go hub.Run(ctx)

	server := NewServer(hub, dir, config.Config{
		Addr:              ":0",
		ReadHeaderTimeout: time.Second,
		ShutdownTimeout:   time.Second,
	}, &logger)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)

	return ts, st
}

// outbound mirrors proto.Outbound with raw data for per-type decoding.
type outbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func sendEvent(t *testing.T, ctx context.Context, conn *websocket.Conn, eventType string, payload any) {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal %s payload: %v", eventType, err)
	}
	if err := wsjson.Write(ctx, conn, proto.Inbound{Type: eventType, Data: data}); err != nil {
		t.Fatalf("write %s event: %v", eventType, err)
	}
}

// mustOutbound reads frames until one of the wanted type arrives.
func mustOutbound(t *testing.T, ctx context.Context, conn *websocket.Conn, wantType string) json.RawMessage {
	t.Helper()

	for {
		var out outbound
		if err := wsjson.Read(ctx, conn, &out); err != nil {
			t.Fatalf("read while waiting for %q: %v", wantType, err)
		}
		if out.Type == wantType {
			return out.Data
		}
	}
}

func mustOnlineCount(t *testing.T, ctx context.Context, conn *websocket.Conn, want int) {
	t.Helper()

	data := mustOutbound(t, ctx, conn, proto.OutboundTypeOnline)
	var online proto.Online
	if err := json.Unmarshal(data, &online); err != nil {
		t.Fatalf("unmarshal online payload: %v", err)
	}
	if online.Count != want {
		t.Fatalf("expected online count %d, got %d", want, online.Count)
	}
}
