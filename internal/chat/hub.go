package chat

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arabchat/arabchat-server/internal/directory"
	"github.com/arabchat/arabchat-server/internal/store"
)

// LobbyName is the single broadcast room all connections post to.
const LobbyName = "lobby"

// GuestName is the display username for messages sent before joining.
const GuestName = "guest"

// Hub owns all per-process chat state: connected clients, the lobby room,
// message history and the presence count. All state is confined to the Run
// goroutine; transports talk to it through RegisterClient, UnregisterClient
// and Send.
type Hub struct {
	directory *directory.Directory
	messages  store.MessageStore
	history   *History
	presence  *Presence
	log       *zerolog.Logger

	clients    map[*Client]struct{}
	lobby      *Room
	register   chan *Client
	unregister chan *Client
	commands   chan *Command
}

// NewHub constructs a hub over the given collaborators.
func NewHub(dir *directory.Directory, messages store.MessageStore, history *History, presence *Presence, logger *zerolog.Logger) *Hub {
	return &Hub{
		directory:  dir,
		messages:   messages,
		history:    history,
		presence:   presence,
		log:        logger,
		clients:    make(map[*Client]struct{}),
		lobby:      NewRoom(LobbyName),
		register:   make(chan *Client, 16),
		unregister: make(chan *Client, 16),
		commands:   make(chan *Command, 64),
	}
}

// RegisterClient announces a new connection to the hub.
func (h *Hub) RegisterClient(c *Client) {
	h.register <- c
}

// UnregisterClient announces a disconnect to the hub.
func (h *Hub) UnregisterClient(c *Client) {
	h.unregister <- c
}

// Send queues a client command for processing.
func (h *Hub) Send(cmd *Command) {
	h.commands <- cmd
}

// Run processes registrations, disconnects and commands until the context
// is cancelled. Commands are handled one at a time, so history appends and
// their broadcasts stay paired.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case c := <-h.register:
			h.handleRegister(c)
		case c := <-h.unregister:
			h.handleUnregister(c)
		case cmd := <-h.commands:
			h.handleCommand(ctx, cmd)
		case <-ctx.Done():
			return
		}
	}
}

func (h *Hub) handleRegister(c *Client) {
	h.clients[c] = struct{}{}
	h.presence.Add(c.ID)

	// History replay goes to the new connection only.
	c.send(&Event{Kind: EventHistory, Messages: h.history.Snapshot()})
}

func (h *Hub) handleUnregister(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	h.lobby.RemoveClient(c)
	h.presence.Remove(c.ID)

	h.broadcastOnline()
}

func (h *Hub) handleCommand(ctx context.Context, cmd *Command) {
	if _, ok := h.clients[cmd.Client]; !ok {
		return
	}

	switch cmd.Kind {
	case CommandJoin:
		h.handleJoin(cmd.Client, cmd.Username)
	case CommandMessage:
		h.handleMessage(ctx, cmd.Client, cmd.Text)
	case CommandTyping:
		h.handleTyping(cmd.Client, cmd.Payload)
	}
}

func (h *Hub) handleJoin(c *Client, username string) {
	if username == "" {
		return
	}

	// Display name keeps the raw casing. Re-joining just overwrites it;
	// lobby membership stays single.
	c.Name = username
	h.lobby.AddClient(c)

	h.broadcastOnline()
}

func (h *Hub) handleMessage(ctx context.Context, c *Client, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}

	display := c.Name
	if display == "" {
		display = GuestName
	}

	user, err := h.directory.GetOrCreate(ctx, display)
	if err != nil {
		h.log.Error().Err(err).Str("user", display).Msg("resolve message author")
		return
	}
	if err := h.messages.SaveMessage(ctx, &store.Message{UserID: user.ID, Text: text}); err != nil {
		h.log.Error().Err(err).Str("user", display).Msg("persist message")
		return
	}

	msg := Message{User: display, Text: text, TS: time.Now().UnixMilli()}
	h.history.Append(msg)
	h.lobby.Broadcast(&Event{Kind: EventMessage, Message: msg})
}

func (h *Hub) handleTyping(c *Client, payload map[string]any) {
	// Session name first, payload second: a payload that carries its own
	// user key overrides it.
	merged := make(map[string]any, len(payload)+1)
	merged["user"] = c.Name
	for k, v := range payload {
		merged[k] = v
	}

	h.lobby.BroadcastExcept(&Event{Kind: EventTyping, Typing: merged}, c)
}

// Online count covers every connected socket in the namespace, joined or not,
// and is announced to all of them.
func (h *Hub) broadcastOnline() {
	event := &Event{Kind: EventOnline, Count: h.presence.Count()}
	for client := range h.clients {
		client.send(event)
	}
}
