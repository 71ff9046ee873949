package chat

// EventKind is a notification the core emits to clients.
type EventKind int

const (
	// EventHistory delivers buffered messages to a client upon connecting.
	EventHistory EventKind = iota
	// EventMessage notifies lobby members about a chat message.
	EventMessage
	// EventTyping notifies lobby members that a user is typing.
	EventTyping
	// EventOnline reports the connected-socket count to the whole namespace.
	EventOnline
)

// Event is sent to clients to describe what happened in the chat.
type Event struct {
	Kind     EventKind
	Message  Message
	Messages []Message      // For EventHistory
	Typing   map[string]any // For EventTyping
	Count    int            // For EventOnline
}
