package chat

// CommandKind describes what the client wants to do.
type CommandKind int

const (
	// CommandJoin sets the display username and enters the lobby.
	CommandJoin CommandKind = iota
	// CommandMessage sends a chat message to the lobby.
	CommandMessage
	// CommandTyping notifies other lobby members that the client is typing.
	CommandTyping
)

// Command represents an action requested by a client.
type Command struct {
	Kind     CommandKind
	Client   *Client
	Username string         // For CommandJoin
	Text     string         // For CommandMessage
	Payload  map[string]any // For CommandTyping
}
