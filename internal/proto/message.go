package proto

import "encoding/json"

// Inbound is the envelope for messages coming from the client.
type Inbound struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

const (
	InboundTypeJoin    = "join"
	InboundTypeMessage = "message"
	InboundTypeTyping  = "typing"

	OutboundTypeHistory = "history"
	OutboundTypeMessage = "message"
	OutboundTypeTyping  = "typing"
	OutboundTypeOnline  = "online"
)

// JoinData sets the display username for the connection.
type JoinData struct {
	Username string `json:"username"`
}

// MessageData is a chat message from the client.
type MessageData struct {
	Text string `json:"text"`
}

// Outbound is the envelope for messages sent to the client.
type Outbound struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// ChatMessage is the wire form of a broadcast or replayed chat message.
type ChatMessage struct {
	User string `json:"user"`
	Text string `json:"text"`
	TS   int64  `json:"ts"`
}

// Online reports the number of currently connected sockets.
type Online struct {
	Count int `json:"count"`
}
