package chat

// Message is the transient broadcast/history form of a chat message.
// It carries the display username rather than a user ID and is never persisted.
type Message struct {
	User string
	Text string
	TS   int64 // epoch milliseconds
}
