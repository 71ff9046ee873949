package chat

import "sync"

// DefaultHistorySize is the number of messages replayed to new connections.
const DefaultHistorySize = 50

// History is a bounded, ordered buffer of the most recent chat messages.
// Oldest entries are evicted first. Safe for concurrent use.
type History struct {
	mu       sync.Mutex
	capacity int
	messages []Message
}

// NewHistory constructs a history buffer. A non-positive capacity falls back
// to DefaultHistorySize.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		capacity: capacity,
		messages: make([]Message, 0, capacity),
	}
}

// Append adds a message to the end, evicting from the front when full.
func (h *History) Append(msg Message) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages = append(h.messages, msg)
	if len(h.messages) > h.capacity {
		h.messages = h.messages[len(h.messages)-h.capacity:]
	}
}

// Snapshot returns a copy of the current contents, oldest first.
func (h *History) Snapshot() []Message {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Message, len(h.messages))
	copy(out, h.messages)
	return out
}

// Len returns the current number of buffered messages.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.messages)
}
