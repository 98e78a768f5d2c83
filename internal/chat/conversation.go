package chat

import "sync"

// Conversation owns the state of a single channel: its name, its member
// count, and the ordered message history (append-only, newest last). Reads
// hand out snapshots; all writes go through Append. Observers subscribe via
// Updates and receive a poke after every append.
type Conversation struct {
	mu      sync.RWMutex
	name    string
	members int
	msgs    []Message

	updates chan struct{}
}

// NewConversation creates a conversation seeded with an initial history.
func NewConversation(name string, members int, seed []Message) *Conversation {
	return &Conversation{
		name:    name,
		members: members,
		msgs:    append([]Message(nil), seed...),
		updates: make(chan struct{}, 16),
	}
}

// Channel returns the channel name and member count.
func (c *Conversation) Channel() (string, int) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.name, c.members
}

// Len returns the number of messages in the history.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.msgs)
}

// Messages returns a snapshot of the history in insertion order. The caller
// owns the returned slice.
func (c *Conversation) Messages() []Message {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]Message(nil), c.msgs...)
}

// Append adds one message to the end of the history and notifies observers.
// The notification is best-effort: when the observer lags, pokes coalesce
// rather than block the writer, and the observer re-reads the full snapshot
// anyway.
func (c *Conversation) Append(msg Message) {
	c.mu.Lock()
	c.msgs = append(c.msgs, msg)
	c.mu.Unlock()

	select {
	case c.updates <- struct{}{}:
	default:
	}
}

// Updates exposes the observer channel: one token per append, fewer when the
// reader lags. Consumers re-read state through Messages on every token.
func (c *Conversation) Updates() <-chan struct{} {
	return c.updates
}
