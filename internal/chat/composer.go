package chat

import (
	"strings"
	"time"
)

// Clock supplies timestamps for outgoing messages. Swappable in tests.
type Clock func() time.Time

// Composer turns input-box submissions into messages authored by the local
// user and appends them to the conversation.
type Composer struct {
	conv   *Conversation
	author string
	clock  Clock
}

// NewComposer creates a composer signing messages with the given identity.
// A nil clock defaults to time.Now.
func NewComposer(conv *Conversation, author string, clock Clock) *Composer {
	if clock == nil {
		clock = time.Now
	}
	return &Composer{conv: conv, author: author, clock: clock}
}

// Author returns the identity the composer signs messages with.
func (c *Composer) Author() string { return c.author }

// Submit trims the text, stamps it with the current clock value, and appends
// the resulting message. Blank input is dropped and reported false.
func (c *Composer) Submit(text string) (Message, bool) {
	return c.SubmitWithImage(text, "")
}

// SubmitWithImage is Submit with an optional image reference attached. A
// submission carrying only an image is allowed.
func (c *Composer) SubmitWithImage(text, image string) (Message, bool) {
	content := strings.TrimSpace(text)
	if content == "" && image == "" {
		return Message{}, false
	}
	msg := NewMessageWithImage(c.author, content, image, c.clock())
	c.conv.Append(msg)
	return msg, true
}
