package chat

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single chat message. Messages are immutable once constructed;
// the conversation only ever appends them and nothing mutates them afterwards.
type Message struct {
	ID        string
	Author    string
	Content   string
	Timestamp time.Time
	// Image is an optional attachment reference (a file name or URL).
	// Empty means the message is text-only.
	Image string
}

// NewMessage creates a text message.
func NewMessage(author, content string, ts time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		Author:    author,
		Content:   content,
		Timestamp: ts,
	}
}

// NewMessageWithImage creates a message carrying an image reference.
func NewMessageWithImage(author, content, image string, ts time.Time) Message {
	m := NewMessage(author, content, ts)
	m.Image = image
	return m
}

// HasImage reports whether the message carries an attachment.
func (m Message) HasImage() bool {
	return m.Image != ""
}
