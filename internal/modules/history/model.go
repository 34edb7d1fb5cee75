// README: Chat history; every user message and assistant reply, best effort.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

type Message struct {
	ID        string
	UserID    string
	Text      string
	Sender    Sender
	Timestamp time.Time
}

// NewMessage stamps a message with a fresh id.
func NewMessage(userID string, sender Sender, text string, at time.Time) Message {
	return Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Text:      text,
		Sender:    sender,
		Timestamp: at.UTC(),
	}
}

// Recorder persists chat messages. Callers log failures and carry on.
type Recorder interface {
	Record(ctx context.Context, msg Message) error
}

// NopRecorder drops everything; used when history is disabled.
type NopRecorder struct{}

func (NopRecorder) Record(context.Context, Message) error { return nil }
