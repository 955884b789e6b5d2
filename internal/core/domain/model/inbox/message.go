// Package inbox models the raw-message log: every free-text message is
// archived before interpretation so operators can review what was actually
// said, regardless of how it was parsed.
package inbox

import (
	"time"

	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
)

// Message is one archived inbound message.
type Message struct {
	id         uuid.UUID
	userID     string
	text       string
	receivedAt time.Time
}

// NewMessage archives a message with a fresh identifier.
func NewMessage(userID, text string, receivedAt time.Time) (Message, error) {
	if text == "" {
		return Message{}, errs.NewValueIsRequiredError("text")
	}
	if userID == "" {
		userID = "default"
	}

	return Message{
		id:         uuid.New(),
		userID:     userID,
		text:       text,
		receivedAt: receivedAt,
	}, nil
}

// RestoreMessage reconstructs a message from persistence.
func RestoreMessage(id uuid.UUID, userID, text string, receivedAt time.Time) Message {
	return Message{id: id, userID: userID, text: text, receivedAt: receivedAt}
}

// ID returns the message identifier.
func (m Message) ID() uuid.UUID {
	return m.id
}

// UserID returns the sender label.
func (m Message) UserID() string {
	return m.userID
}

// Text returns the raw message text.
func (m Message) Text() string {
	return m.text
}

// ReceivedAt returns the arrival timestamp.
func (m Message) ReceivedAt() time.Time {
	return m.receivedAt
}
