package commands

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrProcessMessageCommandIsNotConstructed = errors.New(
	"ProcessMessageCommand must be created via NewProcessMessageCommand constructor",
)

// ProcessMessageCommand represents one free-text message from a user to be
// interpreted and acted on.
type ProcessMessageCommand struct { //nolint:recvcheck //using for validation
	userID string
	text   string

	guard guard.ConstructorGuard
}

// NewProcessMessageCommand creates a message command. Text must be non-blank;
// an empty userID is allowed and recorded as the default sender.
func NewProcessMessageCommand(userID, text string) (ProcessMessageCommand, error) {
	if strings.TrimSpace(text) == "" {
		return ProcessMessageCommand{}, errs.NewValueIsRequiredError("text")
	}

	return ProcessMessageCommand{
		userID: userID,
		text:   text,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessMessageCommand) Validate() error {
	return c.guard.Validate(ErrProcessMessageCommandIsNotConstructed)
}

// UserID returns the sender identifier.
func (c ProcessMessageCommand) UserID() string {
	return c.userID
}

// Text returns the raw message text.
func (c ProcessMessageCommand) Text() string {
	return c.text
}
