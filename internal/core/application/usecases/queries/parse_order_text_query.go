package queries

import (
	"errors"
	"strings"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrParseOrderTextQueryIsNotConstructed = errors.New(
	"ParseOrderTextQuery must be created via NewParseOrderTextQuery constructor",
)

// ParseOrderTextQuery asks for a dry-run interpretation of free text: the
// candidates are returned for inspection and nothing is committed.
type ParseOrderTextQuery struct { //nolint:recvcheck //using for validation
	text string

	guard guard.ConstructorGuard
}

// NewParseOrderTextQuery creates a query for the given message text.
func NewParseOrderTextQuery(text string) (ParseOrderTextQuery, error) {
	if strings.TrimSpace(text) == "" {
		return ParseOrderTextQuery{}, errs.NewValueIsRequiredError("text")
	}

	return ParseOrderTextQuery{text: text, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q ParseOrderTextQuery) Validate() error {
	return q.guard.Validate(ErrParseOrderTextQueryIsNotConstructed)
}

// Text returns the message text to interpret.
func (q ParseOrderTextQuery) Text() string {
	return q.text
}
