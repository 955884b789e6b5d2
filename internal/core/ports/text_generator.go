package ports

import (
	"context"
	"encoding/json"
)

// TextGenerator is the generative text collaborator used for language
// understanding. Given the interpretation prompt it must return a JSON value
// (typically an array of intent objects); anything that is not valid JSON is
// an error at this boundary, surfaced as an ExternalServiceError by the
// adapter. The call is opaque: it either returns a structured result or
// fails, with no cancellation contract of its own beyond ctx.
type TextGenerator interface {
	Complete(ctx context.Context, prompt string) (json.RawMessage, error)
}
