package queries

import (
	"context"

	"dispatch/internal/core/application/parsing"
	"dispatch/internal/core/domain/model/intent"
	"dispatch/internal/pkg/errs"
)

// TextInterpreter turns free text into interpreted candidates.
type TextInterpreter interface {
	Interpret(ctx context.Context, text string) ([]parsing.Candidate, error)
}

// ParsedItemResponse is one resolved order line of a candidate.
type ParsedItemResponse struct {
	Name     string
	Unit     string
	Price    float64
	Quantity int
	Total    float64
	Match    string
}

// ParsedCandidateResponse is one interpreted reading of the text. Items and
// Total are populated for order candidates only.
type ParsedCandidateResponse struct {
	Kind           string
	Customer       string
	Paid           bool
	DeliveryPerson string
	Confidence     string
	Items          []ParsedItemResponse
	Total          float64
}

// ParseOrderTextQueryHandler runs the interpretation pipeline without
// committing anything.
type ParseOrderTextQueryHandler struct {
	interpreter TextInterpreter
}

// NewParseOrderTextQueryHandler creates the dry-run parsing handler.
func NewParseOrderTextQueryHandler(interpreter TextInterpreter) (ParseOrderTextQueryHandler, error) {
	if interpreter == nil {
		return ParseOrderTextQueryHandler{}, errs.NewValueIsRequiredError("interpreter")
	}
	return ParseOrderTextQueryHandler{interpreter: interpreter}, nil
}

// Handle interprets the text and reports every candidate reading.
func (h ParseOrderTextQueryHandler) Handle(ctx context.Context, query ParseOrderTextQuery,
) ([]ParsedCandidateResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.interpreter.Interpret(ctx, query.Text())
	if err != nil {
		return nil, err
	}

	responses := make([]ParsedCandidateResponse, 0, len(candidates))
	for _, candidate := range candidates {
		responses = append(responses, toCandidateResponse(candidate))
	}
	return responses, nil
}

func toCandidateResponse(candidate parsing.Candidate) ParsedCandidateResponse {
	switch in := candidate.Intent.(type) {
	case intent.OrderIntent:
		items := make([]ParsedItemResponse, 0, len(candidate.Items))
		for _, mapped := range candidate.Items {
			items = append(items, ParsedItemResponse{
				Name:     mapped.Item.Name(),
				Unit:     mapped.Item.Unit(),
				Price:    mapped.Item.Price(),
				Quantity: mapped.Quantity,
				Total:    mapped.Item.Price() * float64(mapped.Quantity),
				Match:    mapped.Match.String(),
			})
		}
		return ParsedCandidateResponse{
			Kind:           "order",
			Customer:       in.Customer,
			Paid:           in.IsPaid,
			DeliveryPerson: in.DeliveryPerson,
			Confidence:     in.Confidence.String(),
			Items:          items,
			Total:          candidate.OrderTotal(),
		}
	case intent.PaymentIntent:
		return ParsedCandidateResponse{
			Kind:       "payment",
			Customer:   in.Customer,
			Confidence: in.Confidence.String(),
		}
	case intent.CancelIntent:
		return ParsedCandidateResponse{
			Kind:       "cancel",
			Customer:   in.Customer,
			Confidence: in.Confidence.String(),
		}
	default:
		return ParsedCandidateResponse{Kind: "unknown", Customer: intent.UnspecifiedCustomer}
	}
}
