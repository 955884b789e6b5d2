// Package parsing turns free-text customer messages into structured intents.
// The flow is deliberately split in two: deterministic text work here (filler
// stripping, price hint extraction, catalog prioritization, confidence
// boosting) and the one genuinely fuzzy step, reading the message, delegated
// to a text generator behind ports.TextGenerator. Everything the generator
// returns is re-validated against the catalog snapshot before it reaches a
// use case.
package parsing

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"dispatch/internal/core/application/caches"
	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/intent"
	"dispatch/internal/core/domain/model/stock"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// MappedItem is a generator item reference resolved against the catalog
// snapshot: the concrete item, the requested quantity and how well the
// catalog price agreed with the spoken price hint.
type MappedItem struct {
	Item     stock.Item
	Quantity int
	Match    intent.MatchConfidence
}

// Candidate is one interpreted reading of a message, ready for a use case to
// act on. Items is populated for order intents only.
type Candidate struct {
	Intent  intent.Intent
	Items   []MappedItem
	RawText string
}

// OrderTotal returns the monetary value of the mapped order lines.
func (c Candidate) OrderTotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Item.Price() * float64(item.Quantity)
	}
	return total
}

// Interpreter builds the interpretation prompt from the catalog and customer
// snapshots, calls the generator, and decodes its answer into Candidates.
type Interpreter struct {
	generator ports.TextGenerator
	stocks    *caches.StockCache
	customers *caches.CustomerCache
}

// NewInterpreter creates an Interpreter over the given generator and caches.
func NewInterpreter(generator ports.TextGenerator, stocks *caches.StockCache,
	customers *caches.CustomerCache,
) (*Interpreter, error) {
	if generator == nil {
		return nil, errs.NewValueIsRequiredError("generator")
	}
	if stocks == nil {
		return nil, errs.NewValueIsRequiredError("stocks")
	}
	if customers == nil {
		return nil, errs.NewValueIsRequiredError("customers")
	}

	return &Interpreter{generator: generator, stocks: stocks, customers: customers}, nil
}

// generatedResult is the wire shape of one element of the generator's answer.
type generatedResult struct {
	Intent         string          `json:"intent"`
	Customer       string          `json:"customer"`
	Items          []generatedItem `json:"items"`
	IsPaid         bool            `json:"isPaid"`
	DeliveryPerson string          `json:"deliveryPerson"`
	Confidence     string          `json:"confidence"`
}

type generatedItem struct {
	StockID  int `json:"stockId"`
	Quantity int `json:"quantity"`
}

// Interpret reads one message. It may return several candidates when the
// message carries several intents ("Somchai 2 bags of rice, Malee paid").
func (p *Interpreter) Interpret(ctx context.Context, text string) ([]Candidate, error) {
	if strings.TrimSpace(text) == "" {
		return nil, errs.NewValueIsRequiredError("text")
	}

	catalog, err := p.stocks.Get(ctx)
	if err != nil {
		return nil, err
	}
	directory, err := p.customers.Get(ctx)
	if err != nil {
		return nil, err
	}

	normalized := NormalizeInput(text)
	hints := ExtractPriceHints(normalized)
	prompt := buildPrompt(catalog, directory, hints, text)

	raw, err := p.generator.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	results, err := decodeResults(raw)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(results))
	for _, res := range results {
		candidate, err := p.buildCandidate(res, catalog, hints, normalized, text, directory)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, candidate)
	}
	return candidates, nil
}

func (p *Interpreter) buildCandidate(res generatedResult, catalog []stock.Item,
	hints []PriceHint, normalized, raw string, directory []customer.Customer,
) (Candidate, error) {
	customerName := res.Customer
	if customerName == "" {
		customerName = intent.UnspecifiedCustomer
	}

	// The generator occasionally invents confidence labels; treat anything
	// unrecognized as low rather than failing the whole message.
	confidence, err := intent.ConfidenceFromString(res.Confidence)
	if err != nil {
		confidence = intent.Low
	}

	switch res.Intent {
	case "order":
		mapped, refs := mapItems(res.Items, catalog, hints)
		signals := CollectSignals(customerName, mapped, normalized, directory)
		confidence = BoostConfidence(confidence, len(signals))

		return Candidate{
			Intent: intent.OrderIntent{
				Customer:       customerName,
				Items:          refs,
				IsPaid:         res.IsPaid,
				DeliveryPerson: res.DeliveryPerson,
				Confidence:     confidence,
			},
			Items:   mapped,
			RawText: raw,
		}, nil

	case "payment":
		signals := CollectSignals(customerName, nil, normalized, directory)
		confidence = BoostConfidence(confidence, len(signals))
		return Candidate{
			Intent:  intent.PaymentIntent{Customer: customerName, Confidence: confidence},
			RawText: raw,
		}, nil

	case "cancel":
		signals := CollectSignals(customerName, nil, normalized, directory)
		confidence = BoostConfidence(confidence, len(signals))
		return Candidate{
			Intent:  intent.CancelIntent{Customer: customerName, Confidence: confidence},
			RawText: raw,
		}, nil

	default:
		return Candidate{}, errs.NewExternalServiceError("generator",
			errs.NewValueIsInvalidError(fmt.Sprintf("unknown intent %q", res.Intent)))
	}
}

// mapItems resolves generator item references against the catalog snapshot.
// References outside the catalog are dropped; a missing or non-positive
// quantity defaults to one.
func mapItems(items []generatedItem, catalog []stock.Item, hints []PriceHint,
) ([]MappedItem, []intent.ItemRef) {
	var mapped []MappedItem
	var refs []intent.ItemRef

	for _, ref := range items {
		if ref.StockID < 0 || ref.StockID >= len(catalog) {
			continue
		}
		item := catalog[ref.StockID]

		quantity := ref.Quantity
		if quantity <= 0 {
			quantity = 1
		}

		mapped = append(mapped, MappedItem{
			Item:     item,
			Quantity: quantity,
			Match:    GradePriceMatch(item.Price(), findHint(item, hints)),
		})
		refs = append(refs, intent.ItemRef{StockIndex: ref.StockID, Quantity: quantity})
	}
	return mapped, refs
}

// findHint returns the first hint whose keyword appears in the item name.
func findHint(item stock.Item, hints []PriceHint) *PriceHint {
	name := strings.ToLower(item.Name())
	for i := range hints {
		if strings.Contains(name, hints[i].Keyword) {
			return &hints[i]
		}
	}
	return nil
}

// decodeResults decodes the generator's JSON answer. A single object is
// accepted as a one-element array; anything else is an external service
// failure.
func decodeResults(raw json.RawMessage) ([]generatedResult, error) {
	var results []generatedResult
	if err := json.Unmarshal(raw, &results); err == nil {
		return results, nil
	}

	var single generatedResult
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, errs.NewExternalServiceError("generator", err)
	}
	return []generatedResult{single}, nil
}
