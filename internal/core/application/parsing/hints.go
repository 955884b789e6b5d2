package parsing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/intent"
)

// Boost signal names. Each one is independent evidence that the generator's
// reading of the message is right; enough of them together upgrades the
// confidence label.
const (
	SignalExactPriceMatch   = "exact_price_match"
	SignalCustomerMentioned = "customer_mentioned"
	SignalKnownCustomer     = "known_customer"
	SignalStockAvailable    = "stock_available"
	SignalClearQuantity     = "clear_quantity_pattern"
)

// fuzzyPriceTolerance is the relative distance within which a catalog price
// still counts as agreeing with a spoken price hint.
const fuzzyPriceTolerance = 0.1

var (
	// Transcribed speech pads orders with the filler connector "มี" ("have"),
	// which breaks the "item price quantity" pattern.
	fillerRe = regexp.MustCompile(`\s*มี\s*`)
	spacesRe = regexp.MustCompile(`\s+`)

	// "ice 20 baht" / "น้ำแข็ง 20 บาท": a word followed by a number and a
	// currency marker.
	explicitPriceRe = regexp.MustCompile(`(?i)([\p{L}\p{N}.()\-]+)\s+(\d+)\s*(?:บาท|baht|฿)`)

	// "ice 20 5": a word followed by two numbers, read as price then quantity.
	priceQuantityRe = regexp.MustCompile(`(?i)([\p{L}\p{N}.()\-]+)\s+(\d+)\s+(\d+)`)

	digitRe = regexp.MustCompile(`\d`)
)

// PriceHint is a price the speaker attached to an item keyword, recovered
// from the raw text before the generator sees it.
type PriceHint struct {
	Keyword string
	Price   float64
}

// NormalizeInput strips filler connectors and collapses repeated whitespace
// so the price patterns match transcribed speech.
func NormalizeInput(text string) string {
	normalized := fillerRe.ReplaceAllString(text, " ")
	normalized = spacesRe.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// ExtractPriceHints recovers spoken prices from the normalized text. Both
// patterns may fire on the same phrase; duplicates are harmless because the
// first matching hint per item wins.
func ExtractPriceHints(text string) []PriceHint {
	var hints []PriceHint

	for _, m := range explicitPriceRe.FindAllStringSubmatch(text, -1) {
		price, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		hints = append(hints, PriceHint{Keyword: strings.ToLower(m[1]), Price: float64(price)})
	}

	for _, m := range priceQuantityRe.FindAllStringSubmatch(text, -1) {
		price, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}
		hints = append(hints, PriceHint{Keyword: strings.ToLower(m[1]), Price: float64(price)})
	}

	return hints
}

// GradePriceMatch grades a catalog price against a hint. Exact when equal,
// Fuzzy within 10% of the hinted price, Partial otherwise or when no hint
// was recovered for the item.
func GradePriceMatch(catalogPrice float64, hint *PriceHint) intent.MatchConfidence {
	if hint == nil {
		return intent.Partial
	}
	if catalogPrice == hint.Price {
		return intent.Exact
	}
	if math.Abs(catalogPrice-hint.Price) <= hint.Price*fuzzyPriceTolerance {
		return intent.Fuzzy
	}
	return intent.Partial
}

// CollectSignals gathers the boost evidence for one interpreted result.
func CollectSignals(customerName string, items []MappedItem, normalizedInput string,
	directory []customer.Customer,
) []string {
	var signals []string

	allExact := len(items) > 0
	for _, item := range items {
		if item.Match != intent.Exact {
			allExact = false
			break
		}
	}
	if allExact {
		signals = append(signals, SignalExactPriceMatch)
	}

	if customerName != "" && customerName != intent.UnspecifiedCustomer {
		signals = append(signals, SignalCustomerMentioned)
		for _, c := range directory {
			if c.NameContains(customerName) {
				signals = append(signals, SignalKnownCustomer)
				break
			}
		}
	}

	allInStock := true
	for _, item := range items {
		if !item.Item.CanFulfill(item.Quantity) {
			allInStock = false
			break
		}
	}
	if allInStock {
		signals = append(signals, SignalStockAvailable)
	}

	if digitRe.MatchString(normalizedInput) {
		signals = append(signals, SignalClearQuantity)
	}

	return signals
}

// BoostConfidence upgrades the generator's own confidence label one step when
// enough independent signals back it: medium becomes high at two signals, low
// becomes medium at three. High is never downgraded and no result jumps two
// steps.
func BoostConfidence(base intent.Confidence, signalCount int) intent.Confidence {
	if base == intent.Medium && signalCount >= 2 {
		return intent.High
	}
	if base == intent.Low && signalCount >= 3 {
		return intent.Medium
	}
	return base
}
