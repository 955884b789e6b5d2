package parsing

import (
	"fmt"
	"strings"

	"dispatch/internal/core/domain/model/customer"
	"dispatch/internal/core/domain/model/intent"
	"dispatch/internal/core/domain/model/stock"
)

// BuildCatalogListing renders the catalog for the prompt. Items whose name
// and price both agree with a recovered hint are listed first under a
// priority marker, then the full catalog follows so the ID space stays
// complete: IDs are positions in the snapshot and the generator must be able
// to reference any of them.
func BuildCatalogListing(catalog []stock.Item, hints []PriceHint) string {
	var b strings.Builder

	if len(hints) > 0 {
		var priority strings.Builder
		for _, hint := range hints {
			for idx, item := range catalog {
				if item.Price() == hint.Price &&
					strings.Contains(strings.ToLower(item.Name()), hint.Keyword) {
					fmt.Fprintf(&priority, "ID:%d | * %s | %.0f฿ | stock:%d\n",
						idx, item.Name(), item.Price(), item.Quantity())
				}
			}
		}
		if priority.Len() > 0 {
			b.WriteString("[PRIORITY MATCHES - price agrees with the message]:\n")
			b.WriteString(priority.String())
			b.WriteString("\n[ALL ITEMS]:\n")
		}
	}

	for idx, item := range catalog {
		fmt.Fprintf(&b, "ID:%d | %s | %.0f฿ | stock:%d\n",
			idx, item.Name(), item.Price(), item.Quantity())
	}
	return b.String()
}

func buildPrompt(catalog []stock.Item, directory []customer.Customer,
	hints []PriceHint, rawText string,
) string {
	names := make([]string, 0, len(directory))
	for _, c := range directory {
		names = append(names, c.Name())
	}

	return fmt.Sprintf(`You are an order-taking assistant for a small retail shop.
Task: convert the raw message into structured intents.

Stock catalog:
%s
Known customers: %s

Raw message: %q

Strict rules:
1. Customer name:
   - The first word of the sentence that is not a product is usually the customer.
   - A word following a title marker ("ร้าน", "คุณ", "เจ้", "พี่") is always the customer.
2. Order items:
   - The pattern "item price quantity" means catalog price followed by quantity
     ("ice 20 5" = price 20, quantity 5).
   - When no price is given pick the catalog item whose name matches best.
3. Extra status:
   - Phrases meaning already paid ("จ่ายแล้ว", "โอนแล้ว", "เก็บเงินแล้ว") set "isPaid": true.
   - Phrases naming a courier ("ส่ง <name>", "ฝาก <name>") set "deliveryPerson".

Answer with a JSON ARRAY only, no other text:
[
  {
    "intent": "order",
    "customer": "customer name (use %q when unsure)",
    "items": [{"stockId": 0, "quantity": 1}],
    "isPaid": false,
    "deliveryPerson": "",
    "confidence": "high|medium|low"
  }
]
Use "intent": "payment" for payment settlements and "intent": "cancel" for cancellations.`,
		BuildCatalogListing(catalog, hints),
		strings.Join(names, ", "),
		rawText,
		intent.UnspecifiedCustomer)
}
