// Package receipt renders a completed sale into the fixed-layout text block
// handed to the customer, plus the WhatsApp deep link used to share it.
package receipt

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/varuna-collections/pos-api/internal/ledger"
)

// Formatter renders receipts for one store.
type Formatter struct {
	StoreName string
}

// Format produces the plain-text receipt.
func (f Formatter) Format(sale ledger.Sale) string {
	name := strings.TrimSpace(f.StoreName)
	if name == "" {
		name = "Varuna Collections"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "--- %s Receipt ---\n", name)
	fmt.Fprintf(&b, "Date: %s\n", sale.Date.Format("1/2/2006, 3:04:05 PM"))
	fmt.Fprintf(&b, "Phone: %s\n", sale.Phone)
	fmt.Fprintf(&b, "Payment: %s\n\n", sale.PaymentMethod.DisplayText())
	b.WriteString("Items:\n")
	for _, item := range sale.Items {
		fmt.Fprintf(&b, "%-10s: ₹%.2f\n", item.Category, float64(item.Rate))
	}
	b.WriteString("\n---------------------------\n")
	fmt.Fprintf(&b, "Total: ₹%.2f", float64(sale.Total))
	return b.String()
}

// ShareLink builds the wa.me deep link embedding the receipt text. Spaces
// are encoded %20, not +, to match encodeURIComponent semantics expected by
// the messaging app.
func ShareLink(text, phone string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", url.PathEscape(phone), encoded)
}
