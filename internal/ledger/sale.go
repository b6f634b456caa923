package ledger

import "time"

// PaymentMethod is how the customer settled the sale.
type PaymentMethod string

// Supported payment methods.
const (
	PaymentCash PaymentMethod = "cash"
	PaymentQR   PaymentMethod = "qr"
)

// Valid reports whether the method is one of the supported values.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCash || m == PaymentQR
}

// DisplayText returns the operator-facing label used on receipts and reports.
func (m PaymentMethod) DisplayText() string {
	if m == PaymentQR {
		return "UPI/QR"
	}
	return "Cash"
}

// Item is one sold (category, rate) pair, frozen at checkout time.
type Item struct {
	Category string `json:"category"`
	Rate     int    `json:"rate"`
}

// Sale is one completed transaction. Sales are immutable once appended:
// there is no refund or void path, and deleting a catalog category later
// never touches the historical record.
type Sale struct {
	Date          time.Time     `json:"date"`
	Items         []Item        `json:"items"`
	Total         int64         `json:"total"`
	Phone         string        `json:"phone"`
	PaymentMethod PaymentMethod `json:"paymentMethod"`
}
