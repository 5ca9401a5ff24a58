package models

import "github.com/shopspring/decimal"

// CartLine is one article's presence in the order being built. Designation
// and UnitPrice are captured when the line is written, not re-read from the
// catalog.
type CartLine struct {
	Code        string          `json:"code"`
	Designation string          `json:"designation"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `json:"total"`
	Backorder   bool            `json:"backorder"`
}

// Recalculate brings Total back in line with UnitPrice and Quantity.
func (l *CartLine) Recalculate() {
	l.Total = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
