package models

import "time"

// CartLine is one product's quantity and its unit price captured at add-time.
// The price is deliberately not re-read from the catalog afterwards so cart
// totals stay stable against catalog price changes.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type Cart struct {
	UserID    string     `json:"user_id"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// CartTotal recomputes the total from the lines on every call.
func CartTotal(lines []CartLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.UnitPrice * float64(line.Quantity)
	}
	return total
}
