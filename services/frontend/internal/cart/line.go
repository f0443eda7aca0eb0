package cart

import (
	"github.com/shopspring/decimal"
)

// MaxCustomizationLength mirrors the cap the cart store applies to annotations.
const MaxCustomizationLength = 100

// Line is one entry of the remote cart.
type Line struct {
	ID            string  `json:"cart_item_id"`
	MenuItemID    int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Quantity      int     `json:"quantity"`
	Customization string  `json:"customization"`
}

func (l Line) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(l.Price).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Item is the menu entry sent when adding to the cart.
type Item struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Collection is the cart as last returned by the cart store.
type Collection []Line

func (c Collection) Find(id string) (Line, bool) {
	for _, l := range c {
		if l.ID == id {
			return l, true
		}
	}
	return Line{}, false
}

// Total sums price times quantity over every line.
func (c Collection) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Count is the number of units in the cart, shown on the cart badge.
func (c Collection) Count() int {
	count := 0
	for _, l := range c {
		count += l.Quantity
	}
	return count
}

func (c Collection) clone() Collection {
	if c == nil {
		return Collection{}
	}
	out := make(Collection, len(c))
	copy(out, c)
	return out
}
