package orders

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
	"github.com/shopspring/decimal"
)

// Order mirrors the order record returned by the order store.
type Order struct {
	ID              string             `json:"order_id"`
	Status          orderstatus.Status `json:"status"`
	Items           []LineItem         `json:"items"`
	Timestamp       time.Time          `json:"timestamp"`
	StatusUpdatedAt time.Time          `json:"status_update_timestamp"`
	TotalCost       *float64           `json:"total_cost,omitempty"`
}

// UnmarshalJSON accepts the store's timestamps, which may carry no UTC offset.
func (o *Order) UnmarshalJSON(data []byte) error {
	type plain Order
	aux := struct {
		*plain
		Timestamp       storeTime `json:"timestamp"`
		StatusUpdatedAt storeTime `json:"status_update_timestamp"`
	}{plain: (*plain)(o)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	o.Timestamp = time.Time(aux.Timestamp)
	o.StatusUpdatedAt = time.Time(aux.StatusUpdatedAt)
	return nil
}

// naiveLayout matches datetimes the store serializes without an offset. They are
// written in UTC.
const naiveLayout = "2006-01-02T15:04:05.999999999"

type storeTime time.Time

func (t *storeTime) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" || raw == `""` {
		*t = storeTime(time.Time{})
		return nil
	}
	raw = strings.Trim(raw, `"`)

	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		*t = storeTime(parsed)
		return nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, raw, time.UTC)
	if err != nil {
		return fmt.Errorf("parse store timestamp %q: %w", raw, err)
	}
	*t = storeTime(parsed)
	return nil
}

// LineItem is one entry of an order.
type LineItem struct {
	MenuItemID    int64   `json:"id"`
	Name          string  `json:"name"`
	Quantity      int     `json:"quantity"`
	Price         float64 `json:"price"`
	Customization string  `json:"customization,omitempty"`
}

// Total returns the stored total when present, otherwise the sum of its lines.
func (o Order) Total() decimal.Decimal {
	if o.TotalCost != nil {
		return decimal.NewFromFloat(*o.TotalCost)
	}
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

func (li LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(li.Price).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Config holds the remotely managed order policy.
type Config struct {
	CancellationCutoffMinutes int `json:"cancellation_cutoff_minutes"`
	PaidVisibilityMinutes     int `json:"paid_visibility_minutes"`
}

// DefaultConfig matches the values the order store seeds on first start.
var DefaultConfig = Config{
	CancellationCutoffMinutes: 5,
	PaidVisibilityMinutes:     10,
}

func (c Config) CancellationCutoff() time.Duration {
	return time.Duration(c.CancellationCutoffMinutes) * time.Minute
}

func (c Config) PaidVisibility() time.Duration {
	return time.Duration(c.PaidVisibilityMinutes) * time.Minute
}

// Validate rejects negative windows before they reach the config store.
func (c Config) Validate() error {
	if c.CancellationCutoffMinutes < 0 {
		return ValidationError{Field: "cancellation_cutoff_minutes", Message: "must not be negative"}
	}
	if c.PaidVisibilityMinutes < 0 {
		return ValidationError{Field: "paid_visibility_minutes", Message: "must not be negative"}
	}
	return nil
}

func findOrder(orders []Order, id string) (Order, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return Order{}, false
}
