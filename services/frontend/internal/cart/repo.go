package cart

import (
	"context"

	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
)

// Store is the remote cart store.
type Store interface {
	GetCart(ctx context.Context) (Collection, error)
	AddItem(ctx context.Context, item Item) error
	SetQuantity(ctx context.Context, lineID string, quantity int) error
	SetCustomization(ctx context.Context, lineID, text string) error
	DeleteLine(ctx context.Context, lineID string) error
	PlaceOrder(ctx context.Context) (*orders.Order, error)
}
