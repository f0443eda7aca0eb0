package cart

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/remote"
)

// CartDataAccess talks to the cart endpoints of the bistro service.
type CartDataAccess struct {
	client *remote.Client
}

func NewCartDataAccess(client *remote.Client) *CartDataAccess {
	return &CartDataAccess{client: client}
}

type quantityUpdate struct {
	Quantity int `json:"quantity"`
}

type customizationUpdate struct {
	Customization string `json:"customization"`
}

func (da *CartDataAccess) GetCart(ctx context.Context) (Collection, error) {
	if err := da.ready(); err != nil {
		return nil, err
	}

	var lines Collection
	if err := da.client.Get(ctx, "/cart", &lines); err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return lines.clone(), nil
}

func (da *CartDataAccess) AddItem(ctx context.Context, item Item) error {
	if err := da.ready(); err != nil {
		return err
	}

	if err := da.client.Post(ctx, "/cart/add", item, nil); err != nil {
		return fmt.Errorf("add %s to cart: %w", item.Name, err)
	}
	return nil
}

func (da *CartDataAccess) SetQuantity(ctx context.Context, lineID string, quantity int) error {
	if err := da.ready(); err != nil {
		return err
	}
	if quantity < 1 {
		return ValidationError{Field: "quantity", Message: "must be at least 1"}
	}

	if err := da.client.Put(ctx, linePath(lineID), quantityUpdate{Quantity: quantity}, nil); err != nil {
		return fmt.Errorf("set quantity of %s: %w", lineID, err)
	}
	return nil
}

func (da *CartDataAccess) SetCustomization(ctx context.Context, lineID, text string) error {
	if err := da.ready(); err != nil {
		return err
	}

	if err := da.client.Put(ctx, linePath(lineID), customizationUpdate{Customization: text}, nil); err != nil {
		return fmt.Errorf("set customization of %s: %w", lineID, err)
	}
	return nil
}

func (da *CartDataAccess) DeleteLine(ctx context.Context, lineID string) error {
	if err := da.ready(); err != nil {
		return err
	}

	if err := da.client.Delete(ctx, linePath(lineID)); err != nil {
		return fmt.Errorf("delete %s: %w", lineID, err)
	}
	return nil
}

func (da *CartDataAccess) PlaceOrder(ctx context.Context) (*orders.Order, error) {
	if err := da.ready(); err != nil {
		return nil, err
	}

	var placed orders.Order
	if err := da.client.Post(ctx, "/place-order", nil, &placed); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	if placed.ID == "" {
		return nil, fmt.Errorf("place order: store returned no order id")
	}
	return &placed, nil
}

func (da *CartDataAccess) ready() error {
	if da == nil || da.client == nil {
		return fmt.Errorf("cart client not configured")
	}
	return nil
}

func linePath(lineID string) string {
	return "/cart/item/" + url.PathEscape(lineID)
}
