package orders

import (
	"context"
	"fmt"
	"net/url"

	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/remote"
)

// OrderDataAccess reads and changes orders on the bistro store.
type OrderDataAccess struct {
	client *remote.Client
}

func NewOrderDataAccess(client *remote.Client) *OrderDataAccess {
	return &OrderDataAccess{client: client}
}

// ListOrders returns every order known to the store (operator dashboard).
func (da *OrderDataAccess) ListOrders(ctx context.Context) ([]Order, error) {
	return da.list(ctx, "/orders")
}

// ListHistory returns the orders placed by the calling client (customer pages).
func (da *OrderDataAccess) ListHistory(ctx context.Context) ([]Order, error) {
	return da.list(ctx, "/history")
}

func (da *OrderDataAccess) list(ctx context.Context, path string) ([]Order, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("order client not configured")
	}

	var orders []Order
	if err := da.client.Get(ctx, path, &orders); err != nil {
		return nil, fmt.Errorf("list %s: %w", path, err)
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

func (da *OrderDataAccess) GetOrder(ctx context.Context, id string) (*Order, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("order client not configured")
	}
	if id == "" {
		return nil, ErrMissingOrderID
	}

	var order Order
	if err := da.client.Get(ctx, orderPath(id), &order); err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	if order.ID == "" {
		return nil, fmt.Errorf("get order %s: store returned no order", id)
	}
	return &order, nil
}

func (da *OrderDataAccess) SetStatus(ctx context.Context, id string, status orderstatus.Status) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("order client not configured")
	}
	if id == "" {
		return ErrMissingOrderID
	}

	path := fmt.Sprintf("/orders/%s/status?status=%s", url.PathEscape(id), url.QueryEscape(status.Code()))
	if err := da.client.Post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("set status of order %s: %w", id, err)
	}
	return nil
}

func (da *OrderDataAccess) DeleteOrder(ctx context.Context, id string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("order client not configured")
	}
	if id == "" {
		return ErrMissingOrderID
	}

	if err := da.client.Delete(ctx, orderPath(id)); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

func (da *OrderDataAccess) Recart(ctx context.Context, id string) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("order client not configured")
	}
	if id == "" {
		return ErrMissingOrderID
	}

	if err := da.client.Post(ctx, "/recart/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("recart order %s: %w", id, err)
	}
	return nil
}

func orderPath(id string) string {
	return "/order/" + url.PathEscape(id)
}

// ConfigDataAccess reads and writes the order policy.
type ConfigDataAccess struct {
	client *remote.Client
}

func NewConfigDataAccess(client *remote.Client) *ConfigDataAccess {
	return &ConfigDataAccess{client: client}
}

func (da *ConfigDataAccess) GetConfig(ctx context.Context) (*Config, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("config client not configured")
	}

	var cfg Config
	if err := da.client.Get(ctx, "/config", &cfg); err != nil {
		return nil, fmt.Errorf("get config: %w", err)
	}
	return &cfg, nil
}

func (da *ConfigDataAccess) UpdateConfig(ctx context.Context, cfg Config) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("config client not configured")
	}

	if err := da.client.Post(ctx, "/config", cfg, nil); err != nil {
		return fmt.Errorf("update config: %w", err)
	}
	return nil
}
