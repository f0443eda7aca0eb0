package orders

import (
	"context"

	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
)

// Store is the remote order store.
type Store interface {
	ListOrders(ctx context.Context) ([]Order, error)
	ListHistory(ctx context.Context) ([]Order, error)
	GetOrder(ctx context.Context, id string) (*Order, error)
	SetStatus(ctx context.Context, id string, status orderstatus.Status) error
	DeleteOrder(ctx context.Context, id string) error
	Recart(ctx context.Context, id string) error
}

// ConfigStore is the remote config store.
type ConfigStore interface {
	GetConfig(ctx context.Context) (*Config, error)
	UpdateConfig(ctx context.Context, cfg Config) error
}

// Repoller requests an immediate out-of-band poll.
type Repoller interface {
	Trigger()
}
