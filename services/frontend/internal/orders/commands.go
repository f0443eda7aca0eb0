package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
)

// Commands issues the order writes available from the order boards. Each successful
// write asks the owning view for an immediate re-poll.
type Commands struct {
	store   Store
	configs ConfigStore
	logger  apt.Logger
	now     func() time.Time
}

func NewCommands(store Store, configs ConfigStore, logger apt.Logger) *Commands {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Commands{
		store:   store,
		configs: configs,
		logger:  logger,
		now:     time.Now,
	}
}

// Transition moves an order to a new status. Edges outside the order lifecycle
// are refused locally.
func (c *Commands) Transition(ctx context.Context, order Order, to orderstatus.Status, repoll Repoller) error {
	if order.ID == "" {
		return ErrMissingOrderID
	}
	if !orderstatus.CanTransition(order.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, to)
	}

	if err := c.store.SetStatus(ctx, order.ID, to); err != nil {
		c.logger.Error("cannot update order status", "order_id", order.ID, "status", to, "error", err)
		return err
	}

	c.logger.Info("order status updated", "order_id", order.ID, "from", order.Status, "to", to)
	trigger(repoll)
	return nil
}

// Delete cancels a pending order while the cancellation window is still open.
func (c *Commands) Delete(ctx context.Context, order Order, repoll Repoller) error {
	if err := c.checkModifiable(ctx, order); err != nil {
		return err
	}

	if err := c.store.DeleteOrder(ctx, order.ID); err != nil {
		c.logger.Error("cannot delete order", "order_id", order.ID, "error", err)
		return err
	}

	c.logger.Info("order deleted", "order_id", order.ID)
	trigger(repoll)
	return nil
}

// Recart moves the order's items back into the cart and removes the order.
func (c *Commands) Recart(ctx context.Context, order Order, repoll Repoller) error {
	if err := c.checkModifiable(ctx, order); err != nil {
		return err
	}

	if err := c.store.Recart(ctx, order.ID); err != nil {
		c.logger.Error("cannot recart order", "order_id", order.ID, "error", err)
		return err
	}

	c.logger.Info("order moved back to cart", "order_id", order.ID)
	trigger(repoll)
	return nil
}

// Config returns the current order policy, falling back to the seeded defaults
// when the config store cannot be reached.
func (c *Commands) Config(ctx context.Context) Config {
	if c.configs == nil {
		return DefaultConfig
	}
	cfg, err := c.configs.GetConfig(ctx)
	if err != nil || cfg == nil {
		c.logger.Info("using default order config", "error", err)
		return DefaultConfig
	}
	return *cfg
}

// UpdateConfig validates and stores a new order policy.
func (c *Commands) UpdateConfig(ctx context.Context, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.configs == nil {
		return fmt.Errorf("config store not configured")
	}
	if err := c.configs.UpdateConfig(ctx, cfg); err != nil {
		c.logger.Error("cannot update order config", "error", err)
		return err
	}
	return nil
}

func (c *Commands) checkModifiable(ctx context.Context, order Order) error {
	if order.ID == "" {
		return ErrMissingOrderID
	}
	if !CanModify(order, c.Config(ctx), c.now()) {
		return fmt.Errorf("%w: %s", ErrModificationWindowClosed, order.ID)
	}
	return nil
}

func trigger(repoll Repoller) {
	if repoll != nil {
		repoll.Trigger()
	}
}
