package frontend

import (
	"context"
	"fmt"

	"github.com/appetiteclub/apt"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/cart"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/menu"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/poll"
)

// Deps are the remote stores and the optional event publisher.
type Deps struct {
	Orders    orders.Store
	Configs   orders.ConfigStore
	Cart      cart.Store
	Menu      menu.Store
	Publisher orders.Publisher
}

// Service wires the reconciliation components together and owns their lifecycle.
type Service struct {
	settings Settings
	logger   apt.Logger

	orders     orders.Store
	commands   *orders.Commands
	views      *Registry
	cart       *cart.Mutator
	cartPoller *poll.Scheduler
	editor     *menu.DraftEditor
}

func NewService(deps Deps, settings Settings, logger apt.Logger) *Service {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}

	commands := orders.NewCommands(deps.Orders, deps.Configs, logger)
	notifier := orders.NewPaidNotifier(deps.Publisher, logger)
	mutator := cart.NewMutator(deps.Cart, logger)

	interval := settings.CustomerPollInterval
	if interval <= 0 {
		interval = DefaultCustomerPollInterval
	}

	return &Service{
		settings:   settings,
		logger:     logger,
		orders:     deps.Orders,
		commands:   commands,
		views:      NewRegistry(deps.Orders, commands, notifier, settings, logger),
		cart:       mutator,
		cartPoller: poll.New("cart", interval, mutator.Refresh, logger),
		editor:     menu.NewDraftEditor(deps.Menu, logger, menu.WithCommitResync(settings.MenuCommitResync)),
	}
}

// Start begins polling the cart and lets views derive their pollers from ctx.
func (s *Service) Start(ctx context.Context) error {
	if err := s.views.Start(ctx); err != nil {
		return err
	}
	if err := s.cartPoller.Start(ctx); err != nil {
		return fmt.Errorf("start cart poller: %w", err)
	}
	s.logger.Info("frontend service started")
	return nil
}

// Stop cancels every poller. It is safe to call more than once.
func (s *Service) Stop(ctx context.Context) error {
	s.cartPoller.Stop()
	return s.views.Stop(ctx)
}

func (s *Service) Views() *Registry {
	return s.views
}

func (s *Service) Cart() *cart.Mutator {
	return s.cart
}

func (s *Service) Editor() *menu.DraftEditor {
	return s.editor
}

func (s *Service) Commands() *orders.Commands {
	return s.commands
}

func (s *Service) triggerViews() {
	s.views.mu.RLock()
	defer s.views.mu.RUnlock()
	for _, v := range s.views.views {
		v.Trigger()
	}
}
