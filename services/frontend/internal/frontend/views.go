package frontend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/google/uuid"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/poll"
)

// Kind selects which orders a view follows.
type Kind string

const (
	// KindCustomer follows the caller's own orders (order history endpoint).
	KindCustomer Kind = "customer"
	// KindOperator follows every order (dashboard endpoint).
	KindOperator Kind = "operator"
)

var ErrViewNotFound = errors.New("view not found")

func (k Kind) Valid() bool {
	return k == KindCustomer || k == KindOperator
}

// Snapshot is the reconciled state of a view as handed to the renderer.
type Snapshot struct {
	ViewID        string          `json:"view_id"`
	Kind          Kind            `json:"kind"`
	Pending       []orders.Order  `json:"pending"`
	Accepted      []orders.Order  `json:"accepted"`
	Completed     []orders.Order  `json:"completed"`
	RecentlyPaid  []orders.Order  `json:"recently_paid"`
	PaidHistory   []orders.Order  `json:"paid_history"`
	Modifiable    map[string]bool `json:"modifiable"`
	BannerVisible bool            `json:"banner_visible"`
	Config        orders.Config   `json:"config"`
	RefreshedAt   time.Time       `json:"refreshed_at"`
	LastError     string          `json:"last_error,omitempty"`
}

// View owns one order board: its poller, its transition watcher and the last
// successfully fetched orders. A failed poll keeps the previous state.
type View struct {
	id        uuid.UUID
	kind      Kind
	store     orders.Store
	commands  *orders.Commands
	watcher   *orders.Watcher
	notifier  *orders.PaidNotifier
	scheduler *poll.Scheduler
	logger    apt.Logger
	now       func() time.Time

	mu          sync.RWMutex
	all         []orders.Order
	buckets     orders.Buckets
	cfg         orders.Config
	refreshedAt time.Time
	lastErr     error
}

func newView(kind Kind, interval time.Duration, store orders.Store, commands *orders.Commands, notifier *orders.PaidNotifier, logger apt.Logger) *View {
	id := uuid.New()
	log := logger.With("view_id", id.String(), "kind", string(kind))

	v := &View{
		id:       id,
		kind:     kind,
		store:    store,
		commands: commands,
		watcher:  orders.NewWatcher(log),
		notifier: notifier,
		logger:   log,
		now:      time.Now,
		buckets:  orders.Classify(nil),
		cfg:      orders.DefaultConfig,
	}
	v.scheduler = poll.New(string(kind)+"-orders", interval, v.Refresh, log)
	return v
}

func (v *View) ID() uuid.UUID {
	return v.id
}

func (v *View) Kind() Kind {
	return v.kind
}

// Refresh fetches the orders and the order policy, classifies the orders and feeds
// the transition watcher. It is the view's poll function.
func (v *View) Refresh(ctx context.Context) error {
	if v.store == nil {
		return fmt.Errorf("order store not configured")
	}

	var (
		list []orders.Order
		err  error
	)
	if v.kind == KindOperator {
		list, err = v.store.ListOrders(ctx)
	} else {
		list, err = v.store.ListHistory(ctx)
	}
	if err != nil {
		v.mu.Lock()
		v.lastErr = err
		v.mu.Unlock()
		return fmt.Errorf("list orders: %w", err)
	}

	cfg := orders.DefaultConfig
	if v.commands != nil {
		cfg = v.commands.Config(ctx)
	}

	buckets := orders.Classify(list)
	notification := v.watcher.Observe(list)

	v.mu.Lock()
	v.all = list
	v.buckets = buckets
	v.cfg = cfg
	v.refreshedAt = v.now()
	v.lastErr = nil
	v.mu.Unlock()

	if notification != nil {
		v.notifier.Notify(ctx, string(v.kind), notification)
	}
	return nil
}

// Trigger asks the poller for an immediate refresh.
func (v *View) Trigger() {
	v.scheduler.Trigger()
}

// Dismiss hides the payment banner.
func (v *View) Dismiss() {
	v.watcher.Dismiss()
}

// Find returns an order from the last successful poll.
func (v *View) Find(orderID string) (orders.Order, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	for _, o := range v.all {
		if o.ID == orderID {
			return o, true
		}
	}
	return orders.Order{}, false
}

func (v *View) Snapshot() Snapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()

	now := v.now()
	modifiable := make(map[string]bool)
	for _, o := range v.buckets.Pending {
		modifiable[o.ID] = orders.CanModify(o, v.cfg, now)
	}

	snap := Snapshot{
		ViewID:        v.id.String(),
		Kind:          v.kind,
		Pending:       v.buckets.Pending,
		Accepted:      v.buckets.Accepted,
		Completed:     v.buckets.Completed,
		RecentlyPaid:  orders.RecentlyPaid(v.all, now, v.cfg.PaidVisibility()),
		PaidHistory:   orders.PaidHistory(v.all),
		Modifiable:    modifiable,
		BannerVisible: v.watcher.BannerVisible(),
		Config:        v.cfg,
		RefreshedAt:   v.refreshedAt,
	}
	if v.lastErr != nil {
		snap.LastError = v.lastErr.Error()
	}
	return snap
}

func (v *View) start(ctx context.Context) error {
	return v.scheduler.Start(ctx)
}

// close stops polling and forgets the active set.
func (v *View) close() {
	v.scheduler.Stop()
	v.watcher.Reset()
}

// Registry keeps the open views. Stop closes all of them.
type Registry struct {
	store    orders.Store
	commands *orders.Commands
	notifier *orders.PaidNotifier
	settings Settings
	logger   apt.Logger

	mu    sync.RWMutex
	ctx   context.Context
	views map[uuid.UUID]*View
}

func NewRegistry(store orders.Store, commands *orders.Commands, notifier *orders.PaidNotifier, settings Settings, logger apt.Logger) *Registry {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Registry{
		store:    store,
		commands: commands,
		notifier: notifier,
		settings: settings,
		logger:   logger,
		ctx:      context.Background(),
		views:    make(map[uuid.UUID]*View),
	}
}

// Start records the context the view pollers derive from.
func (r *Registry) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx = ctx
	return nil
}

// Stop closes every open view.
func (r *Registry) Stop(ctx context.Context) error {
	r.mu.Lock()
	views := r.views
	r.views = make(map[uuid.UUID]*View)
	r.mu.Unlock()

	for _, v := range views {
		v.close()
	}
	r.logger.Info("views closed", "count", len(views))
	return nil
}

// Open creates a view of the given kind and starts polling for it.
func (r *Registry) Open(kind Kind) (*View, error) {
	if !kind.Valid() {
		return nil, ValidationError{Field: "kind", Message: fmt.Sprintf("unknown view kind %q", kind)}
	}

	interval := r.settings.CustomerPollInterval
	if kind == KindOperator {
		interval = r.settings.OperatorPollInterval
	}

	v := newView(kind, interval, r.store, r.commands, r.notifier, r.logger)

	r.mu.Lock()
	defer r.mu.Unlock()

	if err := v.start(r.ctx); err != nil {
		return nil, fmt.Errorf("start view poller: %w", err)
	}
	r.views[v.id] = v

	r.logger.Debug("view opened", "view_id", v.id.String(), "kind", string(kind))
	return v, nil
}

func (r *Registry) Get(id uuid.UUID) (*View, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.views[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	return v, nil
}

// Close tears the view down. Closing an unknown view reports ErrViewNotFound.
func (r *Registry) Close(id uuid.UUID) error {
	r.mu.Lock()
	v, ok := r.views[id]
	delete(r.views, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrViewNotFound, id)
	}
	v.close()
	return nil
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.views)
}
