package cart

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/appetiteclub/apt"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
	"github.com/shopspring/decimal"
)

// Outcome tells the caller what a decrement did.
type Outcome int

const (
	// OutcomeUpdated means the lower quantity was written.
	OutcomeUpdated Outcome = iota
	// OutcomeConfirmRemoval means the line is at quantity 1; nothing was written and the
	// caller should ask before calling Remove.
	OutcomeConfirmRemoval
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	case OutcomeConfirmRemoval:
		return "confirm_removal"
	default:
		return "unknown"
	}
}

// Mutator edits the lines of the remote cart and keeps the last fetched copy.
// The cached copy is replaced only by a fetch; writes never patch it locally.
type Mutator struct {
	store  Store
	logger apt.Logger

	// opMu keeps one write and its follow-up fetch from interleaving with another.
	opMu sync.Mutex

	mu    sync.RWMutex
	lines Collection
}

func NewMutator(store Store, logger apt.Logger) *Mutator {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	return &Mutator{
		store:  store,
		logger: logger,
		lines:  Collection{},
	}
}

// Refresh replaces the cached cart with the store's current copy.
func (m *Mutator) Refresh(ctx context.Context) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	return m.refresh(ctx)
}

func (m *Mutator) refresh(ctx context.Context) error {
	if m.store == nil {
		return fmt.Errorf("cart store not configured")
	}

	lines, err := m.store.GetCart(ctx)
	if err != nil {
		return fmt.Errorf("fetch cart: %w", err)
	}

	m.mu.Lock()
	m.lines = lines.clone()
	m.mu.Unlock()
	return nil
}

// Lines returns a copy of the cached cart.
func (m *Mutator) Lines() Collection {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lines.clone()
}

func (m *Mutator) Line(id string) (Line, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lines.Find(id)
}

func (m *Mutator) Total() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lines.Total()
}

func (m *Mutator) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lines.Count()
}

// Increment writes quantity+1 for the line.
func (m *Mutator) Increment(ctx context.Context, id string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	line, err := m.lookup(id)
	if err != nil {
		return err
	}

	return m.write(ctx, "increment", id, func() error {
		return m.store.SetQuantity(ctx, id, line.Quantity+1)
	})
}

// Decrement writes quantity-1 for the line. A line at quantity 1 is left alone and
// OutcomeConfirmRemoval is returned instead.
func (m *Mutator) Decrement(ctx context.Context, id string) (Outcome, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	line, err := m.lookup(id)
	if err != nil {
		return OutcomeUpdated, err
	}

	if line.Quantity <= 1 {
		m.logger.Debug("decrement at lower bound", "cart_item_id", id)
		return OutcomeConfirmRemoval, nil
	}

	err = m.write(ctx, "decrement", id, func() error {
		return m.store.SetQuantity(ctx, id, line.Quantity-1)
	})
	return OutcomeUpdated, err
}

// Remove deletes the line. Confirmation is up to the caller.
func (m *Mutator) Remove(ctx context.Context, id string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if _, err := m.lookup(id); err != nil {
		return err
	}

	return m.write(ctx, "remove", id, func() error {
		return m.store.DeleteLine(ctx, id)
	})
}

// Annotate writes the customization text of the line.
func (m *Mutator) Annotate(ctx context.Context, id, text string) error {
	m.opMu.Lock()
	defer m.opMu.Unlock()
	return m.annotate(ctx, id, text)
}

func (m *Mutator) annotate(ctx context.Context, id, text string) error {
	if _, err := m.lookup(id); err != nil {
		return err
	}
	if err := validateCustomization(text); err != nil {
		return err
	}

	return m.write(ctx, "annotate", id, func() error {
		return m.store.SetCustomization(ctx, id, text)
	})
}

// Add puts one unit of item into the cart.
func (m *Mutator) Add(ctx context.Context, item Item) error {
	if strings.TrimSpace(item.Name) == "" {
		return ValidationError{Field: "name", Message: "is required"}
	}
	if item.Price < 0 {
		return ValidationError{Field: "price", Message: "must not be negative"}
	}

	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.store == nil {
		return fmt.Errorf("cart store not configured")
	}

	return m.write(ctx, "add", item.Name, func() error {
		return m.store.AddItem(ctx, item)
	})
}

// Checkout places an order with the current cart. The store empties the cart on success.
func (m *Mutator) Checkout(ctx context.Context) (*orders.Order, error) {
	m.opMu.Lock()
	defer m.opMu.Unlock()

	if m.store == nil {
		return nil, fmt.Errorf("cart store not configured")
	}

	m.mu.RLock()
	empty := len(m.lines) == 0
	m.mu.RUnlock()
	if empty {
		return nil, ErrEmptyCart
	}

	placed, err := m.store.PlaceOrder(ctx)
	if err != nil {
		m.logger.Error("cannot place order", "error", err)
		return nil, err
	}

	m.mu.Lock()
	m.lines = Collection{}
	m.mu.Unlock()

	if err := m.refresh(ctx); err != nil {
		m.logger.Error("cannot refresh cart after checkout", "error", err)
	}

	if placed != nil {
		m.logger.Info("order placed", "order_id", placed.ID)
	}
	return placed, nil
}

// BeginAnnotation opens an editing session for the line's customization.
func (m *Mutator) BeginAnnotation(id string) (*AnnotationSession, error) {
	line, err := m.lookup(id)
	if err != nil {
		return nil, err
	}
	return &AnnotationSession{
		mutator: m,
		lineID:  id,
		text:    line.Customization,
	}, nil
}

func (m *Mutator) lookup(id string) (Line, error) {
	if m.store == nil {
		return Line{}, fmt.Errorf("cart store not configured")
	}
	line, ok := m.Line(id)
	if !ok {
		return Line{}, fmt.Errorf("%w: %s", ErrLineNotFound, id)
	}
	return line, nil
}

// write issues fn and, once it resolved successfully, re-fetches the cart.
// A failed write leaves the cache as it was.
func (m *Mutator) write(ctx context.Context, op, id string, fn func() error) error {
	if err := fn(); err != nil {
		m.logger.Error("cart write failed", "op", op, "cart_item_id", id, "error", err)
		return err
	}

	if err := m.refresh(ctx); err != nil {
		m.logger.Error("cannot refresh cart after write", "op", op, "cart_item_id", id, "error", err)
	}
	return nil
}

func validateCustomization(text string) error {
	if utf8.RuneCountInString(text) > MaxCustomizationLength {
		return ValidationError{
			Field:   "customization",
			Message: fmt.Sprintf("must be at most %d characters", MaxCustomizationLength),
		}
	}
	return nil
}
