package frontend

import (
	"context"
	"errors"
	"sync"

	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/cart"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/menu"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
)

// fakeOrderStore serves a mutable order list and records writes.
type fakeOrderStore struct {
	mu      sync.Mutex
	orders  []orders.Order
	listErr error

	statusCalls []string
	deleted     []string
	recarted    []string
}

func (f *fakeOrderStore) set(list []orders.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders = list
}

func (f *fakeOrderStore) list() ([]orders.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]orders.Order, len(f.orders))
	copy(out, f.orders)
	return out, nil
}

func (f *fakeOrderStore) ListOrders(ctx context.Context) ([]orders.Order, error) {
	return f.list()
}

func (f *fakeOrderStore) ListHistory(ctx context.Context) ([]orders.Order, error) {
	return f.list()
}

func (f *fakeOrderStore) GetOrder(ctx context.Context, id string) (*orders.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.orders {
		if o.ID == id {
			found := o
			return &found, nil
		}
	}
	return nil, errors.New("404 order not found")
}

func (f *fakeOrderStore) SetStatus(ctx context.Context, id string, status orderstatus.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusCalls = append(f.statusCalls, id+":"+status.Code())
	for i := range f.orders {
		if f.orders[i].ID == id {
			f.orders[i].Status = status
		}
	}
	return nil
}

func (f *fakeOrderStore) DeleteOrder(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeOrderStore) Recart(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recarted = append(f.recarted, id)
	return nil
}

type fakeConfigStore struct {
	mu  sync.Mutex
	cfg orders.Config
}

func (f *fakeConfigStore) GetConfig(ctx context.Context) (*orders.Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg := f.cfg
	return &cfg, nil
}

func (f *fakeConfigStore) UpdateConfig(ctx context.Context, cfg orders.Config) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cfg = cfg
	return nil
}

// fakeCartStore keeps the cart in memory the way the bistro service does.
type fakeCartStore struct {
	mu     sync.Mutex
	lines  cart.Collection
	writes int
}

func (f *fakeCartStore) GetCart(ctx context.Context) (cart.Collection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(cart.Collection, len(f.lines))
	copy(out, f.lines)
	return out, nil
}

func (f *fakeCartStore) AddItem(ctx context.Context, item cart.Item) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	f.lines = append(f.lines, cart.Line{ID: item.Name, MenuItemID: item.ID, Name: item.Name, Price: item.Price, Quantity: 1})
	return nil
}

func (f *fakeCartStore) SetQuantity(ctx context.Context, id string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	for i := range f.lines {
		if f.lines[i].ID == id {
			f.lines[i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeCartStore) SetCustomization(ctx context.Context, id, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	for i := range f.lines {
		if f.lines[i].ID == id {
			f.lines[i].Customization = text
		}
	}
	return nil
}

func (f *fakeCartStore) DeleteLine(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes++
	kept := cart.Collection{}
	for _, l := range f.lines {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	f.lines = kept
	return nil
}

func (f *fakeCartStore) PlaceOrder(ctx context.Context) (*orders.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.lines) == 0 {
		return nil, errors.New("cart is empty")
	}
	f.lines = cart.Collection{}
	return &orders.Order{ID: "BISTRO-0A1B2C", Status: orderstatus.Statuses.Pending}, nil
}

type fakeMenuStore struct {
	mu       sync.Mutex
	tree     *menu.Tree
	replaced []*menu.Tree
}

func (f *fakeMenuStore) GetMenu(ctx context.Context) (*menu.Tree, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tree == nil {
		return nil, errors.New("404 menu not found")
	}
	return f.tree.Clone(), nil
}

func (f *fakeMenuStore) ReplaceMenu(ctx context.Context, tree *menu.Tree) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.replaced = append(f.replaced, tree.Clone())
	f.tree = tree.Clone()
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.topics)
}
