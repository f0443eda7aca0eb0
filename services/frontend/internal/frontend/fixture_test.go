package frontend

import (
	"context"
	"testing"
	"time"

	"github.com/ramtechno90/Menu-app/services/frontend/internal/cart"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/menu"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
)

type fixture struct {
	orders  *fakeOrderStore
	configs *fakeConfigStore
	cart    *fakeCartStore
	menu    *fakeMenuStore
	pub     *recordingPublisher
	svc     *Service
}

func testSettings() Settings {
	s := DefaultSettings()
	s.CustomerPollInterval = time.Hour
	s.OperatorPollInterval = time.Hour
	return s
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		orders:  &fakeOrderStore{},
		configs: &fakeConfigStore{cfg: orders.DefaultConfig},
		cart: &fakeCartStore{lines: cart.Collection{
			{ID: "l1", MenuItemID: 1, Name: "Burger", Price: 8.5, Quantity: 1},
			{ID: "l2", MenuItemID: 2, Name: "Cola", Price: 1.5, Quantity: 3},
		}},
		menu: &fakeMenuStore{tree: &menu.Tree{Categories: []menu.Category{
			{Name: "Mains", Items: []menu.Item{{ID: 1, Name: "Burger", Description: "Beef.", Price: 8.5, InStock: true}}},
		}}},
		pub: &recordingPublisher{},
	}

	f.svc = NewService(Deps{
		Orders:    f.orders,
		Configs:   f.configs,
		Cart:      f.cart,
		Menu:      f.menu,
		Publisher: f.pub,
	}, testSettings(), nil)

	if err := f.svc.Cart().Refresh(context.Background()); err != nil {
		t.Fatalf("cart Refresh() error = %v", err)
	}
	t.Cleanup(func() {
		_ = f.svc.Stop(context.Background())
	})
	return f
}
