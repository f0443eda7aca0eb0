package cart

import (
	"context"
	"sync"

	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
)

type quantityCall struct {
	ID       string
	Quantity int
}

type customizationCall struct {
	ID   string
	Text string
}

// MockStore is an in-memory cart store that records every write.
type MockStore struct {
	mu    sync.Mutex
	Lines Collection

	GetCartFunc          func(ctx context.Context) (Collection, error)
	AddItemFunc          func(ctx context.Context, item Item) error
	SetQuantityFunc      func(ctx context.Context, id string, quantity int) error
	SetCustomizationFunc func(ctx context.Context, id, text string) error
	DeleteLineFunc       func(ctx context.Context, id string) error
	PlaceOrderFunc       func(ctx context.Context) (*orders.Order, error)

	Fetches            int
	QuantityCalls      []quantityCall
	CustomizationCalls []customizationCall
	DeleteCalls        []string
	AddCalls           []Item
}

func (m *MockStore) GetCart(ctx context.Context) (Collection, error) {
	m.mu.Lock()
	m.Fetches++
	m.mu.Unlock()
	if m.GetCartFunc != nil {
		return m.GetCartFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Lines.clone(), nil
}

func (m *MockStore) AddItem(ctx context.Context, item Item) error {
	m.mu.Lock()
	m.AddCalls = append(m.AddCalls, item)
	m.mu.Unlock()
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, item)
	}
	return nil
}

func (m *MockStore) SetQuantity(ctx context.Context, id string, quantity int) error {
	m.mu.Lock()
	m.QuantityCalls = append(m.QuantityCalls, quantityCall{ID: id, Quantity: quantity})
	m.mu.Unlock()
	if m.SetQuantityFunc != nil {
		return m.SetQuantityFunc(ctx, id, quantity)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Lines {
		if m.Lines[i].ID == id {
			m.Lines[i].Quantity = quantity
		}
	}
	return nil
}

func (m *MockStore) SetCustomization(ctx context.Context, id, text string) error {
	m.mu.Lock()
	m.CustomizationCalls = append(m.CustomizationCalls, customizationCall{ID: id, Text: text})
	m.mu.Unlock()
	if m.SetCustomizationFunc != nil {
		return m.SetCustomizationFunc(ctx, id, text)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.Lines {
		if m.Lines[i].ID == id {
			m.Lines[i].Customization = text
		}
	}
	return nil
}

func (m *MockStore) DeleteLine(ctx context.Context, id string) error {
	m.mu.Lock()
	m.DeleteCalls = append(m.DeleteCalls, id)
	m.mu.Unlock()
	if m.DeleteLineFunc != nil {
		return m.DeleteLineFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := Collection{}
	for _, l := range m.Lines {
		if l.ID != id {
			kept = append(kept, l)
		}
	}
	m.Lines = kept
	return nil
}

func (m *MockStore) PlaceOrder(ctx context.Context) (*orders.Order, error) {
	if m.PlaceOrderFunc != nil {
		return m.PlaceOrderFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lines = Collection{}
	return &orders.Order{ID: "BISTRO-ABC123"}, nil
}
