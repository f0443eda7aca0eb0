package orders

import (
	"context"
	"errors"
	"sync"

	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
)

type statusCall struct {
	ID     string
	Status orderstatus.Status
}

// MockStore implements Store for testing
type MockStore struct {
	ListOrdersFunc  func(ctx context.Context) ([]Order, error)
	ListHistoryFunc func(ctx context.Context) ([]Order, error)
	GetOrderFunc    func(ctx context.Context, id string) (*Order, error)
	SetStatusFunc   func(ctx context.Context, id string, status orderstatus.Status) error
	DeleteOrderFunc func(ctx context.Context, id string) error
	RecartFunc      func(ctx context.Context, id string) error

	StatusCalls []statusCall
	DeleteCalls []string
	RecartCalls []string
}

func (m *MockStore) ListOrders(ctx context.Context) ([]Order, error) {
	if m.ListOrdersFunc != nil {
		return m.ListOrdersFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) ListHistory(ctx context.Context) ([]Order, error) {
	if m.ListHistoryFunc != nil {
		return m.ListHistoryFunc(ctx)
	}
	return nil, nil
}

func (m *MockStore) GetOrder(ctx context.Context, id string) (*Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, id)
	}
	return nil, errors.New("not implemented")
}

func (m *MockStore) SetStatus(ctx context.Context, id string, status orderstatus.Status) error {
	m.StatusCalls = append(m.StatusCalls, statusCall{ID: id, Status: status})
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *MockStore) DeleteOrder(ctx context.Context, id string) error {
	m.DeleteCalls = append(m.DeleteCalls, id)
	if m.DeleteOrderFunc != nil {
		return m.DeleteOrderFunc(ctx, id)
	}
	return nil
}

func (m *MockStore) Recart(ctx context.Context, id string) error {
	m.RecartCalls = append(m.RecartCalls, id)
	if m.RecartFunc != nil {
		return m.RecartFunc(ctx, id)
	}
	return nil
}

// MockConfigStore implements ConfigStore for testing
type MockConfigStore struct {
	GetConfigFunc    func(ctx context.Context) (*Config, error)
	UpdateConfigFunc func(ctx context.Context, cfg Config) error
	Updated          []Config
}

func (m *MockConfigStore) GetConfig(ctx context.Context) (*Config, error) {
	if m.GetConfigFunc != nil {
		return m.GetConfigFunc(ctx)
	}
	cfg := DefaultConfig
	return &cfg, nil
}

func (m *MockConfigStore) UpdateConfig(ctx context.Context, cfg Config) error {
	m.Updated = append(m.Updated, cfg)
	if m.UpdateConfigFunc != nil {
		return m.UpdateConfigFunc(ctx, cfg)
	}
	return nil
}

// MockRepoller counts Trigger calls
type MockRepoller struct {
	Triggers int
}

func (m *MockRepoller) Trigger() {
	m.Triggers++
}

type publishedMessage struct {
	Topic string
	Data  []byte
}

// MockPublisher records published messages
type MockPublisher struct {
	mu          sync.Mutex
	Messages    []publishedMessage
	PublishFunc func(ctx context.Context, topic string, msg []byte) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, msg []byte) error {
	m.mu.Lock()
	m.Messages = append(m.Messages, publishedMessage{Topic: topic, Data: msg})
	m.mu.Unlock()
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, msg)
	}
	return nil
}
