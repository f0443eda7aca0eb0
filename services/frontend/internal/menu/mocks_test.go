package menu

import (
	"context"
)

// MockStore implements Store for testing
type MockStore struct {
	Menu            *Tree
	GetMenuFunc     func(ctx context.Context) (*Tree, error)
	ReplaceMenuFunc func(ctx context.Context, tree *Tree) error

	Fetches  int
	Replaced []*Tree
}

func (m *MockStore) GetMenu(ctx context.Context) (*Tree, error) {
	m.Fetches++
	if m.GetMenuFunc != nil {
		return m.GetMenuFunc(ctx)
	}
	return m.Menu.Clone(), nil
}

func (m *MockStore) ReplaceMenu(ctx context.Context, tree *Tree) error {
	m.Replaced = append(m.Replaced, tree)
	if m.ReplaceMenuFunc != nil {
		return m.ReplaceMenuFunc(ctx, tree)
	}
	m.Menu = tree.Clone()
	return nil
}
