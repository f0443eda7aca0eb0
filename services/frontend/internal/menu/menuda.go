package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/ramtechno90/Menu-app/services/frontend/internal/remote"
)

// ErrMalformedMenu reports a menu document without a categories list. Loading it
// would let the next commit replace the stored menu with the local edits only.
var ErrMalformedMenu = errors.New("menu document has no categories")

// MenuDataAccess reads and replaces the menu on the bistro store.
type MenuDataAccess struct {
	client *remote.Client
}

func NewMenuDataAccess(client *remote.Client) *MenuDataAccess {
	return &MenuDataAccess{client: client}
}

func (da *MenuDataAccess) GetMenu(ctx context.Context) (*Tree, error) {
	if da == nil || da.client == nil {
		return nil, fmt.Errorf("menu client not configured")
	}

	var tree Tree
	if err := da.client.Get(ctx, "/menu", &tree); err != nil {
		return nil, fmt.Errorf("get menu: %w", err)
	}
	if tree.Categories == nil {
		return nil, ErrMalformedMenu
	}
	return &tree, nil
}

func (da *MenuDataAccess) ReplaceMenu(ctx context.Context, tree *Tree) error {
	if da == nil || da.client == nil {
		return fmt.Errorf("menu client not configured")
	}
	if tree == nil {
		return errors.New("nil menu")
	}

	if err := da.client.Post(ctx, "/update-menu", tree, nil); err != nil {
		return fmt.Errorf("replace menu: %w", err)
	}
	return nil
}
