package menu

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/appetiteclub/apt"
)

// Store is the remote menu store.
type Store interface {
	GetMenu(ctx context.Context) (*Tree, error)
	ReplaceMenu(ctx context.Context, tree *Tree) error
}

// DirtyField identifies an item field that differs from the baseline.
type DirtyField struct {
	Category int    `json:"category"`
	Item     int    `json:"item"`
	Field    string `json:"field"`
}

// DraftEditor holds a local working copy of the menu. Edits stay local until Commit
// sends the whole copy to the store as one replace.
//
// All operations run under a single lock, so indices are always resolved against
// the working copy as it is when the edit is applied.
type DraftEditor struct {
	mu     sync.Mutex
	store  Store
	logger apt.Logger
	now    func() time.Time
	resync bool

	working  *Tree
	baseline *Tree
}

type Option func(*DraftEditor)

// WithCommitResync makes Commit re-fetch the menu after a successful replace so the
// baseline carries whatever the store persisted.
func WithCommitResync(enabled bool) Option {
	return func(e *DraftEditor) {
		e.resync = enabled
	}
}

func NewDraftEditor(store Store, logger apt.Logger, opts ...Option) *DraftEditor {
	if logger == nil {
		logger = apt.NewNoopLogger()
	}
	e := &DraftEditor{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load replaces the working copy with the store's menu. Local edits are discarded.
// On failure the editor holds no working copy.
func (e *DraftEditor) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	tree, err := e.fetch(ctx)
	if err != nil {
		e.working = nil
		e.baseline = nil
		e.logger.Error("cannot load menu", "error", err)
		return err
	}

	e.baseline = tree
	e.working = tree.Clone()
	e.logger.Debug("menu loaded", "categories", len(tree.Categories))
	return nil
}

func (e *DraftEditor) fetch(ctx context.Context) (*Tree, error) {
	if e.store == nil {
		return nil, fmt.Errorf("menu store not configured")
	}
	tree, err := e.store.GetMenu(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch menu: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("fetch menu: %w", ErrMalformedMenu)
	}
	return tree.Clone(), nil
}

func (e *DraftEditor) Loaded() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.working != nil
}

// AddCategory appends an empty category.
func (e *DraftEditor) AddCategory(name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.working == nil {
		return ErrNotLoaded
	}

	clean, err := ParseName("category", name)
	if err != nil {
		return err
	}

	e.working.Categories = append(e.working.Categories, Category{Name: clean, Items: []Item{}})
	return nil
}

// AddItem appends a new in-stock item to the category and returns it.
func (e *DraftEditor) AddItem(catIdx int, name, price string) (Item, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.working == nil {
		return Item{}, ErrNotLoaded
	}
	if catIdx < 0 || catIdx >= len(e.working.Categories) {
		return Item{}, e.indexViolation("add_item", catIdx, -1)
	}

	clean, err := ParseName(FieldName, name)
	if err != nil {
		return Item{}, err
	}
	amount, err := ParsePrice(price)
	if err != nil {
		return Item{}, err
	}

	item := Item{
		ID:          e.nextLocalID(),
		Name:        clean,
		Description: DefaultItemDescription,
		Price:       amount,
		InStock:     true,
	}

	cat := &e.working.Categories[catIdx]
	cat.Items = append(cat.Items, item)
	return item, nil
}

// ApplyFieldEdit sets one field of one item. Invalid values leave the working copy as is.
func (e *DraftEditor) ApplyFieldEdit(catIdx, itemIdx int, field, value string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.working == nil {
		return ErrNotLoaded
	}

	item, ok := e.working.item(catIdx, itemIdx)
	if !ok {
		return e.indexViolation("apply_field_edit", catIdx, itemIdx)
	}

	switch field {
	case FieldName:
		name, err := ParseName(FieldName, value)
		if err != nil {
			return err
		}
		item.Name = name
	case FieldPrice:
		amount, err := ParsePrice(value)
		if err != nil {
			return err
		}
		item.Price = amount
	case FieldInStock:
		inStock, err := ParseInStock(value)
		if err != nil {
			return err
		}
		item.InStock = inStock
	default:
		return ValidationError{Field: field, Message: "field cannot be edited"}
	}

	return nil
}

// Commit sends the working copy as a full replace. On failure the working copy is kept
// so the user can retry; on success it becomes the new baseline.
func (e *DraftEditor) Commit(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.working == nil {
		return ErrNotLoaded
	}
	if e.store == nil {
		return fmt.Errorf("menu store not configured")
	}

	payload := e.working.Clone()
	if err := e.store.ReplaceMenu(ctx, payload); err != nil {
		e.logger.Error("cannot commit menu", "error", err)
		return fmt.Errorf("commit menu: %w", err)
	}

	e.baseline = payload.Clone()
	e.logger.Info("menu committed", "categories", len(payload.Categories))

	if !e.resync {
		return nil
	}

	tree, err := e.fetch(ctx)
	if err != nil {
		e.logger.Error("cannot resync menu after commit", "error", err)
		return nil
	}
	e.baseline = tree
	e.working = tree.Clone()
	return nil
}

// WorkingCopy returns a deep copy of the current working copy.
func (e *DraftEditor) WorkingCopy() (*Tree, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.working == nil {
		return nil, ErrNotLoaded
	}
	return e.working.Clone(), nil
}

// Dirty reports whether the item field differs from the baseline. Items that did not
// exist in the baseline are dirty on every field.
func (e *DraftEditor) Dirty(catIdx, itemIdx int, field string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty(catIdx, itemIdx, field)
}

func (e *DraftEditor) dirty(catIdx, itemIdx int, field string) bool {
	current, ok := e.working.item(catIdx, itemIdx)
	if !ok {
		return false
	}
	base, ok := e.baseline.item(catIdx, itemIdx)
	if !ok {
		return true
	}

	switch field {
	case FieldName:
		return current.Name != base.Name
	case FieldPrice:
		return current.Price != base.Price
	case FieldInStock:
		return current.InStock != base.InStock
	default:
		return false
	}
}

// DirtyFields lists every item field that differs from the baseline.
func (e *DraftEditor) DirtyFields() []DirtyField {
	e.mu.Lock()
	defer e.mu.Unlock()

	fields := make([]DirtyField, 0)
	if e.working == nil {
		return fields
	}
	for c, cat := range e.working.Categories {
		for i := range cat.Items {
			for _, f := range []string{FieldName, FieldPrice, FieldInStock} {
				if e.dirty(c, i, f) {
					fields = append(fields, DirtyField{Category: c, Item: i, Field: f})
				}
			}
		}
	}
	return fields
}

// HasChanges reports whether the working copy differs from the baseline.
func (e *DraftEditor) HasChanges() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.working == nil {
		return false
	}
	return !e.working.Equal(e.baseline)
}

// Discard resets the working copy to the baseline.
func (e *DraftEditor) Discard() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.working == nil {
		return ErrNotLoaded
	}
	e.working = e.baseline.Clone()
	return nil
}

func (e *DraftEditor) indexViolation(op string, catIdx, itemIdx int) error {
	err := &IndexError{Category: catIdx, Item: itemIdx}
	e.logger.Error("menu edit addresses missing entry", "op", op, "category", catIdx, "item", itemIdx)
	return err
}

// nextLocalID derives an id from the clock, bumped past any id already in the working copy.
func (e *DraftEditor) nextLocalID() int64 {
	id := e.now().UnixMilli()
	for e.working.hasItemID(id) {
		id++
	}
	return id
}
