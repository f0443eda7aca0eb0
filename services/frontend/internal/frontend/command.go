package frontend

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/ramtechno90/Menu-app/pkg/enums/orderstatus"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/cart"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/menu"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
)

// CommandKind names a user action sent by the renderer.
type CommandKind string

const (
	CmdIncrement      CommandKind = "increment"
	CmdDecrement      CommandKind = "decrement"
	CmdRemove         CommandKind = "remove"
	CmdAnnotate       CommandKind = "annotate"
	CmdAddToCart      CommandKind = "add_to_cart"
	CmdCheckout       CommandKind = "checkout"
	CmdAddCategory    CommandKind = "add_category"
	CmdAddItem        CommandKind = "add_item"
	CmdApplyFieldEdit CommandKind = "apply_field_edit"
	CmdLoadMenu       CommandKind = "load_menu"
	CmdCommitMenu     CommandKind = "commit_menu"
	CmdDiscardMenu    CommandKind = "discard_menu"
	CmdTransition     CommandKind = "transition"
	CmdDeleteOrder    CommandKind = "delete_order"
	CmdRecartOrder    CommandKind = "recart_order"
	CmdDismissBanner  CommandKind = "dismiss_banner"
)

// Command carries one user action. Only the fields relevant to Kind are read.
type Command struct {
	Kind CommandKind `json:"kind"`

	LineID string     `json:"line_id,omitempty"`
	Text   string     `json:"text,omitempty"`
	Item   *cart.Item `json:"item,omitempty"`

	Category  int    `json:"category,omitempty"`
	ItemIndex int    `json:"item_index,omitempty"`
	Name      string `json:"name,omitempty"`
	Price     string `json:"price,omitempty"`
	Field     string `json:"field,omitempty"`
	Value     string `json:"value,omitempty"`

	ViewID  string `json:"view_id,omitempty"`
	OrderID string `json:"order_id,omitempty"`
	Status  string `json:"status,omitempty"`
}

// Result is what a dispatched command reports back.
type Result struct {
	Kind    CommandKind   `json:"kind"`
	Outcome string        `json:"outcome,omitempty"`
	Item    *menu.Item    `json:"item,omitempty"`
	Order   *orders.Order `json:"order,omitempty"`
}

// Dispatch routes a command to the component that owns the state it changes.
func (s *Service) Dispatch(ctx context.Context, cmd Command) (*Result, error) {
	res := &Result{Kind: cmd.Kind}

	switch cmd.Kind {
	case CmdIncrement:
		return done(res, s.cart.Increment(ctx, cmd.LineID))

	case CmdDecrement:
		outcome, err := s.cart.Decrement(ctx, cmd.LineID)
		if err != nil {
			return nil, err
		}
		res.Outcome = outcome.String()
		return res, nil

	case CmdRemove:
		return done(res, s.cart.Remove(ctx, cmd.LineID))

	case CmdAnnotate:
		session, err := s.cart.BeginAnnotation(cmd.LineID)
		if err != nil {
			return nil, err
		}
		session.Set(cmd.Text)
		wrote, err := session.Commit(ctx)
		if err != nil {
			return nil, err
		}
		if !wrote {
			res.Outcome = "unchanged"
		}
		return res, nil

	case CmdAddToCart:
		if cmd.Item == nil {
			return nil, ValidationError{Field: "item", Message: "is required"}
		}
		return done(res, s.cart.Add(ctx, *cmd.Item))

	case CmdCheckout:
		placed, err := s.cart.Checkout(ctx)
		if err != nil {
			return nil, err
		}
		res.Order = placed
		s.triggerViews()
		return res, nil

	case CmdAddCategory:
		return done(res, s.editor.AddCategory(cmd.Name))

	case CmdAddItem:
		item, err := s.editor.AddItem(cmd.Category, cmd.Name, cmd.Price)
		if err != nil {
			return nil, err
		}
		res.Item = &item
		return res, nil

	case CmdApplyFieldEdit:
		return done(res, s.editor.ApplyFieldEdit(cmd.Category, cmd.ItemIndex, cmd.Field, cmd.Value))

	case CmdLoadMenu:
		return done(res, s.editor.Load(ctx))

	case CmdCommitMenu:
		return done(res, s.editor.Commit(ctx))

	case CmdDiscardMenu:
		return done(res, s.editor.Discard())

	case CmdTransition:
		return s.transition(ctx, cmd, res)

	case CmdDeleteOrder, CmdRecartOrder:
		return s.modifyOrder(ctx, cmd, res)

	case CmdDismissBanner:
		view, err := s.view(cmd.ViewID)
		if err != nil {
			return nil, err
		}
		view.Dismiss()
		return res, nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Kind)
	}
}

func (s *Service) transition(ctx context.Context, cmd Command, res *Result) (*Result, error) {
	to := orderstatus.ByName(cmd.Status)
	if to == nil {
		return nil, ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", cmd.Status)}
	}

	view, order, err := s.resolveOrder(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if err := s.commands.Transition(ctx, order, *to, repoller(view)); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Service) modifyOrder(ctx context.Context, cmd Command, res *Result) (*Result, error) {
	view, order, err := s.resolveOrder(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if cmd.Kind == CmdDeleteOrder {
		err = s.commands.Delete(ctx, order, repoller(view))
	} else {
		err = s.commands.Recart(ctx, order, repoller(view))
		if err == nil {
			if rerr := s.cart.Refresh(ctx); rerr != nil {
				s.logger.Error("cannot refresh cart after recart", "error", rerr)
			}
		}
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// resolveOrder looks the order up in the view's last poll, falling back to the store.
func (s *Service) resolveOrder(ctx context.Context, cmd Command) (*View, orders.Order, error) {
	if cmd.OrderID == "" {
		return nil, orders.Order{}, orders.ErrMissingOrderID
	}

	var view *View
	if cmd.ViewID != "" {
		v, err := s.view(cmd.ViewID)
		if err != nil {
			return nil, orders.Order{}, err
		}
		view = v
		if o, ok := v.Find(cmd.OrderID); ok {
			return view, o, nil
		}
	}

	if s.orders == nil {
		return view, orders.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, cmd.OrderID)
	}
	o, err := s.orders.GetOrder(ctx, cmd.OrderID)
	if err != nil {
		return view, orders.Order{}, fmt.Errorf("get order %s: %w", cmd.OrderID, err)
	}
	if o == nil {
		return view, orders.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, cmd.OrderID)
	}
	return view, *o, nil
}

func (s *Service) view(raw string) (*View, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, ValidationError{Field: "view_id", Message: "is not a valid id"}
	}
	return s.views.Get(id)
}

func done(res *Result, err error) (*Result, error) {
	if err != nil {
		return nil, err
	}
	return res, nil
}

// repoller keeps a nil *View from becoming a non-nil interface.
func repoller(v *View) orders.Repoller {
	if v == nil {
		return nil
	}
	return v
}
