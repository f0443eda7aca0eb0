package frontend

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ramtechno90/Menu-app/services/frontend/internal/cart"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/menu"
	"github.com/ramtechno90/Menu-app/services/frontend/internal/orders"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrOrderNotFound  = errors.New("order not found")
)

// ValidationError reports a malformed command.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// statusFor maps an error from the core onto the HTTP status returned to the renderer.
func statusFor(err error) int {
	var (
		indexErr    *menu.IndexError
		frontendErr ValidationError
		ordersErr   orders.ValidationError
		cartErr     cart.ValidationError
		menuErr     menu.ValidationError
	)

	switch {
	case errors.As(err, &indexErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &frontendErr),
		errors.As(err, &ordersErr),
		errors.As(err, &cartErr),
		errors.As(err, &menuErr),
		errors.Is(err, ErrUnknownCommand),
		errors.Is(err, orders.ErrInvalidTransition),
		errors.Is(err, orders.ErrModificationWindowClosed),
		errors.Is(err, orders.ErrMissingOrderID),
		errors.Is(err, cart.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, ErrViewNotFound),
		errors.Is(err, ErrOrderNotFound),
		errors.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound
	case errors.Is(err, menu.ErrNotLoaded):
		return http.StatusConflict
	default:
		return http.StatusBadGateway
	}
}
