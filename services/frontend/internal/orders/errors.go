package orders

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition        = errors.New("invalid status transition")
	ErrModificationWindowClosed = errors.New("order can no longer be modified")
	ErrMissingOrderID           = errors.New("missing order id")
)

// ValidationError reports bad input detected before any request is issued.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}
