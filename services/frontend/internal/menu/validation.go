package menu

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrNotLoaded       = errors.New("menu not loaded")
	ErrIndexOutOfRange = errors.New("menu index out of range")
)

// ValidationError represents a rejected edit. The working copy is left untouched.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IndexError is returned when an edit addresses a category or item that does not
// exist in the working copy. Item is -1 for category level operations.
type IndexError struct {
	Category int
	Item     int
}

func (e *IndexError) Error() string {
	if e.Item < 0 {
		return fmt.Sprintf("%s: category %d", ErrIndexOutOfRange, e.Category)
	}
	return fmt.Sprintf("%s: category %d item %d", ErrIndexOutOfRange, e.Category, e.Item)
}

func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}

// ParseName trims the name and rejects blank values.
func ParseName(field, value string) (string, error) {
	name := strings.TrimSpace(value)
	if name == "" {
		return "", ValidationError{Field: field, Message: "name cannot be empty"}
	}
	return name, nil
}

// ParsePrice coerces a user supplied price into a non-negative amount.
func ParsePrice(value string) (float64, error) {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return 0, ValidationError{Field: FieldPrice, Message: "price is required"}
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, ValidationError{Field: FieldPrice, Message: fmt.Sprintf("%q is not a number", value)}
	}
	if d.IsNegative() {
		return 0, ValidationError{Field: FieldPrice, Message: "price cannot be negative"}
	}

	return d.InexactFloat64(), nil
}

// ParseInStock accepts the values a checkbox or a form field may carry.
func ParseInStock(value string) (bool, error) {
	raw := strings.ToLower(strings.TrimSpace(value))
	switch raw {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, ValidationError{Field: FieldInStock, Message: fmt.Sprintf("%q is not a boolean", value)}
	}
	return b, nil
}
