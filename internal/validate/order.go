package validate

import (
	"fmt"
	"strings"

	validator "github.com/go-playground/validator/v10"

	"github.com/venegas/pedidos/internal/types"
)

var orderValidator = validator.New()

// Order checks an order before it is persisted: client name and detail are
// required, payment type must be one of the known values. Whitespace-only
// required fields are rejected too.
func Order(o types.Order) error {
	if strings.TrimSpace(o.ClientName) == "" {
		return fmt.Errorf("%w", &EmptyFieldError{Field: "clientName"})
	}
	if strings.TrimSpace(o.OrderDetail) == "" {
		return fmt.Errorf("%w", &EmptyFieldError{Field: "orderDetail"})
	}
	if err := orderValidator.Struct(o); err != nil {
		return fmt.Errorf("invalid order: %w", err)
	}
	return nil
}

type EmptyFieldError struct {
	Field string
}

func (e *EmptyFieldError) Error() string {
	return fmt.Sprintf("field %s cannot be empty", e.Field)
}
