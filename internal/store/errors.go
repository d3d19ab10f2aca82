package store

import (
	"fmt"
)

type OrderNotFoundError struct {
	ID int64
}

func (e *OrderNotFoundError) Error() string {
	return fmt.Sprintf("Order %d not found", e.ID)
}
