// Package cartitem defines the cart item domain type and its repository.
package cartitem

import (
	"context"
	"errors"
)

// CartItem represents one line item in a cart.
type CartItem struct {
	ID       int     `json:"id"`
	Product  string  `json:"product"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// Repository defines behavior for storing cart items.
type Repository interface {
	List(ctx context.Context) ([]CartItem, error)
	Get(ctx context.Context, id int) (CartItem, error)
	Insert(ctx context.Context, item CartItem) (CartItem, error)
	Replace(ctx context.Context, id int, item CartItem) (CartItem, error)
	Remove(ctx context.Context, id int) error
}

// ErrNotFound indicates the requested cart item does not exist.
var ErrNotFound = errors.New("cart item not found")
