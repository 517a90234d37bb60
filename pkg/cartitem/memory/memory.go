// Package memory implements an in-memory cart item repository.
package memory

import (
	"context"
	"slices"
	"sync"

	"cartapi/pkg/cartitem"
)

// Repository provides an in-memory implementation of cartitem.Repository.
// Items keep insertion order and ids are never reused.
type Repository struct {
	mu     sync.RWMutex
	items  []cartitem.CartItem
	nextID int
}

// New creates an empty repository whose first id is 1.
func New() *Repository {
	return &Repository{nextID: 1}
}

// List returns a copy of all items in insertion order.
func (r *Repository) List(ctx context.Context) ([]cartitem.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.items), nil
}

// Get retrieves an item by id.
func (r *Repository) Get(ctx context.Context, id int) (cartitem.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := r.index(id)
	if i == -1 {
		return cartitem.CartItem{}, cartitem.ErrNotFound
	}
	return r.items[i], nil
}

// Insert assigns the next id to the item and appends it.
func (r *Repository) Insert(ctx context.Context, item cartitem.CartItem) (cartitem.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

// Replace overwrites the fields of the item with the given id.
func (r *Repository) Replace(ctx context.Context, id int, item cartitem.CartItem) (cartitem.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i == -1 {
		return cartitem.CartItem{}, cartitem.ErrNotFound
	}
	item.ID = id
	r.items[i] = item
	return item, nil
}

// Remove deletes the item with the given id.
func (r *Repository) Remove(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i == -1 {
		return cartitem.ErrNotFound
	}
	r.items = slices.Delete(r.items, i, i+1)
	return nil
}

// index must be called with mu held.
func (r *Repository) index(id int) int {
	return slices.IndexFunc(r.items, func(it cartitem.CartItem) bool { return it.ID == id })
}
