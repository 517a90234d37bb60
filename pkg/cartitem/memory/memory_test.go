package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"cartapi/pkg/cartitem"
)

func TestRepository(t *testing.T) {
	ctx := context.Background()
	repo := New()

	created, err := repo.Insert(ctx, cartitem.CartItem{Product: "Soap", Price: 1, Quantity: 100})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)

	got, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, created, got)

	updated, err := repo.Replace(ctx, 1, cartitem.CartItem{ID: 1, Product: "Soap", Price: 1, Quantity: 10})
	require.NoError(t, err)
	require.Equal(t, 10, updated.Quantity)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 10, list[0].Quantity)

	require.NoError(t, repo.Remove(ctx, 1))
	_, err = repo.Get(ctx, 1)
	require.ErrorIs(t, err, cartitem.ErrNotFound)
}

func TestRepositoryNotFound(t *testing.T) {
	ctx := context.Background()
	repo := New()

	_, err := repo.Get(ctx, 7)
	require.ErrorIs(t, err, cartitem.ErrNotFound)
	_, err = repo.Replace(ctx, 7, cartitem.CartItem{ID: 7})
	require.ErrorIs(t, err, cartitem.ErrNotFound)
	require.ErrorIs(t, repo.Remove(ctx, 7), cartitem.ErrNotFound)
}

func TestInsertIgnoresClientID(t *testing.T) {
	ctx := context.Background()
	repo := New()

	created, err := repo.Insert(ctx, cartitem.CartItem{ID: 42, Product: "Brush"})
	require.NoError(t, err)
	require.Equal(t, 1, created.ID)
}

func TestIDsNeverReused(t *testing.T) {
	ctx := context.Background()
	repo := New()

	a, _ := repo.Insert(ctx, cartitem.CartItem{Product: "a"})
	b, _ := repo.Insert(ctx, cartitem.CartItem{Product: "b"})
	require.NoError(t, repo.Remove(ctx, b.ID))
	require.NoError(t, repo.Remove(ctx, a.ID))

	c, _ := repo.Insert(ctx, cartitem.CartItem{Product: "c"})
	require.Equal(t, 3, c.ID)
}

func TestListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := New()
	for _, p := range []string{"a", "b", "c", "d"} {
		_, err := repo.Insert(ctx, cartitem.CartItem{Product: p})
		require.NoError(t, err)
	}
	require.NoError(t, repo.Remove(ctx, 2))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	var products []string
	for _, it := range list {
		products = append(products, it.Product)
	}
	require.Equal(t, []string{"a", "c", "d"}, products)

	list[0].Product = "mutated"
	again, _ := repo.List(ctx)
	require.Equal(t, "a", again[0].Product)
}

func TestConcurrentInsertAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := New()

	const n = 200
	ids := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			it, err := repo.Insert(ctx, cartitem.CartItem{Product: "x"})
			if err == nil {
				ids <- it.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool, n)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	require.Len(t, seen, n)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)
}
