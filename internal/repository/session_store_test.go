package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront-service/internal/models"
)

func storedLine(id int64, size string, qty int) models.CartLine {
	return models.CartLine{
		Product:      models.Product{ID: id, Name: "Shoe", Price: 50},
		SelectedSize: size,
		Quantity:     qty,
	}
}

func TestMemoryStoreCartRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	lines := []models.CartLine{storedLine(1, "42", 2), storedLine(2, "", 1)}
	store.SaveCart(ctx, "s1", lines)

	got := store.LoadCart(ctx, "s1")
	assert.Equal(t, lines, got)
}

func TestMemoryStoreMissingKeysReturnEmpty(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	assert.Empty(t, store.LoadCart(ctx, "nope"))
	assert.Empty(t, store.LoadStaging(ctx, "nope"))
	assert.Nil(t, store.TakeDirectItem(ctx, "nope"))
	assert.Empty(t, store.TakeCartTransfer(ctx, "nope"))
}

func TestMemoryStoreStagingRoundTrip(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	items := []models.CheckoutItem{
		{CartLine: storedLine(1, "42", 1), IsDirectCheckout: true},
		{CartLine: storedLine(2, "43", 3)},
	}
	store.SaveStaging(ctx, "s1", items)

	got := store.LoadStaging(ctx, "s1")
	assert.Equal(t, items, got)
}

func TestMemoryStoreDirectItemTakeOnce(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	item := models.CheckoutItem{CartLine: storedLine(1, "42", 1), IsDirectCheckout: true}
	store.PutDirectItem(ctx, "s1", item)

	got := store.TakeDirectItem(ctx, "s1")
	require.NotNil(t, got)
	assert.Equal(t, item, *got)

	// The slot is consumed by the read.
	assert.Nil(t, store.TakeDirectItem(ctx, "s1"))
}

func TestMemoryStoreCartTransferTakeOnce(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	lines := []models.CartLine{storedLine(1, "42", 2)}
	store.PutCartTransfer(ctx, "s1", lines)

	assert.Equal(t, lines, store.TakeCartTransfer(ctx, "s1"))
	assert.Empty(t, store.TakeCartTransfer(ctx, "s1"))
}

func TestMemoryStoreSessionsAreIsolated(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	store.SaveCart(ctx, "s1", []models.CartLine{storedLine(1, "42", 1)})
	store.SaveCart(ctx, "s2", []models.CartLine{storedLine(2, "43", 1)})

	assert.Equal(t, int64(1), store.LoadCart(ctx, "s1")[0].ID)
	assert.Equal(t, int64(2), store.LoadCart(ctx, "s2")[0].ID)
}

func TestMemoryStoreOverwriteReplacesValue(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	store.SaveCart(ctx, "s1", []models.CartLine{storedLine(1, "42", 1)})
	store.SaveCart(ctx, "s1", []models.CartLine{storedLine(3, "44", 5)})

	got := store.LoadCart(ctx, "s1")
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, 5, got[0].Quantity)
}
