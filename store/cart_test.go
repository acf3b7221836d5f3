package store

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addProduct(t *testing.T, st *Store, userID, restaurantID, productID, price string, delta int, notes string) {
	t.Helper()
	require.NoError(t, st.AddToCart(context.Background(), userID, restaurantID,
		productID, delta, decimal.RequireFromString(price), notes))
}

func TestAddToCartMergesQuantities(t *testing.T) {
	st := newSeededStore(t)
	userID := createTestUser(t, st)
	ctx := context.Background()

	addProduct(t, st, userID, "rest-a", "p1", "2.00", 2, "")
	addProduct(t, st, userID, "rest-a", "p1", "2.00", 3, "")
	addProduct(t, st, userID, "rest-a", "p1", "2.00", -1, "")

	items, err := st.GetCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 4, items[0].Quantity)

	// Decrementing to zero deletes the line instead of storing quantity 0.
	addProduct(t, st, userID, "rest-a", "p1", "2.00", -4, "")
	items, err = st.GetCartItems(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddToCartNegativeDeltaOnMissingItemIsNoop(t *testing.T) {
	st := newSeededStore(t)
	userID := createTestUser(t, st)

	addProduct(t, st, userID, "rest-a", "p1", "2.00", -3, "")

	items, err := st.GetCartItems(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAddToCartUnknownUser(t *testing.T) {
	st := newSeededStore(t)
	err := st.AddToCart(context.Background(), "nobody", "rest-a", "p1", 1,
		decimal.RequireFromString("2.00"), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddToCartSwitchingRestaurantClearsPreviousItems(t *testing.T) {
	st := newSeededStore(t)
	userID := createTestUser(t, st)
	ctx := context.Background()

	addProduct(t, st, userID, "rest-a", "p1", "2.00", 2, "")
	addProduct(t, st, userID, "rest-a", "p2", "5.00", 1, "")

	// Ordering from restaurant B wipes restaurant A's items.
	addProduct(t, st, userID, "rest-b", "p3", "3.50", 1, "")

	items, err := st.GetCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "p3", items[0].ProductID)
	assert.Equal(t, "rest-b", items[0].RestaurantID)
}

func TestGetCartItemsRoundTrip(t *testing.T) {
	st := newSeededStore(t)
	userID := createTestUser(t, st)

	addProduct(t, st, userID, "rest-a", "p1", "2.00", 2, "extra cheese")
	addProduct(t, st, userID, "rest-a", "p2", "5.00", 1, "")

	items, err := st.GetCartItems(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byProduct := map[string]CartItemView{}
	for _, item := range items {
		byProduct[item.ProductID] = item
	}

	p1 := byProduct["p1"]
	assert.Equal(t, 2, p1.Quantity)
	assert.Equal(t, "2.00", p1.Price.StringFixed(2))
	assert.Equal(t, "extra cheese", p1.Notes)
	assert.Equal(t, "Fanesca", p1.Name)
	assert.Equal(t, ImageRemote, p1.ImageType)

	p2 := byProduct["p2"]
	assert.Equal(t, "5.00", p2.Price.StringFixed(2))
	assert.Equal(t, ImageLocal, p2.ImageType)
}

func TestGetCartItemsEmptyWithoutCart(t *testing.T) {
	st := newSeededStore(t)
	userID := createTestUser(t, st)

	items, err := st.GetCartItems(context.Background(), userID)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestRemoveFromCart(t *testing.T) {
	st := newSeededStore(t)
	userID := createTestUser(t, st)
	ctx := context.Background()

	addProduct(t, st, userID, "rest-a", "p1", "2.00", 1, "")
	items, err := st.GetCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, st.RemoveFromCart(ctx, items[0].ID))
	items, err = st.GetCartItems(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)

	// Removing an id that does not exist is a no-op.
	require.NoError(t, st.RemoveFromCart(ctx, "no-such-item"))
}

func TestClearUserCart(t *testing.T) {
	st := newSeededStore(t)
	userID := createTestUser(t, st)
	ctx := context.Background()

	addProduct(t, st, userID, "rest-a", "p1", "2.00", 2, "")
	require.NoError(t, st.ClearUserCart(ctx, userID))

	items, err := st.GetCartItems(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMigrateGuestCartToUser(t *testing.T) {
	st := newSeededStore(t)
	guestID := createTestUser(t, st)
	userID := createTestUser(t, st)
	ctx := context.Background()

	addProduct(t, st, guestID, "rest-a", "p1", "2.00", 2, "spicy")
	addProduct(t, st, guestID, "rest-a", "p2", "5.00", 1, "")

	before, err := st.GetCartItems(ctx, guestID)
	require.NoError(t, err)

	require.NoError(t, st.MigrateGuestCartToUser(ctx, guestID, userID))

	after, err := st.GetCartItems(ctx, userID)
	require.NoError(t, err)
	assert.ElementsMatch(t, before, after)

	guestItems, err := st.GetCartItems(ctx, guestID)
	require.NoError(t, err)
	assert.Empty(t, guestItems)
}

func TestMigrateGuestCartMergesSameRestaurant(t *testing.T) {
	st := newSeededStore(t)
	guestID := createTestUser(t, st)
	userID := createTestUser(t, st)
	ctx := context.Background()

	addProduct(t, st, userID, "rest-a", "p1", "2.00", 1, "")
	addProduct(t, st, guestID, "rest-a", "p1", "2.00", 2, "")
	addProduct(t, st, guestID, "rest-a", "p2", "5.00", 1, "")

	require.NoError(t, st.MigrateGuestCartToUser(ctx, guestID, userID))

	items, err := st.GetCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, items, 2)

	byProduct := map[string]int{}
	for _, item := range items {
		byProduct[item.ProductID] = item.Quantity
	}
	assert.Equal(t, 3, byProduct["p1"])
	assert.Equal(t, 1, byProduct["p2"])
}

func TestMigrateGuestCartConflictingRestaurants(t *testing.T) {
	st := newSeededStore(t)
	guestID := createTestUser(t, st)
	userID := createTestUser(t, st)
	ctx := context.Background()

	addProduct(t, st, userID, "rest-a", "p1", "2.00", 1, "")
	addProduct(t, st, guestID, "rest-b", "p3", "3.50", 2, "")

	err := st.MigrateGuestCartToUser(ctx, guestID, userID)
	assert.ErrorIs(t, err, ErrCartConflict)

	// Both carts survive untouched so the caller can decide.
	userItems, err := st.GetCartItems(ctx, userID)
	require.NoError(t, err)
	require.Len(t, userItems, 1)
	assert.Equal(t, "p1", userItems[0].ProductID)

	guestItems, err := st.GetCartItems(ctx, guestID)
	require.NoError(t, err)
	require.Len(t, guestItems, 1)
	assert.Equal(t, "p3", guestItems[0].ProductID)
}

func TestConcurrentAddToCart(t *testing.T) {
	st := newSeededStore(t)
	userID := createTestUser(t, st)
	ctx := context.Background()

	const increments = 12
	const decrements = 4

	// Seed enough quantity that no interleaving can hit the zero clamp,
	// which would turn later decrements into no-ops.
	addProduct(t, st, userID, "rest-a", "p1", "2.00", 10, "")

	var wg sync.WaitGroup
	errs := make(chan error, increments+decrements)
	for i := 0; i < increments; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- st.AddToCart(ctx, userID, "rest-a", "p1", 1,
				decimal.RequireFromString("2.00"), "")
		}()
	}
	for i := 0; i < decrements; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- st.AddToCart(ctx, userID, "rest-a", "p1", -1,
				decimal.RequireFromString("2.00"), "")
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := st.GetCartItems(ctx, userID)
	require.NoError(t, err)

	total := 0
	for _, item := range items {
		total += item.Quantity
	}
	// Interleaved +1/-1 bursts must not lose updates.
	assert.Equal(t, 10+increments-decrements, total)
}
