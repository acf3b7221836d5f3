package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"easyfood/models"
)

func schemaSnapshot(t *testing.T, db *gorm.DB) []string {
	t.Helper()
	var rows []string
	require.NoError(t, db.Raw(
		"SELECT COALESCE(sql, '') FROM sqlite_master ORDER BY name").Scan(&rows).Error)
	return rows
}

func TestEnsureSchemaIdempotent(t *testing.T) {
	db := newTestDB(t)
	st := New(db, quietLogger())
	ctx := context.Background()

	require.NoError(t, st.EnsureSchema(ctx))
	first := schemaSnapshot(t, db)

	require.NoError(t, st.EnsureSchema(ctx))
	assert.Equal(t, first, schemaSnapshot(t, db))
}

func TestEnsureSchemaConcurrent(t *testing.T) {
	st := New(newTestDB(t), quietLogger())

	done := make(chan error, 4)
	for i := 0; i < 4; i++ {
		go func() {
			done <- st.EnsureSchema(context.Background())
		}()
	}
	for i := 0; i < 4; i++ {
		require.NoError(t, <-done)
	}
}

func TestEnsureSchemaMigratesLegacyNumericIDs(t *testing.T) {
	db := newTestDB(t)
	for _, stmt := range []string{
		`CREATE TABLE "Cart" (id INTEGER PRIMARY KEY, user_id INTEGER, restaurant_id INTEGER, created_at DATETIME DEFAULT CURRENT_TIMESTAMP)`,
		`INSERT INTO "Cart" (id, user_id, restaurant_id) VALUES (1, 10, 20)`,
		`CREATE TABLE "CartItems" (id INTEGER PRIMARY KEY, cart_id INTEGER, product_id INTEGER, quantity INTEGER, price DECIMAL(10,2), notes TEXT)`,
		`INSERT INTO "CartItems" (id, cart_id, product_id, quantity, price, notes) VALUES (1, 1, 7, 2, 4.99, 'no onions')`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	st := New(db, quietLogger())
	require.NoError(t, st.EnsureSchema(context.Background()))

	var cart models.Cart
	require.NoError(t, db.First(&cart).Error)
	assert.Equal(t, "1", cart.ID)
	assert.Equal(t, "10", cart.UserID)
	assert.Equal(t, "20", cart.RestaurantID)

	var item models.CartItem
	require.NoError(t, db.First(&item).Error)
	assert.Equal(t, "1", item.CartID)
	assert.Equal(t, "7", item.ProductID)
	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, "no onions", item.Notes)
}

func TestEnsureSchemaBackfillsOrderNumbers(t *testing.T) {
	db := newTestDB(t)
	for _, stmt := range []string{
		`CREATE TABLE "Orders" (id TEXT PRIMARY KEY NOT NULL, user_id TEXT, restaurant_id TEXT, status TEXT, total_amount DECIMAL(10,2), delivery_fee DECIMAL(10,2), service_fee DECIMAL(10,2), created_at DATETIME DEFAULT CURRENT_TIMESTAMP, delivery_address TEXT, customer_name TEXT, customer_phone TEXT)`,
		`INSERT INTO "Orders" (id, user_id, restaurant_id, status, total_amount, created_at) VALUES ('order-late', 'u1', 'r1', 'completed', 9.99, '2024-02-01 10:00:00')`,
		`INSERT INTO "Orders" (id, user_id, restaurant_id, status, total_amount, created_at) VALUES ('order-early', 'u1', 'r1', 'completed', 12.49, '2024-01-01 09:00:00')`,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}

	st := New(db, quietLogger())
	require.NoError(t, st.EnsureSchema(context.Background()))

	var orders []models.Order
	require.NoError(t, db.Order("order_number ASC").Find(&orders).Error)
	require.Len(t, orders, 2)

	// Backfill assigns 1..N in ascending creation order.
	assert.Equal(t, "order-early", orders[0].ID)
	assert.EqualValues(t, 1, orders[0].OrderNumber)
	assert.Equal(t, "order-late", orders[1].ID)
	assert.EqualValues(t, 2, orders[1].OrderNumber)
}
