package store

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"easyfood/catalog"
	"easyfood/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every session on the same in-memory
	// database.
	sqlDB.SetMaxOpenConns(1)
	return db
}

func quietLogger() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	st := New(newTestDB(t), quietLogger())
	require.NoError(t, st.EnsureSchema(context.Background()))
	return st
}

// testCatalog has two restaurants with image references covering all three
// classification buckets.
func testCatalog() []catalog.Restaurant {
	return []catalog.Restaurant{
		{ID: "rest-a", Name: "Testaurant A", Menu: []catalog.MenuItem{
			{ID: "p1", Name: "Fanesca", Price: decimal.RequireFromString("2.00"), Image: "https://cdn.example.com/fanesca.jpg", Category: "Tipico"},
			{ID: "p2", Name: "Fritada", Price: decimal.RequireFromString("5.00"), Image: "assets/food/fritada.jpg", Category: "Fritada"},
		}},
		{ID: "rest-b", Name: "Testaurant B", Menu: []catalog.MenuItem{
			{ID: "p3", Name: "Margherita", Price: decimal.RequireFromString("3.50"), Image: "margherita", Category: "Pizzas"},
		}},
	}
}

func newSeededStore(t *testing.T) *Store {
	t.Helper()
	st := newTestStore(t)
	require.NoError(t, st.SeedCatalogIfEmpty(context.Background(), testCatalog()))
	return st
}

func createTestUser(t *testing.T, st *Store) string {
	t.Helper()
	user := models.User{ID: uuid.NewString(), Role: models.RoleCustomer}
	require.NoError(t, st.db.Create(&user).Error)
	return user.ID
}
