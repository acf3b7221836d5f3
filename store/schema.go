package store

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"easyfood/models"
)

// legacyRebuild describes how to rewrite one pre-UUID table whose id
// columns were numeric. SQLite cannot alter a column type in place, so each
// table is rebuilt: create the TEXT-keyed shape, copy rows with ids cast to
// TEXT, drop the old table and rename.
type legacyRebuild struct {
	table  string
	create string
	insert string
}

var legacyRebuilds = []legacyRebuild{
	{
		table:  "Cart",
		create: `CREATE TABLE "Cart_new" (id TEXT PRIMARY KEY NOT NULL, user_id TEXT, restaurant_id TEXT, created_at DATETIME DEFAULT CURRENT_TIMESTAMP)`,
		insert: `INSERT INTO "Cart_new" (id, user_id, restaurant_id, created_at) SELECT CAST(id AS TEXT), CAST(user_id AS TEXT), CAST(restaurant_id AS TEXT), created_at FROM "Cart"`,
	},
	{
		table:  "CartItems",
		create: `CREATE TABLE "CartItems_new" (id TEXT PRIMARY KEY NOT NULL, cart_id TEXT, product_id TEXT, quantity INTEGER, price DECIMAL(10,2), notes TEXT)`,
		insert: `INSERT INTO "CartItems_new" (id, cart_id, product_id, quantity, price, notes) SELECT CAST(id AS TEXT), CAST(cart_id AS TEXT), CAST(product_id AS TEXT), quantity, price, notes FROM "CartItems"`,
	},
	{
		table:  "Orders",
		create: `CREATE TABLE "Orders_new" (id TEXT PRIMARY KEY NOT NULL, user_id TEXT, restaurant_id TEXT, status TEXT, total_amount DECIMAL(10,2), delivery_fee DECIMAL(10,2), service_fee DECIMAL(10,2), created_at DATETIME DEFAULT CURRENT_TIMESTAMP, delivery_address TEXT, customer_name TEXT, customer_phone TEXT)`,
		insert: `INSERT INTO "Orders_new" (id, user_id, restaurant_id, status, total_amount, delivery_fee, service_fee, created_at, delivery_address, customer_name, customer_phone) SELECT CAST(id AS TEXT), CAST(user_id AS TEXT), CAST(restaurant_id AS TEXT), status, total_amount, delivery_fee, service_fee, created_at, delivery_address, customer_name, customer_phone FROM "Orders"`,
	},
	{
		table:  "OrderItems",
		create: `CREATE TABLE "OrderItems_new" (id TEXT PRIMARY KEY NOT NULL, order_id TEXT, product_id TEXT, quantity INTEGER, price DECIMAL(10,2), notes TEXT)`,
		insert: `INSERT INTO "OrderItems_new" (id, order_id, product_id, quantity, price, notes) SELECT CAST(id AS TEXT), CAST(order_id AS TEXT), CAST(product_id AS TEXT), quantity, price, notes FROM "OrderItems"`,
	},
	{
		table:  "Products",
		create: `CREATE TABLE "Products_new" (id TEXT PRIMARY KEY NOT NULL, restaurant_id TEXT, name TEXT, description TEXT, price DECIMAL(10,2), image_url TEXT, category TEXT, available BOOLEAN DEFAULT 1)`,
		insert: `INSERT INTO "Products_new" (id, restaurant_id, name, description, price, image_url, category, available) SELECT CAST(id AS TEXT), CAST(restaurant_id AS TEXT), name, description, price, image_url, category, available FROM "Products"`,
	},
}

// EnsureSchema creates or migrates every table the store needs. It is
// idempotent and safe to call from any entry point, including concurrently.
// The whole migration runs in one transaction so a failing step cannot
// leave the schema half-migrated.
func (s *Store) EnsureSchema(ctx context.Context) error {
	s.schemaMu.Lock()
	defer s.schemaMu.Unlock()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, r := range legacyRebuilds {
			legacy, err := hasLegacyIntegerID(tx, r.table)
			if err != nil {
				return fmt.Errorf("inspect table %s: %w", r.table, err)
			}
			if !legacy {
				continue
			}
			for _, stmt := range []string{
				r.create,
				r.insert,
				fmt.Sprintf(`DROP TABLE "%s"`, r.table),
				fmt.Sprintf(`ALTER TABLE "%s_new" RENAME TO "%s"`, r.table, r.table),
			} {
				if err := tx.Exec(stmt).Error; err != nil {
					return fmt.Errorf("rebuild table %s: %w", r.table, err)
				}
			}
			s.log.Info("migrated legacy table to string ids", "table", r.table)
		}

		// Detect the order_number backfill before AutoMigrate adds the
		// column.
		backfill := tx.Migrator().HasTable("Orders") &&
			!tx.Migrator().HasColumn(&models.Order{}, "order_number")

		if err := tx.AutoMigrate(
			&models.User{},
			&models.Cart{},
			&models.CartItem{},
			&models.Order{},
			&models.OrderItem{},
			&models.Product{},
			&models.Setting{},
		); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}

		if backfill {
			if err := backfillOrderNumbers(tx); err != nil {
				return fmt.Errorf("backfill order numbers: %w", err)
			}
			s.log.Info("backfilled order numbers for existing orders")
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func hasLegacyIntegerID(tx *gorm.DB, table string) (bool, error) {
	if !tx.Migrator().HasTable(table) {
		return false, nil
	}
	cols, err := tx.Migrator().ColumnTypes(table)
	if err != nil {
		return false, err
	}
	for _, col := range cols {
		if col.Name() != "id" {
			continue
		}
		return strings.Contains(strings.ToUpper(col.DatabaseTypeName()), "INT"), nil
	}
	return false, nil
}

// backfillOrderNumbers assigns 1..N to pre-existing orders in ascending
// creation order.
func backfillOrderNumbers(tx *gorm.DB) error {
	var ids []string
	if err := tx.Model(&models.Order{}).Order("created_at ASC").Pluck("id", &ids).Error; err != nil {
		return err
	}
	for i, id := range ids {
		if err := tx.Model(&models.Order{}).Where("id = ?", id).
			Update("order_number", i+1).Error; err != nil {
			return err
		}
	}
	return nil
}
