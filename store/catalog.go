package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"easyfood/catalog"
	"easyfood/models"
)

// SeedCatalogIfEmpty inserts one product row per menu item across all
// restaurants in the catalog, tagging each with its parent restaurant id.
// It is a no-op when any product row already exists: idempotence is coarse,
// there is no per-item reconciliation.
func (s *Store) SeedCatalogIfEmpty(ctx context.Context, restaurants []catalog.Restaurant) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Product{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count products: %w", err)
		}
		if count > 0 {
			return nil
		}

		for _, r := range restaurants {
			for _, item := range r.Menu {
				product := models.Product{
					ID:           item.ID,
					RestaurantID: r.ID,
					Name:         item.Name,
					Description:  item.Description,
					Price:        item.Price,
					ImageURL:     item.Image,
					Category:     item.Category,
					Available:    true,
				}
				if err := tx.Create(&product).Error; err != nil {
					return fmt.Errorf("insert product %s: %w", item.ID, err)
				}
			}
		}
		s.log.Info("seeded product catalog", "restaurants", len(restaurants))
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed catalog: %w", err)
	}
	return nil
}

// ProductByID returns one product.
func (s *Store) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	return &product, nil
}

// Products returns the seeded products for one restaurant, optionally
// filtered by category.
func (s *Store) Products(ctx context.Context, restaurantID, category string) ([]models.Product, error) {
	query := s.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if category != "" {
		query = query.Where("category = ?", category)
	}
	var products []models.Product
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}
