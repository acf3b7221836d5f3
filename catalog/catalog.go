// Package catalog holds the static restaurant and menu definitions the app
// ships with. The store seeds its Products table from this data exactly
// once; everything else (ratings, delivery estimates) is presentation-layer
// reference data.
package catalog

import "github.com/shopspring/decimal"

type Restaurant struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Cuisine      string     `json:"cuisine"`
	Description  string     `json:"description"`
	Address      string     `json:"address"`
	Image        string     `json:"image"`
	Promo        string     `json:"promo,omitempty"`
	Rating       float64    `json:"rating"`
	DeliveryTime string     `json:"delivery_time"`
	Menu         []MenuItem `json:"menu"`
}

type MenuItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// FindRestaurant returns the restaurant with the given id, or nil.
func FindRestaurant(restaurants []Restaurant, id string) *Restaurant {
	for i := range restaurants {
		if restaurants[i].ID == id {
			return &restaurants[i]
		}
	}
	return nil
}
