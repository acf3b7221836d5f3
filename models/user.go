package models

import (
	"time"
)

// UserRole defines allowed roles in the system
type UserRole string

const (
	RoleCustomer   UserRole = "customer"
	RoleRestaurant UserRole = "restaurant"
)

// User rows back both registered accounts and locally minted guest
// identities. Guests have no email and an empty password hash until they
// register or log in.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	Email        *string   `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role" gorm:"not null;default:'customer'"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string { return "users" }

// IsGuest reports whether the user was minted locally and never registered.
func (u *User) IsGuest() bool { return u.Email == nil }
