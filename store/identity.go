package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"easyfood/models"
)

// SessionStore is the persisted key-value session state consumed by the
// identity resolver: the logged-in email and the locally minted guest id.
// Get returns "" for an absent key.
type SessionStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// Session keys.
const (
	SessionKeyEmail   = "userEmail"
	SessionKeyGuestID = "guestUserId"
)

// ResolveUserID maps the persisted session to a stable user id. A
// logged-in email wins; otherwise the previously minted guest id is reused,
// and when neither exists a fresh guest user is created and persisted.
// This is the only place guest identities are minted: every other store
// operation takes an already resolved id.
func (s *Store) ResolveUserID(ctx context.Context, session SessionStore) (string, error) {
	email, err := session.Get(SessionKeyEmail)
	if err != nil {
		return "", fmt.Errorf("read session email: %w", err)
	}
	if email != "" {
		user, err := s.UserByEmail(ctx, email)
		if err == nil {
			return user.ID, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return "", err
		}
		// Stale session pointing at a deleted account; fall through to the
		// guest path.
	}

	guestID, err := session.Get(SessionKeyGuestID)
	if err != nil {
		return "", fmt.Errorf("read guest id: %w", err)
	}
	if guestID != "" {
		return guestID, nil
	}

	guest := models.User{
		ID:   uuid.NewString(),
		Role: models.RoleCustomer,
	}
	if err := s.db.WithContext(ctx).Create(&guest).Error; err != nil {
		return "", fmt.Errorf("create guest user: %w", err)
	}
	if err := session.Set(SessionKeyGuestID, guest.ID); err != nil {
		return "", fmt.Errorf("persist guest id: %w", err)
	}
	s.log.Info("guest user created", "user_id", guest.ID)
	return guest.ID, nil
}

// OnLogin resolves the account for email, migrates any guest cart into it,
// and records the email as the current session identity.
func (s *Store) OnLogin(ctx context.Context, session SessionStore, email string) (*models.User, error) {
	user, err := s.UserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	guestID, err := session.Get(SessionKeyGuestID)
	if err != nil {
		return nil, fmt.Errorf("read guest id: %w", err)
	}
	if guestID != "" && guestID != user.ID {
		if err := s.MigrateGuestCartToUser(ctx, guestID, user.ID); err != nil {
			return nil, err
		}
		if err := session.Delete(SessionKeyGuestID); err != nil {
			return nil, fmt.Errorf("drop guest id: %w", err)
		}
		s.log.Info("guest cart migrated", "guest_id", guestID, "user_id", user.ID)
	}

	if err := session.Set(SessionKeyEmail, email); err != nil {
		return nil, fmt.Errorf("persist session email: %w", err)
	}
	return user, nil
}

// RegisterUser creates an account with a pre-hashed password. Guests stay
// separate: registration always mints a new user row and the guest cart is
// reconciled on the first login.
func (s *Store) RegisterUser(ctx context.Context, email, passwordHash string, role models.UserRole, name string) (*models.User, error) {
	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	user := models.User{
		ID:           uuid.NewString(),
		Email:        &email,
		PasswordHash: passwordHash,
		Role:         role,
		Name:         name,
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &user, nil
}

// UserByEmail returns the account registered under email.
func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load user by email: %w", err)
	}
	return &user, nil
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// UpdateUserName sets the display name on a user row.
func (s *Store) UpdateUserName(ctx context.Context, userID, name string) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).Update("name", name)
	if result.Error != nil {
		return fmt.Errorf("update user name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}
	return nil
}

// DeleteUserData removes the user and everything they own: cart rows and
// items, orders and their lines, then the user row itself. One transaction,
// per the account-deletion cascade.
func (s *Store) DeleteUserData(ctx context.Context, userID string) error {
	err := s.withUserLock(userID, func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := tx.Where(`order_id IN (SELECT id FROM "Orders" WHERE user_id = ?)`, userID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return fmt.Errorf("delete order items: %w", err)
			}
			if err := tx.Where("user_id = ?", userID).Delete(&models.Order{}).Error; err != nil {
				return fmt.Errorf("delete orders: %w", err)
			}
			if err := clearUserCartTx(tx, userID); err != nil {
				return err
			}
			if err := tx.Delete(&models.User{}, "id = ?", userID).Error; err != nil {
				return fmt.Errorf("delete user: %w", err)
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	s.events.publish(Event{Topic: TopicCartChanged, UserID: userID})
	s.events.publish(Event{Topic: TopicOrdersChanged, UserID: userID})
	return nil
}
