package handlers

import (
	"errors"
	"net/http"
	"time"

	"easyfood/middleware"
	"easyfood/models"
	"easyfood/store"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	store   *store.Store
	session store.SessionStore
	secret  []byte
	ttl     time.Duration
}

func NewAuthHandler(st *store.Store, session store.SessionStore, secret []byte, ttl time.Duration) *AuthHandler {
	return &AuthHandler{store: st, session: session, secret: secret, ttl: ttl}
}

type RegisterRequest struct {
	Name     string          `json:"name" binding:"required"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=6"`
	Role     models.UserRole `json:"role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new user account
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Role != models.RoleCustomer && req.Role != models.RoleRestaurant {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role. Must be: customer or restaurant"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user, err := h.store.RegisterUser(c.Request.Context(), req.Email, string(hash), req.Role, req.Name)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user, h.secret, h.ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Account created successfully",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": req.Email,
			"role":  user.Role,
		},
	})
}

// Login authenticates a user, migrates any guest cart into the account,
// and returns a JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.store.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	if _, err := h.store.OnLogin(c.Request.Context(), h.session, req.Email); err != nil {
		if errors.Is(err, store.ErrCartConflict) {
			c.JSON(http.StatusConflict, gin.H{
				"error": "Your saved cart and your guest cart belong to different restaurants. Clear one of them and log in again.",
			})
			return
		}
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	token, err := middleware.GenerateToken(user, h.secret, h.ttl)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": req.Email,
			"role":  user.Role,
		},
	})
}

// Logout clears the persisted session identity. Any guest id stays so an
// in-progress guest cart survives.
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.session.Delete(store.SessionKeyEmail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session resolves the current identity, minting a guest user on first use
func (h *AuthHandler) Session(c *gin.Context) {
	userID, err := h.store.ResolveUserID(c.Request.Context(), h.session)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	user, err := h.store.UserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id": user.ID,
		"guest":   user.IsGuest(),
		"role":    user.Role,
	})
}

// GetProfile returns the authenticated user's profile
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	user, err := h.store.UserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateProfile sets the display name
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.store.UpdateUserName(c.Request.Context(), userID, req.Name); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}

// DeleteAccount removes the account and everything it owns
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if err := h.store.DeleteUserData(c.Request.Context(), userID); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if err := h.session.Delete(store.SessionKeyEmail); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Account deleted but session cleanup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account and all related data deleted"})
}
