package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/quickai-hq/quickai-api/internal/audit"
	"github.com/quickai-hq/quickai-api/internal/config"
	"github.com/quickai-hq/quickai-api/internal/httperr"
	"github.com/quickai-hq/quickai-api/internal/middleware"
	"github.com/quickai-hq/quickai-api/internal/models"
	"github.com/quickai-hq/quickai-api/internal/session"
	"github.com/quickai-hq/quickai-api/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db       *gorm.DB
	config   *config.Config
	sessions *session.Store
	audit    *audit.Dispatcher
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, sessions *session.Store, auditor *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{db: db, config: cfg, sessions: sessions, audit: auditor}
}

// --------- Requests ---------

type SignUpRequest struct {
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,min=6"`
	OwnerName           string `json:"owner_name" binding:"required"`
	BusinessName        string `json:"business_name" binding:"required"`
	BusinessDescription string `json:"business_description"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var count int64
	h.db.Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Conflict(c, "email_already_exists", "An account with this email already exists.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process the password.")
		return
	}

	now := time.Now()

	user := models.User{
		Name:         req.OwnerName,
		Email:        email,
		PasswordHash: string(hashed),
		LastLoginAt:  now,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// Concurrent sign-up with the same email loses here on the unique index.
		if isUniqueViolation(err) {
			httperr.Conflict(c, "email_already_exists", "An account with this email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Could not create the account.")
		return
	}

	business := models.Business{
		OwnerID:             user.ID,
		OwnerName:           req.OwnerName,
		Email:               email,
		BusinessName:        req.BusinessName,
		BusinessDescription: req.BusinessDescription,
		Settings: models.BusinessSettings{
			Notifications: true,
			Language:      "en",
		},
		LastLoginAt: now,
	}
	business.SetRoles([]string{"businessOwner"})

	if err := h.db.Create(&business).Error; err != nil {
		httperr.Internal(c, "failed_to_create_business", "Could not create the business.")
		return
	}

	if err := h.db.Model(&user).Update("business_id", business.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_link_business", "Could not link the account to its business.")
		return
	}

	token, err := h.generateToken(user.ID, business.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a session token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: business.ID,
		UserID:     &user.ID,
		Action:     "auth.register",
		Entity:     "user",
		EntityID:   &user.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"user_id":       user.ID,
		"business_id":   business.ID,
		"business_name": business.BusinessName,
		"email":         user.Email,
		"owner_name":    user.Name,
		"token":         token,
	})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	err := h.db.Where("email = ?", email).First(&user).Error

	if err == gorm.ErrRecordNotFound {
		h.signInUnknown(c, email, req.Password)
		return
	}
	if err != nil {
		httperr.Internal(c, "internal_error", "Could not look up the account.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	now := time.Now()
	h.db.Model(&user).Update("last_login_at", now)

	var businessID uint
	var businessName string
	if user.BusinessID != nil {
		var business models.Business
		if err := h.db.First(&business, *user.BusinessID).Error; err == nil {
			h.db.Model(&business).Update("last_login_at", now)
			businessID = business.ID
			businessName = business.BusinessName
		}
	}

	token, err := h.generateToken(user.ID, businessID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a session token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &user.ID,
		Action:     "auth.login",
		Entity:     "user",
		EntityID:   &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user_id":       user.ID,
		"business_id":   businessID,
		"business_name": businessName,
		"email":         user.Email,
		"owner_name":    user.Name,
		"token":         token,
	})
}

// signInUnknown handles a login for an email with no account. In demo mode a
// fresh user and business are provisioned from the email's local part and the
// call succeeds as if it were a normal login.
func (h *AuthHandler) signInUnknown(c *gin.Context, email, password string) {
	if !h.config.AuthAutoProvision {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid email or password.")
		return
	}

	if !validators.HasValidShape(email) {
		httperr.BadRequest(c, "invalid_email", "Please enter a valid email address.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Could not process the password.")
		return
	}

	ownerName := validators.LocalPart(email)
	now := time.Now()

	user := models.User{
		Name:         ownerName,
		Email:        email,
		PasswordHash: string(hashed),
		LastLoginAt:  now,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			// Raced with another first login for the same email.
			httperr.Conflict(c, "email_already_exists", "An account with this email already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "Could not create the account.")
		return
	}

	business := models.Business{
		OwnerID:             user.ID,
		OwnerName:           ownerName,
		Email:               email,
		BusinessName:        fmt.Sprintf("%s's Business", ownerName),
		BusinessDescription: "Demo business created for QuickAI",
		Settings: models.BusinessSettings{
			Notifications: true,
			Language:      "en",
		},
		LastLoginAt: now,
	}
	business.SetRoles([]string{"businessOwner"})

	if err := h.db.Create(&business).Error; err != nil {
		httperr.Internal(c, "failed_to_create_business", "Could not create the business.")
		return
	}

	if err := h.db.Model(&user).Update("business_id", business.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_link_business", "Could not link the account to its business.")
		return
	}

	token, err := h.generateToken(user.ID, business.ID)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Could not issue a session token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: business.ID,
		UserID:     &user.ID,
		Action:     "auth.auto_provision",
		Entity:     "user",
		EntityID:   &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user_id":       user.ID,
		"business_id":   business.ID,
		"business_name": business.BusinessName,
		"email":         user.Email,
		"owner_name":    user.Name,
		"token":         token,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString(middleware.ContextTokenID)

	if err := h.sessions.Revoke(c.Request.Context(), jti, tokenTTL); err != nil {
		httperr.Internal(c, "failed_to_logout", "Could not revoke the session.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(userID, businessID uint) (string, error) {
	claims := jwt.MapClaims{
		"sub":        userID,
		"businessId": businessID,
		"role":       "businessOwner",
		"jti":        uuid.NewString(),
		"exp":        time.Now().Add(tokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}

func isUniqueViolation(err error) bool {
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint")
}
