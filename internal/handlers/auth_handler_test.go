package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickai-hq/quickai-api/internal/config"
	"github.com/quickai-hq/quickai-api/internal/models"
)

func TestSignUp_CreatesUserAndBusiness(t *testing.T) {
	r, db := setupServer(t)

	payload := signUp(t, r, "owner@example.com", "Acme")

	assert.NotZero(t, payload["user_id"])
	assert.NotZero(t, payload["business_id"])
	assert.Equal(t, "Acme", payload["business_name"])
	assert.Equal(t, "owner@example.com", payload["email"])
	assert.NotEmpty(t, payload["token"])

	var user models.User
	require.NoError(t, db.Where("email = ?", "owner@example.com").First(&user).Error)
	require.NotNil(t, user.BusinessID)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	var business models.Business
	require.NoError(t, db.First(&business, *user.BusinessID).Error)
	assert.Equal(t, user.ID, business.OwnerID)
	assert.Equal(t, []string{"businessOwner"}, business.RoleList())
	assert.True(t, business.Settings.Notifications)
	assert.Equal(t, "en", business.Settings.Language)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	r, db := setupServer(t)

	signUp(t, r, "owner@example.com", "Acme")

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":         "owner@example.com",
		"password":      "another123",
		"owner_name":    "Other",
		"business_name": "Globex",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "email_already_exists", decode(t, w)["error_code"])

	var count int64
	db.Model(&models.User{}).Where("email = ?", "owner@example.com").Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestSignIn_KnownUser(t *testing.T) {
	r, _ := setupServer(t)
	signUp(t, r, "owner@example.com", "Acme")

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "owner@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	payload := decode(t, w)
	assert.Equal(t, "Acme", payload["business_name"])
	assert.Equal(t, "Owner", payload["owner_name"])
	assert.NotEmpty(t, payload["token"])
}

func TestSignIn_WrongPasswordMutatesNothing(t *testing.T) {
	r, db := setupServer(t)
	signUp(t, r, "owner@example.com", "Acme")

	var before models.User
	require.NoError(t, db.Where("email = ?", "owner@example.com").First(&before).Error)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "owner@example.com",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])

	var after models.User
	require.NoError(t, db.Where("email = ?", "owner@example.com").First(&after).Error)
	assert.Equal(t, before.LastLoginAt, after.LastLoginAt)
}

func TestSignIn_UnknownEmailAutoProvisions(t *testing.T) {
	r, db := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "demo@example.com",
		"password": "whatever123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	payload := decode(t, w)
	assert.Equal(t, "demo's Business", payload["business_name"])
	assert.Equal(t, "demo", payload["owner_name"])
	assert.NotZero(t, payload["user_id"])
	assert.NotZero(t, payload["business_id"])

	var userCount, businessCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Business{}).Count(&businessCount)
	assert.Equal(t, int64(1), userCount)
	assert.Equal(t, int64(1), businessCount)
}

func TestSignIn_AutoProvisionDisabled(t *testing.T) {
	r, db := setupServer(t, func(cfg *config.Config) {
		cfg.AuthAutoProvision = false
	})

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "nobody@example.com",
		"password": "whatever123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "invalid_credentials", decode(t, w)["error_code"])

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestSignIn_AutoProvisionRejectsMalformedEmail(t *testing.T) {
	r, _ := setupServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "not-an-email",
		"password": "whatever123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_email", decode(t, w)["error_code"])
}

func TestGetMe_RestoresIdentityPayload(t *testing.T) {
	r, _ := setupServer(t)
	payload := signUp(t, r, "owner@example.com", "Acme")

	w := doJSON(t, r, http.MethodGet, "/api/me", token(payload), nil)
	require.Equal(t, http.StatusOK, w.Code)

	me := decode(t, w)
	assert.Equal(t, payload["user_id"], me["user_id"])
	assert.Equal(t, payload["business_id"], me["business_id"])
	assert.Equal(t, "Acme", me["business_name"])
	assert.Equal(t, "owner@example.com", me["email"])
}

func TestSecuredRoutes_RejectMissingToken(t *testing.T) {
	r, _ := setupServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/me/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/me/products", "garbage-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_WithoutRevocationStore(t *testing.T) {
	r, _ := setupServer(t)
	payload := signUp(t, r, "owner@example.com", "Acme")

	w := doJSON(t, r, http.MethodPost, "/api/auth/logout", token(payload), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decode(t, w)["success"])
}
