package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quickai-hq/quickai-api/internal/models"
)

func TestBusiness_GetMeBusiness(t *testing.T) {
	r, _ := setupServer(t)
	acme := signUp(t, r, "acme@example.com", "Acme")

	w := doJSON(t, r, http.MethodGet, "/api/me/business", token(acme), nil)
	require.Equal(t, http.StatusOK, w.Code)

	business := decode(t, w)
	assert.Equal(t, "Acme", business["business_name"])
	assert.Equal(t, "acme@example.com", business["email"])
}

func TestBusiness_UpdateSetsWhatsappFlag(t *testing.T) {
	r, db := setupServer(t)
	acme := signUp(t, r, "acme@example.com", "Acme")

	w := doJSON(t, r, http.MethodPatch, "/api/me/business", token(acme), gin.H{
		"business_name":        "Acme v2",
		"business_description": "We sell widgets now",
		"whatsapp_token":       "wa-token-123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, true, decode(t, w)["success"])

	var business models.Business
	require.NoError(t, db.Where("business_name = ?", "Acme v2").First(&business).Error)
	assert.Equal(t, "We sell widgets now", business.BusinessDescription)
	assert.Equal(t, "wa-token-123", business.WhatsappToken)
	assert.True(t, business.WhatsappIntegrated)
}

func TestBusiness_UpdateClearsWhatsappFlag(t *testing.T) {
	r, db := setupServer(t)
	acme := signUp(t, r, "acme@example.com", "Acme")

	doJSON(t, r, http.MethodPatch, "/api/me/business", token(acme), gin.H{
		"business_name":  "Acme",
		"whatsapp_token": "wa-token-123",
	})

	w := doJSON(t, r, http.MethodPatch, "/api/me/business", token(acme), gin.H{
		"business_name":  "Acme",
		"whatsapp_token": "",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var business models.Business
	require.NoError(t, db.Where("business_name = ?", "Acme").First(&business).Error)
	assert.False(t, business.WhatsappIntegrated)
	assert.Empty(t, business.WhatsappToken)
}
