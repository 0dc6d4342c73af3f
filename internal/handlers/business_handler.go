package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickai-hq/quickai-api/internal/audit"
	"github.com/quickai-hq/quickai-api/internal/httperr"
	"github.com/quickai-hq/quickai-api/internal/middleware"
	"github.com/quickai-hq/quickai-api/internal/models"
)

type BusinessHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewBusinessHandler(db *gorm.DB, auditor *audit.Dispatcher) *BusinessHandler {
	return &BusinessHandler{db: db, audit: auditor}
}

type UpdateBusinessRequest struct {
	BusinessName        string `json:"business_name" binding:"required"`
	BusinessDescription string `json:"business_description"`
	WhatsappToken       string `json:"whatsapp_token"`
}

func (h *BusinessHandler) GetMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Could not load the business.")
		return
	}

	c.JSON(http.StatusOK, business)
}

func (h *BusinessHandler) UpdateMeBusiness(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var business models.Business
	if err := h.db.First(&business, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_business", "Could not load the business.")
		return
	}

	var req UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	token := strings.TrimSpace(req.WhatsappToken)

	business.BusinessName = req.BusinessName
	business.BusinessDescription = req.BusinessDescription
	business.WhatsappToken = token
	business.WhatsappIntegrated = token != ""

	if err := h.db.Save(&business).Error; err != nil {
		httperr.Internal(c, "failed_to_update_business", "Could not save the business settings.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "business.update",
		Entity:     "business",
		EntityID:   &business.ID,
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}
