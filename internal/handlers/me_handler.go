package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickai-hq/quickai-api/internal/middleware"
	"github.com/quickai-hq/quickai-api/internal/models"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

// GetMe rebuilds the identity payload the client persists between visits. A
// 401 from the middleware in front of this is the "session expired" signal.
func (h *MeHandler) GetMe(c *gin.Context) {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user_not_in_context"})
		return
	}

	userID, ok := userIDVal.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_user_id_type"})
		return
	}

	var user models.User
	if err := h.db.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user_not_found"})
		return
	}

	payload := gin.H{
		"user_id":       user.ID,
		"email":         user.Email,
		"owner_name":    user.Name,
		"business_id":   nil,
		"business_name": nil,
	}

	if user.BusinessID != nil {
		var business models.Business
		if err := h.db.First(&business, *user.BusinessID).Error; err == nil {
			payload["business_id"] = business.ID
			payload["business_name"] = business.BusinessName
		}
	}

	c.JSON(http.StatusOK, payload)
}
