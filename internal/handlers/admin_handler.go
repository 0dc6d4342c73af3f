package handlers

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickai-hq/quickai-api/internal/config"
	"github.com/quickai-hq/quickai-api/internal/httperr"
	"github.com/quickai-hq/quickai-api/internal/httpresp"
	"github.com/quickai-hq/quickai-api/internal/models"
)

// AdminHandler serves the unscoped diagnostic endpoints used by internal
// tooling. These live off the tenant surface and are disabled entirely when
// no ADMIN_TOKEN is configured.
type AdminHandler struct {
	db     *gorm.DB
	config *config.Config
}

func NewAdminHandler(db *gorm.DB, cfg *config.Config) *AdminHandler {
	return &AdminHandler{db: db, config: cfg}
}

func (h *AdminHandler) requireToken(c *gin.Context) bool {
	token := c.GetHeader("X-Admin-Token")

	if h.config.AdminToken == "" ||
		subtle.ConstantTimeCompare([]byte(token), []byte(h.config.AdminToken)) != 1 {
		httperr.Unauthorized(c, "invalid_admin_token", "Missing or invalid admin token.")
		return false
	}
	return true
}

// ListAllProducts returns every product across all tenants, most recent first.
func (h *AdminHandler) ListAllProducts(c *gin.Context) {
	if !h.requireToken(c) {
		return
	}

	products := []models.Product{}
	if err := h.db.
		Order("created_at DESC, id DESC").
		Find(&products).Error; err != nil {

		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}

	httpresp.List(c, products)
}
