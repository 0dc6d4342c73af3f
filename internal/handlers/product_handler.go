package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quickai-hq/quickai-api/internal/audit"
	"github.com/quickai-hq/quickai-api/internal/httperr"
	"github.com/quickai-hq/quickai-api/internal/httpresp"
	"github.com/quickai-hq/quickai-api/internal/middleware"
	"github.com/quickai-hq/quickai-api/internal/models"
)

type ProductHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewProductHandler(db *gorm.DB, auditor *audit.Dispatcher) *ProductHandler {
	return &ProductHandler{db: db, audit: auditor}
}

// --------- Requests ---------

type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku"`
	ImageURL    string  `json:"image_url"`
	IsActive    *bool   `json:"is_active"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Category    *string  `json:"category,omitempty"`
	SKU         *string  `json:"sku,omitempty"`
	ImageURL    *string  `json:"image_url,omitempty"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

// --------- Handlers ---------

func (h *ProductHandler) List(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	category := strings.TrimSpace(c.Query("category"))

	q := h.db.Where("business_id = ?", businessID)

	if category != "" {
		q = q.Where("category = ?", category)
	}

	products := []models.Product{}
	if err := q.
		Order("created_at DESC, id DESC").
		Find(&products).Error; err != nil {

		httperr.Internal(c, "failed_to_list_products", "Could not list products.")
		return
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Could not load the product.")
		return
	}

	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Create(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	sku := strings.TrimSpace(req.SKU)

	if sku != "" {
		var count int64
		h.db.Model(&models.Product{}).
			Where("business_id = ? AND sku = ?", businessID, sku).
			Count(&count)
		if count > 0 {
			httperr.Conflict(c, "sku_already_exists", "A product with this SKU already exists.")
			return
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	product := models.Product{
		BusinessID:  businessID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		SKU:         sku,
		ImageURL:    req.ImageURL,
		IsActive:    active,
	}

	if err := h.db.Create(&product).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.Conflict(c, "sku_already_exists", "A product with this SKU already exists.")
			return
		}
		httperr.Internal(c, "failed_to_create_product", "Could not create the product.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "product.create",
		Entity:     "product",
		EntityID:   &product.ID,
	})

	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id := c.Param("id")

	var product models.Product
	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		First(&product).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "product_not_found", "Product not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_product", "Could not load the product.")
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.SKU != nil {
		sku := strings.TrimSpace(*req.SKU)
		if sku != "" && sku != product.SKU {
			var count int64
			h.db.Model(&models.Product{}).
				Where("business_id = ? AND sku = ? AND id <> ?", product.BusinessID, sku, product.ID).
				Count(&count)
			if count > 0 {
				httperr.Conflict(c, "sku_already_exists", "A product with this SKU already exists.")
				return
			}
		}
		product.SKU = sku
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.db.Save(&product).Error; err != nil {
		if isUniqueViolation(err) {
			httperr.Conflict(c, "sku_already_exists", "A product with this SKU already exists.")
			return
		}
		httperr.Internal(c, "failed_to_update_product", "Could not update the product.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "product.update",
		Entity:     "product",
		EntityID:   &product.ID,
	})

	c.JSON(http.StatusOK, product)
}

// Delete is idempotent: removing an id that no longer exists still succeeds.
func (h *ProductHandler) Delete(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id := c.Param("id")

	if err := h.db.
		Where("id = ? AND business_id = ?", id, businessID).
		Delete(&models.Product{}).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_product", "Could not delete the product.")
		return
	}

	h.audit.Dispatch(audit.Event{
		BusinessID: businessID,
		UserID:     &userID,
		Action:     "product.delete",
		Entity:     "product",
	})

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *ProductHandler) Categories(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)

	categories := []string{}
	if err := h.db.
		Model(&models.Product{}).
		Where("business_id = ? AND category <> ''", businessID).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error; err != nil {

		httperr.Internal(c, "failed_to_list_categories", "Could not list categories.")
		return
	}

	httpresp.List(c, categories)
}
