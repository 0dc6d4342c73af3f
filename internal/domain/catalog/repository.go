package catalog

import (
	"context"

	"github.com/quickai-hq/quickai-api/internal/models"
)

type Repository interface {
	// -------- Business --------
	GetBusinessByID(
		ctx context.Context,
		id uint,
	) (*models.Business, error)

	// -------- Product --------
	SKUExists(
		ctx context.Context,
		businessID uint,
		sku string,
		excludeProductID uint,
	) (bool, error)

	CreateProduct(
		ctx context.Context,
		product *models.Product,
	) error
}
