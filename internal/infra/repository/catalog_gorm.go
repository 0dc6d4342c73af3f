package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/quickai-hq/quickai-api/internal/httperr"
	"github.com/quickai-hq/quickai-api/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Business
// --------------------------------------------------

func (r *CatalogGormRepository) GetBusinessByID(
	ctx context.Context,
	id uint,
) (*models.Business, error) {

	var business models.Business
	if err := r.db.WithContext(ctx).First(&business, id).Error; err != nil {
		return nil, err
	}
	return &business, nil
}

// --------------------------------------------------
// Product
// --------------------------------------------------

func (r *CatalogGormRepository) SKUExists(
	ctx context.Context,
	businessID uint,
	sku string,
	excludeProductID uint,
) (bool, error) {

	q := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("business_id = ? AND sku = ?", businessID, sku)

	if excludeProductID != 0 {
		q = q.Where("id <> ?", excludeProductID)
	}

	var count int64
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *CatalogGormRepository) CreateProduct(
	ctx context.Context,
	product *models.Product,
) error {

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		if isDuplicateKey(err) {
			return httperr.ErrBusiness("sku_already_exists")
		}
		return err
	}
	return nil
}

// The unique index on (business_id, sku) backs the pre-check; races surface
// as driver-level duplicate key errors that differ per dialect.
func isDuplicateKey(err error) bool {
	if err == gorm.ErrDuplicatedKey {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || // postgres
		strings.Contains(msg, "unique constraint") // sqlite
}
