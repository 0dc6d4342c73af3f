package catalog

import (
	"context"
	"fmt"

	"github.com/quickai-hq/quickai-api/internal/audit"
	domain "github.com/quickai-hq/quickai-api/internal/domain/catalog"
	"github.com/quickai-hq/quickai-api/internal/httperr"
	"github.com/quickai-hq/quickai-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type ImportProductsInput struct {
	BusinessID uint
	UserID     *uint

	Rows    []domain.ProductRow
	Skipped int
}

// ======================================================
// USE CASE
// ======================================================

type ImportProducts struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewImportProducts(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ImportProducts {
	return &ImportProducts{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

// Execute inserts candidate rows one at a time. Rows are independent: a SKU
// collision or insert failure is recorded against that row and the batch
// keeps going. Only a missing business aborts up front.
func (uc *ImportProducts) Execute(
	ctx context.Context,
	in ImportProductsInput,
) (*domain.ImportResult, error) {

	// --------------------------------------------------
	// Target business must exist before any row is touched
	// --------------------------------------------------
	if _, err := uc.repo.GetBusinessByID(ctx, in.BusinessID); err != nil {
		return nil, httperr.ErrBusiness("business_not_found")
	}

	result := &domain.ImportResult{
		Skipped: in.Skipped,
	}

	for _, row := range in.Rows {

		// --------------------------------------------------
		// Per-business SKU pre-check
		// --------------------------------------------------
		if row.SKU != "" {
			exists, err := uc.repo.SKUExists(ctx, in.BusinessID, row.SKU, 0)
			if err != nil {
				result.Errors++
				result.ErrorDetails = append(result.ErrorDetails, domain.ImportRowError{
					Row:   row,
					Error: err.Error(),
				})
				continue
			}
			if exists {
				result.Errors++
				result.ErrorDetails = append(result.ErrorDetails, domain.ImportRowError{
					Row:   row,
					Error: fmt.Sprintf("Product with SKU %s already exists", row.SKU),
				})
				continue
			}
		}

		product := models.Product{
			BusinessID:  in.BusinessID,
			Name:        row.Name,
			Description: row.Description,
			Price:       row.Price,
			Stock:       row.Stock,
			Category:    row.Category,
			SKU:         row.SKU,
			ImageURL:    row.ImageURL,
			IsActive:    row.IsActive,
		}

		if err := uc.repo.CreateProduct(ctx, &product); err != nil {
			// Lost pre-check races land here via the unique index.
			msg := err.Error()
			if httperr.IsBusiness(err, "sku_already_exists") {
				msg = fmt.Sprintf("Product with SKU %s already exists", row.SKU)
			}
			result.Errors++
			result.ErrorDetails = append(result.ErrorDetails, domain.ImportRowError{
				Row:   row,
				Error: msg,
			})
			continue
		}

		result.Success++
		result.Results = append(result.Results, domain.ImportRowResult{
			ProductID: product.ID,
			Row:       row,
		})
	}

	uc.audit.Dispatch(audit.Event{
		BusinessID: in.BusinessID,
		UserID:     in.UserID,
		Action:     "product.import",
		Entity:     "product",
		Metadata: map[string]int{
			"success": result.Success,
			"errors":  result.Errors,
			"skipped": result.Skipped,
		},
	})

	return result, nil
}
