package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quickai-hq/quickai-api/internal/csvimport"
	"github.com/quickai-hq/quickai-api/internal/httperr"
	"github.com/quickai-hq/quickai-api/internal/middleware"
	ucCatalog "github.com/quickai-hq/quickai-api/internal/usecase/catalog"
)

// 2 MB is far beyond any realistic catalog upload.
const maxImportSize = 2 << 20

type ImportHandler struct {
	importProducts *ucCatalog.ImportProducts
}

func NewImportHandler(importProducts *ucCatalog.ImportProducts) *ImportHandler {
	return &ImportHandler{importProducts: importProducts}
}

// Import accepts the CSV either as a multipart "file" field or as the raw
// request body.
func (h *ImportHandler) Import(c *gin.Context) {
	businessID := c.MustGet(middleware.ContextBusinessID).(uint)
	userID := c.MustGet(middleware.ContextUserID).(uint)

	text, err := readCSVPayload(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_upload", "Could not read the uploaded file.")
		return
	}

	parsed, err := csvimport.Parse(text)
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "missing_required_headers"):
			httperr.BadRequest(c, "missing_required_headers",
				"CSV must contain headers: name, description, price, stock (at minimum).")
		case httperr.IsBusiness(err, "no_valid_rows"):
			httperr.BadRequest(c, "no_valid_rows",
				"No valid product rows found in the file.")
		default:
			httperr.Internal(c, "failed_to_parse_csv", "Could not parse the file.")
		}
		return
	}

	result, err := h.importProducts.Execute(c.Request.Context(), ucCatalog.ImportProductsInput{
		BusinessID: businessID,
		UserID:     &userID,
		Rows:       parsed.Rows,
		Skipped:    parsed.Skipped,
	})
	if err != nil {
		if httperr.IsBusiness(err, "business_not_found") {
			httperr.NotFound(c, "business_not_found", "Business not found.")
			return
		}
		httperr.Internal(c, "failed_to_import_products", "Could not import the products.")
		return
	}

	c.JSON(http.StatusOK, result)
}

func readCSVPayload(c *gin.Context) (string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()

		data, err := io.ReadAll(io.LimitReader(f, maxImportSize))
		if err != nil {
			return "", err
		}
		return string(data), nil
	}

	data, err := io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
