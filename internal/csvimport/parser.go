package csvimport

import (
	"strconv"
	"strings"

	domain "github.com/quickai-hq/quickai-api/internal/domain/catalog"
	"github.com/quickai-hq/quickai-api/internal/httperr"
)

// Headers the uploaded file must carry; anything beyond these is optional.
var requiredHeaders = []string{"name", "description", "price", "stock"}

type ParseResult struct {
	Rows    []domain.ProductRow
	Skipped int
}

// Parse turns raw CSV text into candidate product rows.
//
// The format is deliberately dumb: comma-split only, no quoting or escaping
// support. Header tokens are trimmed and lowercased. A data row becomes a
// candidate only when name, price and stock are non-empty; unparseable
// numbers coerce to zero instead of rejecting the row (the upstream importer
// behaved this way, and changing it would silently alter existing files).
func Parse(text string) (*ParseResult, error) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, httperr.ErrBusiness("missing_required_headers")
	}

	headers := strings.Split(lines[0], ",")
	for i, h := range headers {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, required := range requiredHeaders {
		if !contains(headers, required) {
			return nil, httperr.ErrBusiness("missing_required_headers")
		}
	}

	result := &ParseResult{}

	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		values := strings.Split(line, ",")
		fields := map[string]string{}
		for i, h := range headers {
			if i < len(values) {
				fields[h] = strings.TrimSpace(values[i])
			} else {
				fields[h] = ""
			}
		}

		if fields["name"] == "" || fields["price"] == "" || fields["stock"] == "" {
			result.Skipped++
			continue
		}

		result.Rows = append(result.Rows, domain.ProductRow{
			Name:        fields["name"],
			Description: fields["description"],
			Price:       parseFloat(fields["price"]),
			Stock:       parseInt(fields["stock"]),
			Category:    fields["category"],
			SKU:         fields["sku"],
			ImageURL:    fields["imageurl"],
			IsActive:    parseActive(fields["isactive"]),
		})
	}

	if len(result.Rows) == 0 {
		return nil, httperr.ErrBusiness("no_valid_rows")
	}

	return result, nil
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v != v { // reject NaN
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

// Empty means active; anything else is compared against the literal "true".
func parseActive(s string) bool {
	if s == "" {
		return true
	}
	return strings.EqualFold(s, "true")
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
