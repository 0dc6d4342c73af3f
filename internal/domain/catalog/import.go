package catalog

// ProductRow is one candidate product parsed out of an uploaded CSV.
type ProductRow struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Category    string  `json:"category"`
	SKU         string  `json:"sku"`
	ImageURL    string  `json:"image_url"`
	IsActive    bool    `json:"is_active"`
}

type ImportRowResult struct {
	ProductID uint       `json:"product_id"`
	Row       ProductRow `json:"row"`
}

// ImportRowError keeps the original row next to the failure so the caller can
// show users exactly which line was rejected and why.
type ImportRowError struct {
	Row   ProductRow `json:"row"`
	Error string     `json:"error"`
}

type ImportResult struct {
	Success      int               `json:"success"`
	Errors       int               `json:"errors"`
	Skipped      int               `json:"skipped"`
	Results      []ImportRowResult `json:"results"`
	ErrorDetails []ImportRowError  `json:"error_details"`
}
