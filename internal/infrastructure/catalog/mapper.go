package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mealcart/backend/internal/domain"
)

// Column names expected in catalog spreadsheet headers. Order in the file
// does not matter; the header row is matched by name.
const (
	colProductID      = "product_id"
	colStoreID        = "store_id"
	colStoreName      = "store_name"
	colCategory       = "category"
	colBrand          = "brand"
	colTitle          = "title"
	colPrice          = "price"
	colSizeValue      = "size_value"
	colSizeUnit       = "size_unit"
	colOrganic        = "organic"
	colPackaging      = "packaging"
	colCertifications = "certifications"
	colNutrition      = "nutrition"
	colLabels         = "labels"
	colStoreType      = "store_type"
)

// ouncesPerUnit covers the units catalog files use for sizes. Unknown units
// leave the derived unit price empty rather than failing the row.
var ouncesPerUnit = map[string]float64{
	"oz": 1, "fl oz": 1, "lb": 16, "lbs": 16,
	"g": 0.035274, "kg": 35.274, "ml": 0.033814, "l": 33.814,
}

// rowToCandidate maps one spreadsheet row (already keyed by header name)
// into a ProductCandidate, deriving the per-ounce unit price when the size
// unit is convertible.
func rowToCandidate(row map[string]string) (domain.ProductCandidate, error) {
	productID := strings.TrimSpace(row[colProductID])
	if productID == "" {
		return domain.ProductCandidate{}, fmt.Errorf("row is missing %s", colProductID)
	}
	title := strings.TrimSpace(row[colTitle])
	if title == "" {
		return domain.ProductCandidate{}, fmt.Errorf("row %s is missing %s", productID, colTitle)
	}
	category := strings.TrimSpace(row[colCategory])
	if category == "" {
		return domain.ProductCandidate{}, fmt.Errorf("row %s is missing %s", productID, colCategory)
	}

	price, err := parseFloat(row[colPrice])
	if err != nil {
		return domain.ProductCandidate{}, fmt.Errorf("row %s has invalid price: %w", productID, err)
	}

	sizeValue, _ := parseFloat(row[colSizeValue])
	sizeUnit := strings.ToLower(strings.TrimSpace(row[colSizeUnit]))

	candidate := domain.ProductCandidate{
		ProductID:      productID,
		SourceStoreID:  strings.TrimSpace(row[colStoreID]),
		StoreName:      strings.TrimSpace(row[colStoreName]),
		Category:       category,
		Brand:          strings.TrimSpace(row[colBrand]),
		Title:          title,
		Price:          price,
		Size:           domain.Measure{Value: sizeValue, Unit: sizeUnit},
		Organic:        parseBool(row[colOrganic]),
		Packaging:      strings.TrimSpace(row[colPackaging]),
		Certifications: splitList(row[colCertifications]),
		Nutrition:      strings.TrimSpace(row[colNutrition]),
		Labels:         splitList(row[colLabels]),
		StoreType:      parseStoreType(row[colStoreType]),
	}
	candidate.UnitPrice = deriveUnitPrice(price, candidate.Size)

	return candidate, nil
}

// deriveUnitPrice computes price per ounce when the size converts cleanly.
func deriveUnitPrice(price float64, size domain.Measure) domain.Measure {
	factor, ok := ouncesPerUnit[size.Unit]
	if !ok || size.Value <= 0 || price <= 0 {
		return domain.Measure{}
	}
	ounces := size.Value * factor
	return domain.Measure{
		Value: price / ounces,
		Unit:  "oz",
	}
}

func parseFloat(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0, fmt.Errorf("empty numeric value")
	}
	return strconv.ParseFloat(s, 64)
}

func parseBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "organic":
		return true
	default:
		return false
	}
}

func parseStoreType(s string) domain.StoreType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "primary":
		return domain.StorePrimary
	case "specialty":
		return domain.StoreSpecialty
	default:
		return domain.StoreBoth
	}
}

// splitList parses a semicolon- or comma-separated cell into a clean slice.
func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	sep := ";"
	if !strings.Contains(s, ";") {
		sep = ","
	}
	parts := strings.Split(s, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
