package usecase

import (
	"math"
	"strings"

	"github.com/mealcart/backend/internal/domain"
)

// ouncesPerUnit converts weight/volume units to ounces. Volume units are
// treated as fluid ounces, which the catalog uses interchangeably with
// weight ounces for scoring purposes.
var ouncesPerUnit = map[string]float64{
	"oz": 1, "ounce": 1, "ounces": 1,
	"fl oz": 1, "floz": 1,
	"lb": 16, "lbs": 16, "pound": 16, "pounds": 16,
	"g": 0.035274, "gram": 0.035274, "grams": 0.035274,
	"kg": 35.274, "kilogram": 35.274, "kilograms": 35.274,
	"ml": 0.033814, "milliliter": 0.033814, "milliliters": 0.033814,
	"l": 33.814, "liter": 33.814, "liters": 33.814,
	"gal": 128, "gallon": 128, "gallons": 128,
	"qt": 32, "quart": 32, "quarts": 32,
	"pt": 16, "pint": 16, "pints": 16,
	"cup": 8, "cups": 8,
	"tbsp": 0.5, "tsp": 0.1667,
}

// countUnits are piece-based units that convert between each other 1:1 but
// not to ounces.
var countUnits = map[string]bool{
	"count": true, "ct": true, "each": true, "ea": true,
	"piece": true, "pieces": true, "pc": true,
	"bunch": true, "bunches": true,
	"clove": true, "cloves": true,
}

// ToOunces converts a measure to ounces. Returns false for count-based or
// unknown units.
func ToOunces(m domain.Measure) (float64, bool) {
	factor, ok := ouncesPerUnit[normalizeUnit(m.Unit)]
	if !ok {
		return 0, false
	}
	return m.Value * factor, true
}

// IsCountUnit reports whether a unit is piece-based rather than measurable.
func IsCountUnit(unit string) bool {
	return countUnits[normalizeUnit(unit)]
}

// UnitPricePerOunce derives a candidate's price per ounce from its size,
// preferring an already-derived unit price when the catalog provides one.
func UnitPricePerOunce(c domain.ProductCandidate) (float64, bool) {
	if c.UnitPrice.Value > 0 {
		if oz, ok := ToOunces(domain.Measure{Value: 1, Unit: c.UnitPrice.Unit}); ok && oz > 0 {
			return c.UnitPrice.Value / oz, true
		}
	}
	if oz, ok := ToOunces(c.Size); ok && oz > 0 {
		return c.Price / oz, true
	}
	return 0, false
}

// PackagesToBuy computes how many packages of the product cover the
// requested quantity. Unknown or mismatched units default to one package.
func PackagesToBuy(ing domain.Ingredient, product domain.ProductCandidate) int {
	if ing.Quantity <= 0 {
		return 1
	}

	if IsCountUnit(ing.Unit) && IsCountUnit(product.Size.Unit) {
		if product.Size.Value <= 0 {
			return 1
		}
		return int(math.Ceil(ing.Quantity / product.Size.Value))
	}

	requiredOz, ok := ToOunces(domain.Measure{Value: ing.Quantity, Unit: ing.Unit})
	if !ok {
		return 1
	}
	packOz, ok := ToOunces(product.Size)
	if !ok || packOz <= 0 {
		return 1
	}
	return int(math.Ceil(requiredOz / packOz))
}

// PurchaseQuantity returns the total quantity actually bought: package
// count times package size, in the product's own unit.
func PurchaseQuantity(packages int, product domain.ProductCandidate) domain.Measure {
	return domain.Measure{
		Value: float64(packages) * product.Size.Value,
		Unit:  product.Size.Unit,
	}
}

func normalizeUnit(unit string) string {
	return strings.TrimSpace(strings.ToLower(unit))
}
