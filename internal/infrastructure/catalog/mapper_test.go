package catalog

import (
	"math"
	"reflect"
	"testing"

	"github.com/mealcart/backend/internal/domain"
)

func sampleRow() map[string]string {
	return map[string]string{
		colProductID:      "wm-chk-1",
		colStoreID:        "walmart",
		colStoreName:      "Walmart",
		colCategory:       "chicken",
		colBrand:          "Tyson",
		colTitle:          "Boneless Skinless Chicken Thighs",
		colPrice:          "$8.49",
		colSizeValue:      "2",
		colSizeUnit:       "lb",
		colOrganic:        "no",
		colPackaging:      "plastic tray",
		colCertifications: "USDA Inspected; All Natural",
		colStoreType:      "primary",
	}
}

func TestRowToCandidate(t *testing.T) {
	candidate, err := rowToCandidate(sampleRow())
	if err != nil {
		t.Fatalf("rowToCandidate() error = %v", err)
	}

	if candidate.ProductID != "wm-chk-1" || candidate.Category != "chicken" {
		t.Errorf("identity fields wrong: %+v", candidate)
	}
	if candidate.Price != 8.49 {
		t.Errorf("Price = %f, want 8.49 (dollar sign stripped)", candidate.Price)
	}
	if candidate.Size != (domain.Measure{Value: 2, Unit: "lb"}) {
		t.Errorf("Size = %+v", candidate.Size)
	}
	if candidate.StoreType != domain.StorePrimary {
		t.Errorf("StoreType = %s, want primary", candidate.StoreType)
	}
	if !reflect.DeepEqual(candidate.Certifications, []string{"USDA Inspected", "All Natural"}) {
		t.Errorf("Certifications = %v", candidate.Certifications)
	}

	// 2 lb = 32 oz, so $8.49 derives to roughly $0.265/oz.
	if candidate.UnitPrice.Unit != "oz" || math.Abs(candidate.UnitPrice.Value-8.49/32) > 1e-9 {
		t.Errorf("UnitPrice = %+v, want ~0.2653/oz", candidate.UnitPrice)
	}
}

func TestRowToCandidateRequiredFields(t *testing.T) {
	tests := []struct {
		name  string
		strip string
	}{
		{"missing product id", colProductID},
		{"missing title", colTitle},
		{"missing category", colCategory},
		{"missing price", colPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := sampleRow()
			row[tt.strip] = "  "
			if _, err := rowToCandidate(row); err == nil {
				t.Errorf("rowToCandidate() accepted a row without %s", tt.strip)
			}
		})
	}
}

func TestRowToCandidateUnknownSizeUnit(t *testing.T) {
	row := sampleRow()
	row[colSizeUnit] = "bunch"

	candidate, err := rowToCandidate(row)
	if err != nil {
		t.Fatalf("rowToCandidate() error = %v", err)
	}
	if candidate.UnitPrice != (domain.Measure{}) {
		t.Errorf("UnitPrice = %+v, want empty for unconvertible unit", candidate.UnitPrice)
	}
}

func TestParseBool(t *testing.T) {
	truthy := []string{"true", "Yes", "y", "1", "ORGANIC"}
	for _, s := range truthy {
		if !parseBool(s) {
			t.Errorf("parseBool(%q) = false, want true", s)
		}
	}
	falsy := []string{"", "no", "false", "0", "conventional"}
	for _, s := range falsy {
		if parseBool(s) {
			t.Errorf("parseBool(%q) = true, want false", s)
		}
	}
}

func TestParseStoreType(t *testing.T) {
	if got := parseStoreType("Primary"); got != domain.StorePrimary {
		t.Errorf("parseStoreType(Primary) = %s", got)
	}
	if got := parseStoreType("specialty"); got != domain.StoreSpecialty {
		t.Errorf("parseStoreType(specialty) = %s", got)
	}
	if got := parseStoreType("anything else"); got != domain.StoreBoth {
		t.Errorf("parseStoreType default = %s, want both", got)
	}
}

func TestSplitList(t *testing.T) {
	if got := splitList("a; b ;c"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("semicolon split = %v", got)
	}
	if got := splitList("a, b"); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("comma split = %v", got)
	}
	if got := splitList("  "); got != nil {
		t.Errorf("blank split = %v, want nil", got)
	}
}
