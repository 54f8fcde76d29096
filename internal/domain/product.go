package domain

// StoreType tags which kind of store a product or ingredient belongs to.
type StoreType string

const (
	StorePrimary   StoreType = "primary"
	StoreSpecialty StoreType = "specialty"
	StoreBoth      StoreType = "both"
)

// Measure is a quantity with its unit (e.g. 16 oz, 2 lb).
type Measure struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// ProductCandidate is one purchasable listing from one store's catalog.
// Loaded once per snapshot from the catalog collaborator; read-only during
// planning.
type ProductCandidate struct {
	ProductID      string    `json:"productId"`
	SourceStoreID  string    `json:"sourceStoreId"`
	StoreName      string    `json:"storeName"`
	Category       string    `json:"category"`
	Brand          string    `json:"brand,omitempty"`
	Title          string    `json:"title"`
	Price          float64   `json:"price"`
	Size           Measure   `json:"size"`
	UnitPrice      Measure   `json:"unitPrice"` // derived price per standard unit
	Organic        bool      `json:"organic"`
	Packaging      string    `json:"packaging,omitempty"`
	Certifications []string  `json:"certifications,omitempty"`
	Nutrition      string    `json:"nutrition,omitempty"`
	Labels         []string  `json:"labels,omitempty"`
	StoreType      StoreType `json:"storeType"`
}
