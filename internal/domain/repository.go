package domain

import (
	"context"
	"time"
)

// PlanCache defines the interface for caching serialized plan payloads.
type PlanCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IngredientExtractor defines the interface for the external NLP collaborator
// that turns free-text meal requests into ingredient lists.
type IngredientExtractor interface {
	ExtractIngredients(ctx context.Context, mealText string) ([]Ingredient, error)
}

// CatalogSource defines the interface for the catalog-loading collaborator.
// Load returns the full candidate set for a fresh immutable snapshot.
type CatalogSource interface {
	Load() ([]ProductCandidate, error)
}
