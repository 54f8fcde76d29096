package domain

import "errors"

var (
	// ErrInvalidIngredient is returned when an ingredient record is
	// structurally malformed (e.g. missing a name). Fails fast before any
	// retrieval begins.
	ErrInvalidIngredient = errors.New("ingredient record is missing a name")

	// ErrEmptyIngredientList is returned when a plan is requested with no
	// ingredients at all.
	ErrEmptyIngredientList = errors.New("ingredient list is empty")

	// ErrExtractionFailure is returned when the ingredient-extraction
	// collaborator fails or returns an unusable response.
	ErrExtractionFailure = errors.New("ingredient extraction failed")

	// ErrCatalogUnavailable is returned when a catalog snapshot cannot be
	// loaded from the configured sources.
	ErrCatalogUnavailable = errors.New("catalog snapshot unavailable")

	// ErrCacheMiss is returned when a plan is not found in cache.
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when an external collaborator's rate limit
	// is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")
)
