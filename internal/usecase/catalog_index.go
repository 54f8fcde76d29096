package usecase

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mealcart/backend/internal/domain"
)

// Package-level compiled regex patterns for performance
var (
	// Underscores count as separators, so "garam_masala" normalizes the
	// same as "garam masala".
	punctuationRegex    = regexp.MustCompile(`[^\w\s]|_`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)

	// Matches quantity prefixes like "2 lbs", "1.5 cups", "500 g"
	quantityPattern = regexp.MustCompile(`\b\d+\.?\d*\s*(?:fl\s*oz|oz|ml|liters?|l|lbs?|pounds?|kg|grams?|g|cups?|tbsp|tsp|ct|count|pieces?|cloves?|bunch(?:es)?)?\b`)
)

// NormalizationStatus reports how an ingredient name resolved to a category.
type NormalizationStatus string

const (
	NormDirect    NormalizationStatus = "direct"
	NormSynonym   NormalizationStatus = "synonym"
	NormFallback  NormalizationStatus = "substring_fallback"
	NormAmbiguous NormalizationStatus = "ambiguous"
)

// CatalogIndex holds the immutable per-run product snapshot grouped by
// normalized category, partitioned by store. Safe for concurrent reads.
type CatalogIndex struct {
	rules      *Rules
	byCategory map[string][]domain.ProductCandidate
	categories []string // sorted keys, for the substring fallback
}

// NewCatalogIndex groups a candidate snapshot by category, preserving the
// catalog's insertion order within each category.
func NewCatalogIndex(rules *Rules, candidates []domain.ProductCandidate) *CatalogIndex {
	byCategory := make(map[string][]domain.ProductCandidate)
	for _, c := range candidates {
		key := normalizeToken(c.Category)
		if key == "" {
			continue
		}
		byCategory[key] = append(byCategory[key], c)
	}

	categories := make([]string, 0, len(byCategory))
	for key := range byCategory {
		categories = append(categories, key)
	}
	sort.Strings(categories)

	return &CatalogIndex{
		rules:      rules,
		byCategory: byCategory,
		categories: categories,
	}
}

// Normalize maps a free-form ingredient name to a canonical category key.
// Pipeline: case-fold, strip punctuation/quantities/qualifiers, check the
// synonym table, then direct category match, then a substring fallback
// against known category keys before reporting the name as ambiguous.
func (idx *CatalogIndex) Normalize(name string) (string, NormalizationStatus) {
	cleaned := normalizeToken(name)
	if cleaned == "" {
		return "", NormAmbiguous
	}

	// Synonyms first: the table maps full phrases ("chicken thighs") before
	// qualifier stripping can mangle them.
	if key, ok := idx.rules.synonyms[cleaned]; ok {
		return key, NormSynonym
	}

	stripped := idx.stripQualifiers(cleaned)
	if stripped == "" {
		stripped = cleaned
	}

	if key, ok := idx.rules.synonyms[stripped]; ok {
		return key, NormSynonym
	}
	if _, ok := idx.byCategory[stripped]; ok {
		return stripped, NormDirect
	}

	// Singularize a trailing plural before falling back.
	if singular := strings.TrimSuffix(stripped, "s"); singular != stripped {
		if key, ok := idx.rules.synonyms[singular]; ok {
			return key, NormSynonym
		}
		if _, ok := idx.byCategory[singular]; ok {
			return singular, NormDirect
		}
	}

	// Substring fallback: the first known category key contained in the
	// name, or containing it, in sorted key order for determinism.
	for _, key := range idx.categories {
		if strings.Contains(stripped, key) || strings.Contains(key, stripped) {
			return key, NormFallback
		}
	}

	return stripped, NormAmbiguous
}

// Retrieve returns up to maxCandidates products for the ingredient name,
// deduplicated by product ID, in catalog-stable order. Unknown categories
// return an empty slice, never an error.
func (idx *CatalogIndex) Retrieve(name string, maxCandidates int) []domain.ProductCandidate {
	key, status := idx.Normalize(name)
	if status == NormAmbiguous {
		return nil
	}
	return idx.RetrieveByKey(key, maxCandidates)
}

// RetrieveByKey is Retrieve for an already-normalized category key.
func (idx *CatalogIndex) RetrieveByKey(key string, maxCandidates int) []domain.ProductCandidate {
	pool, ok := idx.byCategory[key]
	if !ok {
		return nil
	}

	seen := make(map[string]bool, len(pool))
	out := make([]domain.ProductCandidate, 0, len(pool))
	for _, c := range pool {
		if seen[c.ProductID] {
			continue
		}
		seen[c.ProductID] = true
		out = append(out, c)
		if maxCandidates > 0 && len(out) >= maxCandidates {
			break
		}
	}
	return out
}

// CountByStore tallies candidates per store name, for trace summaries.
func CountByStore(candidates []domain.ProductCandidate) map[string]int {
	counts := make(map[string]int)
	for _, c := range candidates {
		counts[c.StoreName]++
	}
	return counts
}

// Categories returns the known category keys in sorted order.
func (idx *CatalogIndex) Categories() []string {
	return idx.categories
}

// Size returns the total number of indexed candidates.
func (idx *CatalogIndex) Size() int {
	total := 0
	for _, pool := range idx.byCategory {
		total += len(pool)
	}
	return total
}

// StoreSummary tallies the full snapshot per store name.
func (idx *CatalogIndex) StoreSummary() map[string]int {
	counts := make(map[string]int)
	for _, pool := range idx.byCategory {
		for _, c := range pool {
			counts[c.StoreName]++
		}
	}
	return counts
}

// stripQualifiers drops quantity and qualifier tokens from a cleaned name.
func (idx *CatalogIndex) stripQualifiers(cleaned string) string {
	cleaned = quantityPattern.ReplaceAllString(cleaned, " ")

	words := strings.Fields(cleaned)
	kept := make([]string, 0, len(words))
	for _, word := range words {
		if idx.rules.qualifierTokens[word] {
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

// normalizeToken lowercases, strips punctuation and collapses whitespace.
func normalizeToken(s string) string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(s), " ")
	cleaned = multipleSpacesRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// containsWord reports whether normalized text contains the keyword as a
// substring. Both sides are expected to be already lowercased.
func containsWord(text, keyword string) bool {
	return strings.Contains(text, keyword)
}
