package usecase

import (
	"fmt"
	"strings"

	"github.com/mealcart/backend/internal/domain"
)

// ConstraintFilter narrows a retrieved pool to candidates compatible with
// the requested ingredient form and the store-exclusivity rules. It never
// mutates candidates; it only partitions them.
type ConstraintFilter struct {
	rules *Rules
}

// NewConstraintFilter creates a filter over the given rule snapshot.
func NewConstraintFilter(rules *Rules) *ConstraintFilter {
	return &ConstraintFilter{rules: rules}
}

// Filter applies, in order: form compatibility, private-label store
// enforcement, and per-store brand blacklists. Every rejection carries a
// specific reason code, the stage that produced it, and an explanation.
func (f *ConstraintFilter) Filter(
	candidates []domain.ProductCandidate,
	category string,
	form string,
) (considered []domain.ProductCandidate, rejected []domain.RejectedCandidate) {
	considered = make([]domain.ProductCandidate, 0, len(candidates))

	constraint := f.rules.ConstraintFor(category, normalizeToken(form))

	for _, c := range candidates {
		if reason, explanation := f.checkForm(c, constraint); reason != "" {
			rejected = append(rejected, domain.RejectedCandidate{
				Candidate:   c,
				Reason:      reason,
				Stage:       domain.StageFormCompatibility,
				Explanation: explanation,
			})
			continue
		}
		if reason, explanation := f.checkStore(c); reason != "" {
			rejected = append(rejected, domain.RejectedCandidate{
				Candidate:   c,
				Reason:      reason,
				Stage:       domain.StageStoreEnforcement,
				Explanation: explanation,
			})
			continue
		}
		considered = append(considered, c)
	}

	return considered, rejected
}

// checkForm rejects candidates whose title hits an exclude keyword or
// misses every include keyword, when the category defines constraints.
func (f *ConstraintFilter) checkForm(
	c domain.ProductCandidate,
	constraint *FormConstraint,
) (domain.EliminationReason, string) {
	if constraint == nil {
		return "", ""
	}

	title := normalizeToken(c.Title)

	for _, keyword := range constraint.Exclude {
		if containsWord(title, keyword) {
			return domain.ReasonFormIncompatible,
				fmt.Sprintf("title contains excluded keyword %q", keyword)
		}
	}

	if len(constraint.Include) > 0 {
		for _, keyword := range constraint.Include {
			if containsWord(title, keyword) {
				return "", ""
			}
		}
		return domain.ReasonFormIncompatible,
			fmt.Sprintf("title matches none of the required keywords [%s]",
				strings.Join(constraint.Include, ", "))
	}

	return "", ""
}

// checkStore enforces private-label exclusivity and per-store blacklists.
func (f *ConstraintFilter) checkStore(c domain.ProductCandidate) (domain.EliminationReason, string) {
	if c.Brand != "" {
		if home := f.rules.PrivateLabelStore(c.Brand); home != "" && home != c.SourceStoreID {
			return domain.ReasonStoreEnforcement,
				fmt.Sprintf("private label %q is exclusive to store %q, found in %q",
					c.Brand, home, c.SourceStoreID)
		}
		if f.rules.BrandBlacklisted(c.SourceStoreID, c.Brand) {
			return domain.ReasonBrandBlacklisted,
				fmt.Sprintf("brand %q is blacklisted at store %q", c.Brand, c.SourceStoreID)
		}
	}
	return "", ""
}
