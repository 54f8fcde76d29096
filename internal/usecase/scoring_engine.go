package usecase

import (
	"math"
	"sort"

	"github.com/mealcart/backend/internal/domain"
)

// Scoring constants. Each component contributes a bounded signed value;
// the total is the plain sum of all seven components.
const (
	basePriceMax   = 10.0 // base component at price zero
	basePriceScale = 5.0  // dollars at which base halves
	ewgOrganicBonus    = 8.0
	ewgBeneficialBonus = 2.0
	formMismatchPenalty = 1.5
	unitValueMax        = 3.0
	outlierThreshold    = 2.0 // multiple of pool median that triggers the penalty
	outlierBasePenalty  = 3.0
	outlierSlope        = 2.0

	scoreEpsilon = 1e-9
)

// ScoringEngine ranks a considered pool with a weighted multi-component
// score. The same pool, ingredient and preferences always produce the same
// ranking: ties resolve by organic flag, then unit price, then store
// priority, then insertion order.
type ScoringEngine struct {
	rules *Rules
}

// NewScoringEngine creates a scoring engine over the given rule snapshot.
func NewScoringEngine(rules *Rules) *ScoringEngine {
	return &ScoringEngine{rules: rules}
}

// Score computes a breakdown for every considered candidate and returns
// them sorted descending by total. Every component appears in every
// breakdown, including zero contributions.
func (e *ScoringEngine) Score(
	considered []domain.ProductCandidate,
	category string,
	form string,
	prefs domain.Preferences,
) []domain.ScoredCandidate {
	if len(considered) == 0 {
		return nil
	}
	prefs = prefs.Normalized()

	medianPrice := medianOf(prices(considered))
	minUPP, maxUPP := unitPriceRange(considered)

	scored := make([]domain.ScoredCandidate, 0, len(considered))
	for _, c := range considered {
		breakdown := domain.ScoreBreakdown{
			domain.ComponentBase:           e.baseScore(c, prefs),
			domain.ComponentEWG:            e.ewgScore(c, category, prefs),
			domain.ComponentFormFit:        e.formFitScore(c, category, form),
			domain.ComponentPackaging:      e.packagingScore(c, prefs),
			domain.ComponentDelivery:       e.deliveryScore(c, prefs),
			domain.ComponentUnitValue:      e.unitValueScore(c, minUPP, maxUPP, prefs),
			domain.ComponentOutlierPenalty: e.outlierPenalty(c, medianPrice),
		}
		scored = append(scored, domain.ScoredCandidate{
			Candidate: c,
			Breakdown: breakdown,
			Total:     breakdown.Total(),
		})
	}

	e.rank(scored)
	return scored
}

// rank sorts descending by total; exact ties fall through the documented
// tie-break chain. SliceStable preserves insertion order as the last level.
func (e *ScoringEngine) rank(scored []domain.ScoredCandidate) {
	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if math.Abs(a.Total-b.Total) > scoreEpsilon {
			return a.Total > b.Total
		}
		if a.Candidate.Organic != b.Candidate.Organic {
			return a.Candidate.Organic
		}
		aUPP, aOK := UnitPricePerOunce(a.Candidate)
		bUPP, bOK := UnitPricePerOunce(b.Candidate)
		if aOK && bOK && math.Abs(aUPP-bUPP) > scoreEpsilon {
			return aUPP < bUPP
		}
		aPri := e.rules.StorePriority(a.Candidate.SourceStoreID)
		bPri := e.rules.StorePriority(b.Candidate.SourceStoreID)
		if aPri != bPri {
			return aPri < bPri
		}
		return false
	})
}

// baseScore is a bounded inverse of absolute price: cheaper scores higher.
func (e *ScoringEngine) baseScore(c domain.ProductCandidate, prefs domain.Preferences) float64 {
	raw := basePriceMax / (1.0 + c.Price/basePriceScale)
	return round2(raw * prefs.BudgetWeight)
}

// ewgScore rewards organic certification on pesticide-risk categories.
func (e *ScoringEngine) ewgScore(c domain.ProductCandidate, category string, prefs domain.Preferences) float64 {
	if !c.Organic {
		return 0
	}
	switch e.rules.EWGTierFor(category) {
	case EWGRequiresOrganic:
		return round2(ewgOrganicBonus * prefs.HealthWeight)
	case EWGBeneficial:
		return round2(ewgBeneficialBonus * prefs.HealthWeight)
	default:
		return 0
	}
}

// formFitScore is 0 when the candidate matches the requested form or the
// category has no form rules; a small graded penalty otherwise. The hard
// incompatibilities were already removed by the constraint filter.
func (e *ScoringEngine) formFitScore(c domain.ProductCandidate, category, form string) float64 {
	form = normalizeToken(form)
	if form == "" || !e.rules.HasFormConstraints(category) {
		return 0
	}
	if containsWord(normalizeToken(c.Title), form) {
		return 0
	}
	return -formMismatchPenalty
}

// packagingScore maps packaging text through the sustainability lookup,
// centered on the neutral score so unknown packaging contributes zero.
func (e *ScoringEngine) packagingScore(c domain.ProductCandidate, prefs domain.Preferences) float64 {
	raw := e.rules.PackagingScore(c.Packaging) - e.rules.PackagingNeutral()
	return round2(raw * prefs.PackagingWeight)
}

// deliveryScore reflects the store's logistics fit for the urgency.
func (e *ScoringEngine) deliveryScore(c domain.ProductCandidate, prefs domain.Preferences) float64 {
	return e.rules.DeliveryScore(c.SourceStoreID, prefs.Urgency)
}

// unitValueScore rewards per-ounce value relative to the considered pool,
// independent of absolute price: the best unit price in the pool earns the
// full bonus, the worst earns zero.
func (e *ScoringEngine) unitValueScore(c domain.ProductCandidate, minUPP, maxUPP float64, prefs domain.Preferences) float64 {
	upp, ok := UnitPricePerOunce(c)
	if !ok {
		return 0
	}
	if maxUPP-minUPP < scoreEpsilon {
		return round2(unitValueMax / 2 * prefs.BudgetWeight)
	}
	raw := unitValueMax * (maxUPP - upp) / (maxUPP - minUPP)
	return round2(raw * prefs.BudgetWeight)
}

// outlierPenalty is strictly negative when price exceeds the outlier
// threshold times the pool median, growing with the overshoot. Outliers
// stay in the ranked pool; this is a soft penalty, not an exclusion.
func (e *ScoringEngine) outlierPenalty(c domain.ProductCandidate, medianPrice float64) float64 {
	if medianPrice <= 0 {
		return 0
	}
	ratio := c.Price / medianPrice
	if ratio <= outlierThreshold {
		return 0
	}
	return round2(-(outlierBasePenalty + outlierSlope*(ratio-outlierThreshold)))
}

func prices(candidates []domain.ProductCandidate) []float64 {
	out := make([]float64, len(candidates))
	for i, c := range candidates {
		out[i] = c.Price
	}
	return out
}

func unitPriceRange(candidates []domain.ProductCandidate) (minUPP, maxUPP float64) {
	first := true
	for _, c := range candidates {
		upp, ok := UnitPricePerOunce(c)
		if !ok {
			continue
		}
		if first {
			minUPP, maxUPP = upp, upp
			first = false
			continue
		}
		if upp < minUPP {
			minUPP = upp
		}
		if upp > maxUPP {
			maxUPP = upp
		}
	}
	return minUPP, maxUPP
}

// medianOf returns the median of a value slice without mutating the input.
func medianOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

// round2 keeps contributions at two decimals so traces stay readable and
// totals stay exactly recomputable from the breakdown.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
