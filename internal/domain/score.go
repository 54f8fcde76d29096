package domain

// ScoreComponent names one contribution in a candidate's score breakdown.
type ScoreComponent string

const (
	ComponentBase           ScoreComponent = "base"
	ComponentEWG            ScoreComponent = "ewg"
	ComponentFormFit        ScoreComponent = "form_fit"
	ComponentPackaging      ScoreComponent = "packaging"
	ComponentDelivery       ScoreComponent = "delivery"
	ComponentUnitValue      ScoreComponent = "unit_value"
	ComponentOutlierPenalty ScoreComponent = "outlier_penalty"
)

// ScoreComponents lists every component in canonical order. Every breakdown
// carries all of them, even when a contribution is zero.
var ScoreComponents = []ScoreComponent{
	ComponentBase,
	ComponentEWG,
	ComponentFormFit,
	ComponentPackaging,
	ComponentDelivery,
	ComponentUnitValue,
	ComponentOutlierPenalty,
}

// ScoreBreakdown maps each component to its signed contribution.
// The total score is always recomputable as the sum of the contributions.
type ScoreBreakdown map[ScoreComponent]float64

// Total sums all contributions in the breakdown.
func (b ScoreBreakdown) Total() float64 {
	var total float64
	for _, v := range b {
		total += v
	}
	return total
}

// Clone returns an independent copy of the breakdown.
func (b ScoreBreakdown) Clone() ScoreBreakdown {
	out := make(ScoreBreakdown, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// ScoredCandidate pairs a candidate with its breakdown and cached total.
type ScoredCandidate struct {
	Candidate ProductCandidate `json:"candidate"`
	Breakdown ScoreBreakdown   `json:"breakdown"`
	Total     float64          `json:"total"`
}
