package domain

// EliminationReason is the closed set of reasons a candidate can be rejected.
type EliminationReason string

const (
	ReasonFormIncompatible EliminationReason = "FORM_INCOMPATIBLE"
	ReasonStoreEnforcement EliminationReason = "STORE_ENFORCEMENT"
	ReasonBrandBlacklisted EliminationReason = "BRAND_BLACKLISTED"
	// ReasonPriceOutlier is defined for trace consumers even though outliers
	// are currently soft-penalized in scoring rather than hard-dropped.
	ReasonPriceOutlier EliminationReason = "PRICE_OUTLIER"
)

// FilterStage identifies which pipeline stage rejected a candidate.
type FilterStage string

const (
	StageFormCompatibility FilterStage = "form_compatibility"
	StageStoreEnforcement  FilterStage = "store_enforcement"
	StageScoring           FilterStage = "scoring"
)

// RejectedCandidate carries a rejected candidate together with the specific
// reason and the stage that rejected it. Explanation is always non-empty.
type RejectedCandidate struct {
	Candidate   ProductCandidate  `json:"candidate"`
	Reason      EliminationReason `json:"reason"`
	Stage       FilterStage       `json:"stage"`
	Explanation string            `json:"explanation"`
}

// CandidateRole tags a candidate's position in a decision trace.
type CandidateRole string

const (
	RoleWinner      CandidateRole = "winner"
	RoleRunnerUp    CandidateRole = "runner_up"
	RoleConsidered  CandidateRole = "considered"
	RoleFilteredOut CandidateRole = "filtered_out"
)

// TraceStatus records how the pipeline ended for one ingredient.
type TraceStatus string

const (
	TraceStatusOK             TraceStatus = "ok"
	TraceStatusNoCandidates   TraceStatus = "no_candidates"
	TraceStatusAllFiltered    TraceStatus = "all_filtered"
	TraceStatusAmbiguousQuery TraceStatus = "ambiguous_query"
)

// CandidateTrace is one candidate's entry in a decision trace: either a
// scored candidate with its breakdown, or a rejected one with its
// elimination reason.
type CandidateTrace struct {
	Role      CandidateRole `json:"role"`
	ProductID string        `json:"productId"`
	StoreName string        `json:"storeName"`
	Title     string        `json:"title"`
	Brand     string        `json:"brand,omitempty"`
	Price     float64       `json:"price"`

	Breakdown ScoreBreakdown `json:"breakdown,omitempty"`
	Total     *float64       `json:"total,omitempty"`

	EliminationReason      EliminationReason `json:"eliminationReason,omitempty"`
	EliminationStage       FilterStage       `json:"eliminationStage,omitempty"`
	EliminationExplanation string            `json:"eliminationExplanation,omitempty"`
}

// Driver is one scoring component whose delta explains the winner's lead.
type Driver struct {
	Component ScoreComponent `json:"component"`
	Rule      string         `json:"rule"`
	Delta     float64        `json:"delta"`
}

// DecisionTrace is the full per-ingredient explanation record. Built fresh
// per planning run and never mutated after construction.
type DecisionTrace struct {
	Ingredient        string           `json:"ingredient"`
	QueryKey          string           `json:"queryKey"`
	Status            TraceStatus      `json:"status"`
	RetrievedSummary  map[string]int   `json:"retrievedSummary"`
	ConsideredSummary map[string]int   `json:"consideredSummary"`
	Candidates        []CandidateTrace `json:"candidates"`
	WinnerScore       *float64         `json:"winnerScore,omitempty"`
	RunnerUpScore     *float64         `json:"runnerUpScore,omitempty"`
	ScoreMargin       *float64         `json:"scoreMargin,omitempty"`
	Drivers           []Driver         `json:"drivers,omitempty"`
	TradeoffsAccepted []string         `json:"tradeoffsAccepted,omitempty"`
	ReasonLine        string           `json:"reasonLine"`
}
