package usecase

import (
	"fmt"
	"math"
	"sort"

	"github.com/mealcart/backend/internal/domain"
)

const maxDrivers = 3

// TraceBuilder derives the per-ingredient decision trace from the filter
// and scoring outputs: winner, runner-up, margin, drivers, tradeoffs and
// elimination reasons.
type TraceBuilder struct {
	rules *Rules
}

// NewTraceBuilder creates a trace builder over the given rule snapshot.
func NewTraceBuilder(rules *Rules) *TraceBuilder {
	return &TraceBuilder{rules: rules}
}

// Build assembles the complete trace for one ingredient. An empty ranked
// pool still produces a full trace with the appropriate status; it never
// fails.
func (b *TraceBuilder) Build(
	ing domain.Ingredient,
	queryKey string,
	normStatus NormalizationStatus,
	retrieved []domain.ProductCandidate,
	ranked []domain.ScoredCandidate,
	rejected []domain.RejectedCandidate,
) domain.DecisionTrace {
	trace := domain.DecisionTrace{
		Ingredient:        ing.Name,
		QueryKey:          queryKey,
		Status:            traceStatus(normStatus, len(retrieved), len(ranked)),
		RetrievedSummary:  CountByStore(retrieved),
		ConsideredSummary: consideredByStore(ranked),
		Candidates:        b.candidateTraces(ranked, rejected),
	}

	if len(ranked) == 0 {
		trace.ReasonLine = emptyReasonLine(trace.Status)
		return trace
	}

	winner := ranked[0]
	winnerTotal := winner.Total
	trace.WinnerScore = &winnerTotal

	if len(ranked) > 1 {
		runnerUpTotal := ranked[1].Total
		margin := round2(winnerTotal - runnerUpTotal)
		trace.RunnerUpScore = &runnerUpTotal
		trace.ScoreMargin = &margin
		trace.Drivers = b.drivers(winner.Breakdown, ranked[1].Breakdown)
	} else {
		trace.Drivers = b.drivers(winner.Breakdown, componentMedians(ranked))
	}

	trace.TradeoffsAccepted = b.tradeoffs(winner)
	trace.ReasonLine = b.reasonLine(trace.Drivers, len(ranked))
	return trace
}

// candidateTraces renders ranked candidates (winner, runner-up, the rest as
// considered) followed by every rejection with its reason and stage.
func (b *TraceBuilder) candidateTraces(
	ranked []domain.ScoredCandidate,
	rejected []domain.RejectedCandidate,
) []domain.CandidateTrace {
	traces := make([]domain.CandidateTrace, 0, len(ranked)+len(rejected))

	for i, sc := range ranked {
		role := domain.RoleConsidered
		switch i {
		case 0:
			role = domain.RoleWinner
		case 1:
			role = domain.RoleRunnerUp
		}
		total := sc.Total
		traces = append(traces, domain.CandidateTrace{
			Role:      role,
			ProductID: sc.Candidate.ProductID,
			StoreName: sc.Candidate.StoreName,
			Title:     sc.Candidate.Title,
			Brand:     sc.Candidate.Brand,
			Price:     sc.Candidate.Price,
			Breakdown: sc.Breakdown.Clone(),
			Total:     &total,
		})
	}

	for _, rej := range rejected {
		traces = append(traces, domain.CandidateTrace{
			Role:                   domain.RoleFilteredOut,
			ProductID:              rej.Candidate.ProductID,
			StoreName:              rej.Candidate.StoreName,
			Title:                  rej.Candidate.Title,
			Brand:                  rej.Candidate.Brand,
			Price:                  rej.Candidate.Price,
			EliminationReason:      rej.Reason,
			EliminationStage:       rej.Stage,
			EliminationExplanation: rej.Explanation,
		})
	}

	return traces
}

// drivers keeps the positive per-component deltas of the winner against the
// reference breakdown, sorted descending by magnitude, top three only.
func (b *TraceBuilder) drivers(winner, reference domain.ScoreBreakdown) []domain.Driver {
	drivers := make([]domain.Driver, 0, len(domain.ScoreComponents))
	for _, component := range domain.ScoreComponents {
		delta := round2(winner[component] - reference[component])
		if delta <= 0 {
			continue
		}
		drivers = append(drivers, domain.Driver{
			Component: component,
			Rule:      b.ruleText(component),
			Delta:     delta,
		})
	}

	sort.SliceStable(drivers, func(i, j int) bool {
		return math.Abs(drivers[i].Delta) > math.Abs(drivers[j].Delta)
	})

	if len(drivers) > maxDrivers {
		drivers = drivers[:maxDrivers]
	}
	return drivers
}

// tradeoffs renders every negative component on the winner's breakdown as
// a human-readable accepted downside.
func (b *TraceBuilder) tradeoffs(winner domain.ScoredCandidate) []string {
	var out []string
	for _, component := range domain.ScoreComponents {
		value := winner.Breakdown[component]
		if value >= 0 {
			continue
		}
		out = append(out, b.tradeoffText(component, winner))
	}
	return out
}

// reasonLine is the top driver's rule text with its delta; it changes
// whenever the driving factor changes.
func (b *TraceBuilder) reasonLine(drivers []domain.Driver, poolSize int) string {
	if len(drivers) == 0 {
		if poolSize == 1 {
			return "Only available candidate"
		}
		return fmt.Sprintf("Best overall score among %d candidates", poolSize)
	}
	top := drivers[0]
	return fmt.Sprintf("%s: %+.1f", top.Rule, top.Delta)
}

// ruleText names the driver rule for a component.
func (b *TraceBuilder) ruleText(component domain.ScoreComponent) string {
	switch component {
	case domain.ComponentBase:
		return "Lower shelf price"
	case domain.ComponentEWG:
		return "Organic (EWG Dirty Dozen)"
	case domain.ComponentFormFit:
		return "Better form match"
	case domain.ComponentPackaging:
		return "More sustainable packaging"
	case domain.ComponentDelivery:
		return "Faster delivery fit"
	case domain.ComponentUnitValue:
		return "Better per-ounce value"
	case domain.ComponentOutlierPenalty:
		return "Avoids price outlier"
	default:
		return string(component)
	}
}

// tradeoffText renders a negative winner component as an accepted tradeoff.
func (b *TraceBuilder) tradeoffText(component domain.ScoreComponent, winner domain.ScoredCandidate) string {
	switch component {
	case domain.ComponentFormFit:
		return "Imperfect form match accepted"
	case domain.ComponentPackaging:
		if winner.Candidate.Organic && winner.Breakdown[domain.ComponentEWG] > 0 {
			return "Less sustainable packaging accepted for organic certification"
		}
		return "Less sustainable packaging accepted"
	case domain.ComponentDelivery:
		return "Slower delivery accepted"
	case domain.ComponentUnitValue:
		return "Weaker per-ounce value accepted"
	case domain.ComponentOutlierPenalty:
		return "Price well above category median accepted"
	case domain.ComponentBase:
		if winner.Candidate.Organic && winner.Breakdown[domain.ComponentEWG] > 0 {
			return "Higher price accepted for organic certification"
		}
		return "Higher price accepted"
	default:
		return fmt.Sprintf("Lower %s score accepted", component)
	}
}

// componentMedians builds the per-component median breakdown of the whole
// considered pool, the reference when no runner-up exists.
func componentMedians(ranked []domain.ScoredCandidate) domain.ScoreBreakdown {
	medians := make(domain.ScoreBreakdown, len(domain.ScoreComponents))
	for _, component := range domain.ScoreComponents {
		values := make([]float64, 0, len(ranked))
		for _, sc := range ranked {
			values = append(values, sc.Breakdown[component])
		}
		medians[component] = medianOf(values)
	}
	return medians
}

func consideredByStore(ranked []domain.ScoredCandidate) map[string]int {
	counts := make(map[string]int)
	for _, sc := range ranked {
		counts[sc.Candidate.StoreName]++
	}
	return counts
}

func traceStatus(normStatus NormalizationStatus, retrieved, considered int) domain.TraceStatus {
	switch {
	case normStatus == NormAmbiguous:
		return domain.TraceStatusAmbiguousQuery
	case retrieved == 0:
		return domain.TraceStatusNoCandidates
	case considered == 0:
		return domain.TraceStatusAllFiltered
	default:
		return domain.TraceStatusOK
	}
}

func emptyReasonLine(status domain.TraceStatus) string {
	switch status {
	case domain.TraceStatusAmbiguousQuery:
		return "Ingredient name did not map to any known category"
	case domain.TraceStatusAllFiltered:
		return "All retrieved candidates were rejected by constraints"
	default:
		return "No candidates found in any store catalog"
	}
}
