package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/mealcart/backend/internal/domain"
)

// PlannerConfig holds configuration for the planner service.
type PlannerConfig struct {
	MaxCandidates      int
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// PlannerService runs the full pipeline per planning request: retrieval,
// filtering, scoring, trace building, then store split. The catalog
// snapshot is immutable; concurrent requests share it without coordination.
type PlannerService struct {
	catalog       atomic.Pointer[CatalogIndex]
	rules         *Rules
	filter        *ConstraintFilter
	scorer        *ScoringEngine
	tracer        *TraceBuilder
	splitter      *StoreSplitPlanner
	cache         domain.PlanCache
	cacheTTL      time.Duration
	maxCandidates int
	debug         bool
}

// NewPlannerService wires the engine components over a shared rule snapshot
// and an initial catalog index.
func NewPlannerService(rules *Rules, index *CatalogIndex, cache domain.PlanCache, config PlannerConfig) *PlannerService {
	maxCandidates := config.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = 25
	}
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 1 * time.Hour
	}

	s := &PlannerService{
		rules:         rules,
		filter:        NewConstraintFilter(rules),
		scorer:        NewScoringEngine(rules),
		tracer:        NewTraceBuilder(rules),
		splitter:      NewStoreSplitPlanner(rules),
		cache:         cache,
		cacheTTL:      cacheTTL,
		maxCandidates: maxCandidates,
		debug:         config.EnableDebugLogging,
	}
	s.catalog.Store(index)
	return s
}

// SwapCatalog atomically replaces the catalog snapshot. In-flight requests
// keep the snapshot they started with.
func (s *PlannerService) SwapCatalog(index *CatalogIndex) {
	s.catalog.Store(index)
	log.Printf("[PLAN] catalog snapshot swapped: %d products, %d categories",
		index.Size(), len(index.Categories()))
}

// Catalog returns the current snapshot.
func (s *PlannerService) Catalog() *CatalogIndex {
	return s.catalog.Load()
}

// PlanMeal builds a complete shopping plan for an ingredient list. It
// always returns a full plan with unavailable ingredients marked; errors
// are reserved for malformed input and cancellation.
func (s *PlannerService) PlanMeal(
	ctx context.Context,
	ingredients []domain.Ingredient,
	prefs domain.Preferences,
) (*domain.ShoppingPlan, error) {
	if len(ingredients) == 0 {
		return nil, domain.ErrEmptyIngredientList
	}
	// Fail fast on malformed records before any retrieval begins.
	for i, ing := range ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return nil, fmt.Errorf("%w: index %d", domain.ErrInvalidIngredient, i)
		}
	}
	prefs = prefs.Normalized()

	cacheKey := s.cacheKey(ingredients, prefs)
	if cached := s.getCachedPlan(ctx, cacheKey); cached != nil {
		cached.Source = "cache"
		return cached, nil
	}

	index := s.catalog.Load()

	plan := &domain.ShoppingPlan{
		PlanID:    uuid.NewString(),
		Urgency:   prefs.Urgency,
		Source:    "engine",
		CreatedAt: time.Now().UTC(),
	}
	var unavailableNames []string

	for _, ing := range ingredients {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		selection, trace := s.planIngredient(index, ing, prefs)
		if selection != nil {
			plan.Selections = append(plan.Selections, *selection)
			continue
		}
		plan.Unavailable = append(plan.Unavailable, trace)
		unavailableNames = append(unavailableNames, ing.Name)
		if trace.Status == domain.TraceStatusAmbiguousQuery {
			log.Printf("[PLAN] ambiguous ingredient %q (query key %q); flag for catalog coverage review",
				ing.Name, trace.QueryKey)
		}
	}

	plan.Split = s.splitter.Plan(plan.Selections, unavailableNames, prefs.Urgency)

	s.setCachedPlan(ctx, cacheKey, plan)
	return plan, nil
}

// planIngredient runs retrieve → filter → score → trace for one ingredient.
// A nil selection means the ingredient is unavailable; the trace is always
// complete either way.
func (s *PlannerService) planIngredient(
	index *CatalogIndex,
	ing domain.Ingredient,
	prefs domain.Preferences,
) (*domain.Selection, domain.DecisionTrace) {
	queryKey, normStatus := index.Normalize(ing.Name)

	var retrieved []domain.ProductCandidate
	if normStatus != NormAmbiguous {
		retrieved = index.RetrieveByKey(queryKey, s.maxCandidates)
	}

	considered, rejected := s.filter.Filter(retrieved, queryKey, ing.Form)
	ranked := s.scorer.Score(considered, queryKey, ing.Form, prefs)
	trace := s.tracer.Build(ing, queryKey, normStatus, retrieved, ranked, rejected)

	if s.debug {
		log.Printf("[PLAN] %q -> key=%q status=%s retrieved=%d considered=%d rejected=%d",
			ing.Name, queryKey, trace.Status, len(retrieved), len(ranked), len(rejected))
	}

	if len(ranked) == 0 {
		return nil, trace
	}

	winner := ranked[0].Candidate
	packages := PackagesToBuy(ing, winner)
	return &domain.Selection{
		Ingredient:       ing,
		Product:          winner,
		PackagesToBuy:    packages,
		PurchaseQuantity: PurchaseQuantity(packages, winner),
		ReasonLine:       trace.ReasonLine,
		Trace:            trace,
	}, trace
}

// cacheKey normalizes the ingredient list and preferences into a stable
// key: order-insensitive over ingredients, sensitive to forms, quantities,
// optionality and weights.
func (s *PlannerService) cacheKey(ingredients []domain.Ingredient, prefs domain.Preferences) string {
	parts := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		parts = append(parts, fmt.Sprintf("%s|%s|%g|%s|%t",
			normalizeToken(ing.Name), normalizeToken(ing.Form), ing.Quantity, normalizeToken(ing.Unit), ing.Optional))
	}
	sort.Strings(parts)
	return fmt.Sprintf("plan:%s:%g:%g:%g:%s",
		prefs.Urgency, prefs.BudgetWeight, prefs.HealthWeight, prefs.PackagingWeight,
		strings.Join(parts, ";"))
}

func (s *PlannerService) getCachedPlan(ctx context.Context, key string) *domain.ShoppingPlan {
	if s.cache == nil {
		return nil
	}
	payload, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}
	var plan domain.ShoppingPlan
	if err := json.Unmarshal(payload, &plan); err != nil {
		log.Printf("[PLAN] discarding malformed cached plan for key %q: %v", key, err)
		return nil
	}
	return &plan
}

func (s *PlannerService) setCachedPlan(ctx context.Context, key string, plan *domain.ShoppingPlan) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(plan)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil && s.debug {
		log.Printf("[PLAN] failed to cache plan: %v", err)
	}
}
