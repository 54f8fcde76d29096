package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mealcart/backend/internal/domain"
	"github.com/mealcart/backend/internal/usecase"
)

// MealPlanner is the planning surface the handler depends on.
type MealPlanner interface {
	PlanMeal(ctx context.Context, ingredients []domain.Ingredient, prefs domain.Preferences) (*domain.ShoppingPlan, error)
	Catalog() *usecase.CatalogIndex
	SwapCatalog(index *usecase.CatalogIndex)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	planner   MealPlanner
	extractor domain.IngredientExtractor
	source    domain.CatalogSource
	rules     *usecase.Rules
}

// NewHandler creates a new HTTP handler
func NewHandler(planner MealPlanner, extractor domain.IngredientExtractor, source domain.CatalogSource, rules *usecase.Rules) *Handler {
	return &Handler{
		planner:   planner,
		extractor: extractor,
		source:    source,
		rules:     rules,
	}
}

// planMealRequest is the free-text planning request body.
type planMealRequest struct {
	MealText    string             `json:"mealText" binding:"required"`
	Preferences domain.Preferences `json:"preferences"`
}

// planIngredientsRequest is the pre-extracted planning request body.
type planIngredientsRequest struct {
	Ingredients []domain.Ingredient `json:"ingredients" binding:"required"`
	Preferences domain.Preferences  `json:"preferences"`
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "mealcart-backend",
		"version": "1.0.0",
	})
}

// PlanMeal handles free-text planning requests: meal text goes through the
// extraction collaborator, then the planning engine.
func (h *Handler) PlanMeal(c *gin.Context) {
	var req planMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mealText is required"})
		return
	}

	ingredients, err := h.extractor.ExtractIngredients(c.Request.Context(), req.MealText)
	if err != nil {
		if errors.Is(err, domain.ErrRateLimited) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "extraction rate limit exceeded"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "ingredient extraction failed"})
		return
	}

	h.plan(c, ingredients, req.Preferences)
}

// PlanIngredients handles planning requests that already carry an
// ingredient list, skipping extraction.
func (h *Handler) PlanIngredients(c *gin.Context) {
	var req planIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredients list is required"})
		return
	}

	h.plan(c, req.Ingredients, req.Preferences)
}

// plan runs the engine and writes the response, recording metrics.
func (h *Handler) plan(c *gin.Context, ingredients []domain.Ingredient, prefs domain.Preferences) {
	start := time.Now()

	result, err := h.planner.PlanMeal(c.Request.Context(), ingredients, prefs)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyIngredientList),
			errors.Is(err, domain.ErrInvalidIngredient):
			plansTotal.WithLabelValues("invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			plansTotal.WithLabelValues("canceled").Inc()
			c.JSON(http.StatusRequestTimeout, gin.H{"error": "request canceled"})
		default:
			plansTotal.WithLabelValues("error").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{"error": "planning failed"})
		}
		return
	}

	plansTotal.WithLabelValues("ok").Inc()
	unavailableTotal.Add(float64(len(result.Split.UnavailableIngredients)))
	planDuration.Observe(time.Since(start).Seconds())

	c.JSON(http.StatusOK, result)
}

// ListStores summarizes the current catalog snapshot per store.
func (h *Handler) ListStores(c *gin.Context) {
	index := h.planner.Catalog()
	c.JSON(http.StatusOK, gin.H{
		"totalProducts": index.Size(),
		"categories":    len(index.Categories()),
		"stores":        index.StoreSummary(),
	})
}

// ReloadCatalog builds a fresh catalog snapshot from the configured sources
// and swaps it in atomically.
func (h *Handler) ReloadCatalog(c *gin.Context) {
	candidates, err := h.source.Load()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog reload failed"})
		return
	}

	index := usecase.NewCatalogIndex(h.rules, candidates)
	h.planner.SwapCatalog(index)

	c.JSON(http.StatusOK, gin.H{
		"totalProducts": index.Size(),
		"categories":    len(index.Categories()),
	})
}
