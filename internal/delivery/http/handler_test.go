package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mealcart/backend/config"
	"github.com/mealcart/backend/internal/domain"
	"github.com/mealcart/backend/internal/usecase"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// stubExtractor returns a fixed ingredient list or error.
type stubExtractor struct {
	ingredients []domain.Ingredient
	err         error
}

func (s *stubExtractor) ExtractIngredients(_ context.Context, _ string) ([]domain.Ingredient, error) {
	return s.ingredients, s.err
}

// stubSource returns a fixed candidate set or error.
type stubSource struct {
	candidates []domain.ProductCandidate
	err        error
}

func (s *stubSource) Load() ([]domain.ProductCandidate, error) {
	return s.candidates, s.err
}

func handlerCatalog() []domain.ProductCandidate {
	return []domain.ProductCandidate{
		{
			ProductID: "wm-oni-1", SourceStoreID: usecase.StoreIDWalmart, StoreName: "Walmart",
			Category: "onion", Title: "Yellow Onions 3 lb Bag",
			Price: 2.48, Size: domain.Measure{Value: 48, Unit: "oz"},
			StoreType: domain.StorePrimary,
		},
		{
			ProductID: "wm-tom-1", SourceStoreID: usecase.StoreIDWalmart, StoreName: "Walmart",
			Category: "tomato", Title: "Roma Tomatoes",
			Price: 1.98, Size: domain.Measure{Value: 16, Unit: "oz"},
			StoreType: domain.StorePrimary,
		},
	}
}

func newTestRouter(extractor domain.IngredientExtractor, source domain.CatalogSource) (*gin.Engine, *usecase.PlannerService) {
	rules := usecase.DefaultRules()
	planner := usecase.NewPlannerService(rules,
		usecase.NewCatalogIndex(rules, handlerCatalog()), nil, usecase.PlannerConfig{})
	handler := NewHandler(planner, extractor, source, rules)

	cfg := &config.Config{}
	cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	return SetupRouter(cfg, handler), planner
}

func doRequest(router *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	router, _ := newTestRouter(&stubExtractor{}, &stubSource{})

	w := doRequest(router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" || body["service"] != "mealcart-backend" {
		t.Errorf("body = %v", body)
	}
}

func TestPlanIngredients(t *testing.T) {
	router, _ := newTestRouter(&stubExtractor{}, &stubSource{})

	t.Run("valid request returns a plan", func(t *testing.T) {
		payload := []byte(`{"ingredients":[{"name":"onion"},{"name":"tomato"}]}`)
		w := doRequest(router, http.MethodPost, "/api/v1/plan/ingredients", payload)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var plan domain.ShoppingPlan
		if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(plan.Selections) != 2 {
			t.Errorf("len(Selections) = %d, want 2", len(plan.Selections))
		}
		if plan.Split.TotalStoresNeeded != 1 {
			t.Errorf("TotalStoresNeeded = %d, want 1", plan.Split.TotalStoresNeeded)
		}
	})

	t.Run("missing body is a bad request", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/plan/ingredients", []byte(`{}`))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("empty ingredient list is a bad request", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/plan/ingredients", []byte(`{"ingredients":[]}`))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("blank ingredient name is a bad request", func(t *testing.T) {
		w := doRequest(router, http.MethodPost, "/api/v1/plan/ingredients", []byte(`{"ingredients":[{"name":" "}]}`))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}

func TestPlanMeal(t *testing.T) {
	t.Run("extraction feeds the planner", func(t *testing.T) {
		extractor := &stubExtractor{ingredients: []domain.Ingredient{{Name: "onion"}}}
		router, _ := newTestRouter(extractor, &stubSource{})

		w := doRequest(router, http.MethodPost, "/api/v1/plan", []byte(`{"mealText":"onion soup"}`))
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}

		var plan domain.ShoppingPlan
		if err := json.Unmarshal(w.Body.Bytes(), &plan); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(plan.Selections) != 1 || plan.Selections[0].Product.ProductID != "wm-oni-1" {
			t.Errorf("plan = %+v", plan.Selections)
		}
	})

	t.Run("missing meal text is a bad request", func(t *testing.T) {
		router, _ := newTestRouter(&stubExtractor{}, &stubSource{})
		w := doRequest(router, http.MethodPost, "/api/v1/plan", []byte(`{}`))
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("extraction failure maps to bad gateway", func(t *testing.T) {
		extractor := &stubExtractor{err: domain.ErrExtractionFailure}
		router, _ := newTestRouter(extractor, &stubSource{})

		w := doRequest(router, http.MethodPost, "/api/v1/plan", []byte(`{"mealText":"anything"}`))
		if w.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", w.Code)
		}
	})

	t.Run("extraction rate limit maps to 429", func(t *testing.T) {
		extractor := &stubExtractor{err: domain.ErrRateLimited}
		router, _ := newTestRouter(extractor, &stubSource{})

		w := doRequest(router, http.MethodPost, "/api/v1/plan", []byte(`{"mealText":"anything"}`))
		if w.Code != http.StatusTooManyRequests {
			t.Errorf("status = %d, want 429", w.Code)
		}
	})
}

func TestListStores(t *testing.T) {
	router, _ := newTestRouter(&stubExtractor{}, &stubSource{})

	w := doRequest(router, http.MethodGet, "/api/v1/catalog/stores", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body struct {
		TotalProducts int `json:"totalProducts"`
		Categories    int `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.TotalProducts != 2 || body.Categories != 2 {
		t.Errorf("body = %+v, want 2 products in 2 categories", body)
	}
}

func TestReloadCatalog(t *testing.T) {
	t.Run("swaps in the fresh snapshot", func(t *testing.T) {
		source := &stubSource{candidates: handlerCatalog()[:1]}
		router, planner := newTestRouter(&stubExtractor{}, source)

		w := doRequest(router, http.MethodPost, "/api/v1/catalog/reload", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
		}
		if planner.Catalog().Size() != 1 {
			t.Errorf("catalog size after reload = %d, want 1", planner.Catalog().Size())
		}
	})

	t.Run("load failure keeps the old snapshot", func(t *testing.T) {
		source := &stubSource{err: errors.New("disk gone")}
		router, planner := newTestRouter(&stubExtractor{}, source)

		w := doRequest(router, http.MethodPost, "/api/v1/catalog/reload", nil)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
		if planner.Catalog().Size() != 2 {
			t.Errorf("catalog size = %d, want untouched 2", planner.Catalog().Size())
		}
	})
}
