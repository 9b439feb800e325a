package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"sanfeliz/internal/auth"
	"sanfeliz/internal/catalog"
	"sanfeliz/internal/checkout"
	"sanfeliz/internal/insights"
	"sanfeliz/internal/order"
	"sanfeliz/internal/session"

	"github.com/gin-gonic/gin"
)

type fakeProvider struct {
	fail bool
}

func (f *fakeProvider) CreatePreference(ctx context.Context, pref checkout.Preference) (*checkout.PreferenceResult, error) {
	if f.fail {
		return nil, errors.New("provider down")
	}
	return &checkout.PreferenceResult{ID: "pref-1"}, nil
}

func (f *fakeProvider) Forward(ctx context.Context, items json.RawMessage) ([]byte, error) {
	if f.fail {
		return nil, errors.New("provider down")
	}
	return []byte(`{"id":"pref-raw"}`), nil
}

func newTestRouter(t *testing.T, provider *fakeProvider) *gin.Engine {
	t.Helper()
	t.Setenv("JWT_SECRET", "router-test-secret")
	gin.SetMode(gin.TestMode)

	repo := catalog.NewSeededRepository()
	catalogService := catalog.NewService(repo, repo, nil)
	orders := checkout.NewInMemoryRepository()
	checkoutService := checkout.NewService(provider, orders, nil)

	authService := auth.NewService(auth.NewInMemoryAdminRepository())
	if _, err := authService.EnsureAdmin(context.Background(), "admin@sanfeliz.cl", "Password@123"); err != nil {
		t.Fatal(err)
	}

	sessions := session.NewHandler(
		session.NewStore(order.DefaultConfig(), 0),
		catalogService,
		checkoutService,
		"+56967449210",
		"",
	)

	return NewRouter(Deps{
		Catalog:     catalog.NewHandler(catalogService),
		Sessions:    sessions,
		Checkout:    checkout.NewHandler(checkoutService, provider),
		Auth:        auth.NewHandler(authService),
		Insights:    insights.NewHandler(insights.NewService(orders, 0)),
		CORSOrigins: []string{"http://localhost:4321"},
	})
}

func request(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	r := newTestRouter(t, &fakeProvider{})

	w := request(r, http.MethodGet, "/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestPublicCatalogRoutes(t *testing.T) {
	r := newTestRouter(t, &fakeProvider{})

	for _, path := range []string{
		"/categories",
		"/products",
		"/products?category=Saludables",
		"/products/desayuno-romantico-para-2",
		"/catering?type=dulce",
	} {
		if w := request(r, http.MethodGet, path, "", ""); w.Code != http.StatusOK {
			t.Errorf("GET %s: expected 200, got %d", path, w.Code)
		}
	}

	if w := request(r, http.MethodGet, "/products/missing", "", ""); w.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown product, got %d", w.Code)
	}
}

func TestSessionRoutes(t *testing.T) {
	r := newTestRouter(t, &fakeProvider{})

	w := request(r, http.MethodPost, "/sessions", `{"product_id":"4"}`, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var s struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatal(err)
	}

	w = request(r, http.MethodPost, "/sessions/"+s.ID+"/checkout", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCreatePreferencePassThrough(t *testing.T) {
	r := newTestRouter(t, &fakeProvider{})

	w := request(r, http.MethodPost, "/api/create-preference", `{"items":[{"title":"x","quantity":1,"unit_price":100}]}`, "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("pref-raw")) {
		t.Fatalf("unexpected response %d %s", w.Code, w.Body.String())
	}

	failing := newTestRouter(t, &fakeProvider{fail: true})
	w = request(failing, http.MethodPost, "/api/create-preference", `{"items":[]}`, "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Error creating preference") {
		t.Fatalf("unexpected body %s", w.Body.String())
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t, &fakeProvider{})

	if w := request(r, http.MethodGet, "/admin/orders", "", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w := request(r, http.MethodPost, "/auth/login", `{"email":"admin@sanfeliz.cl","password":"Password@123"}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", w.Code, w.Body.String())
	}
	var login struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &login); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"/admin/orders", "/admin/insights"} {
		if w := request(r, http.MethodGet, path, "", login.Token); w.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, w.Code)
		}
	}

	body := `{"name":"Desayuno Campestre","price":25990,"type":"simple"}`
	if w := request(r, http.MethodPost, "/admin/products", body, login.Token); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	if w := request(r, http.MethodPost, "/admin/products", `{"price":-1}`, login.Token); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
