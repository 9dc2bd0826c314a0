package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/octobees/estate-listings/api/internal/auth"
	"github.com/octobees/estate-listings/api/internal/config"
	"github.com/octobees/estate-listings/api/internal/dto"
	"github.com/octobees/estate-listings/api/internal/entity"
	"github.com/octobees/estate-listings/api/internal/handler"
	middlewarepkg "github.com/octobees/estate-listings/api/internal/middleware"
	"github.com/octobees/estate-listings/api/internal/repository"
	"github.com/octobees/estate-listings/api/internal/service"
)

type noUsers struct{}

func (noUsers) FindByEmail(context.Context, string) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (noUsers) FindByID(context.Context, uuid.UUID) (*entity.User, error) {
	return nil, repository.ErrUserNotFound
}

func (noUsers) Create(_ context.Context, name, email, _ string) (*entity.User, error) {
	return &entity.User{ID: uuid.New(), Name: name, Email: email}, nil
}

// closedAccounts treats every subject as a live account unless it was removed.
type closedAccounts map[string]bool

func (c closedAccounts) AccountExists(_ context.Context, subject string) (bool, error) {
	return !c[subject], nil
}

type testServer struct {
	e        *echo.Echo
	store    *repository.MemoryPropertyStore
	jwt      *auth.JWTManager
	accounts closedAccounts
}

func newTestServer(t *testing.T, rl config.RateLimitConfig) *testServer {
	t.Helper()
	cfg := &config.Config{APIPrefix: "/api/v1"}
	jwtManager := auth.NewJWTManager("router-secret", time.Hour)
	store := repository.NewMemoryPropertyStore()

	limiter := middlewarepkg.NewRateLimiter(rl, 100)
	t.Cleanup(limiter.Stop)

	accounts := closedAccounts{}
	e := echo.New()
	Register(e, cfg, jwtManager, accounts, limiter, Handlers{
		Auth:       handler.NewAuthHandler(service.NewAuthService(noUsers{}, jwtManager)),
		Properties: handler.NewPropertiesHandler(service.NewPropertiesService(store)),
		Media:      handler.NewMediaHandler(nil),
	})
	return &testServer{e: e, store: store, jwt: jwtManager, accounts: accounts}
}

func (s *testServer) do(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		req = httptest.NewRequest(method, target, bytes.NewReader(raw))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) token(t *testing.T, subject string) string {
	t.Helper()
	token, err := s.jwt.GenerateToken(subject, subject+"@example.com", subject)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

func listingBody(city, purpose string, price float64) map[string]any {
	return map[string]any{
		"title":        fmt.Sprintf("%s %s %.0f", city, purpose, price),
		"description":  "Well kept",
		"propertyType": "Apartment",
		"size":         map[string]any{"value": 5, "unit": "Marla"},
		"price":        price,
		"purpose":      purpose,
		"location":     map[string]any{"city": city, "area": "Gulshan", "address": "Block 13"},
		"bedrooms":     2,
		"bathrooms":    1,
		"images":       []string{"https://img/1.jpg"},
	}
}

func TestRoutes_KarachiRentalsScenario(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})
	owner := srv.token(t, "owner")

	for i := 0; i < 15; i++ {
		rec := srv.do(t, http.MethodPost, "/api/v1/properties", owner, listingBody("Karachi", "Rent", 20000+float64(i)*4000))
		if rec.Code != http.StatusCreated {
			t.Fatalf("seed %d: expected 201, got %d: %s", i, rec.Code, rec.Body.String())
		}
	}
	for _, body := range []map[string]any{
		listingBody("Karachi", "Rent", 90000),
		listingBody("Karachi", "Rent", 5000),
		listingBody("Karachi", "Sale", 50000),
		listingBody("Lahore", "Rent", 50000),
		listingBody("Multan", "Rent", 30000),
	} {
		if rec := srv.do(t, http.MethodPost, "/api/v1/properties", owner, body); rec.Code != http.StatusCreated {
			t.Fatalf("seed outlier: expected 201, got %d", rec.Code)
		}
	}

	rec := srv.do(t, http.MethodGet, "/api/v1/properties?purpose=Rent&city=Karachi&minPrice=20000&maxPrice=80000&page=1&limit=10", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var page dto.PropertyPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode page: %v", err)
	}
	if len(page.Properties) != 10 || page.NumOfPages != 2 || page.TotalProperties != 15 || page.CurrentPage != 1 {
		t.Fatalf("unexpected page: len=%d pages=%d total=%d current=%d", len(page.Properties), page.NumOfPages, page.TotalProperties, page.CurrentPage)
	}
}

func TestRoutes_PaginationWindows(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})
	owner := srv.token(t, "owner")
	for i := 0; i < 25; i++ {
		if rec := srv.do(t, http.MethodPost, "/api/v1/properties", owner, listingBody("Lahore", "Sale", 1000000+float64(i))); rec.Code != http.StatusCreated {
			t.Fatalf("seed %d: expected 201, got %d", i, rec.Code)
		}
	}

	for pageNum, want := range map[int]int{1: 10, 2: 10, 3: 5, 4: 0} {
		rec := srv.do(t, http.MethodGet, fmt.Sprintf("/api/v1/properties?limit=10&page=%d", pageNum), "", nil)
		var page dto.PropertyPage
		if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
			t.Fatalf("decode page: %v", err)
		}
		if len(page.Properties) != want || page.NumOfPages != 3 || page.TotalProperties != 25 {
			t.Fatalf("page %d: got len=%d pages=%d total=%d", pageNum, len(page.Properties), page.NumOfPages, page.TotalProperties)
		}
	}
}

func TestRoutes_OwnershipGuard(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})
	userA := srv.token(t, "user-a")
	userB := srv.token(t, "user-b")

	rec := srv.do(t, http.MethodPost, "/api/v1/properties", userA, listingBody("Karachi", "Rent", 40000))
	var created entity.Property
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	path := "/api/v1/properties/" + created.ID

	if rec := srv.do(t, http.MethodPatch, path, "", map[string]any{"title": "x"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodPatch, path, userB, map[string]any{"title": "x"}); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for other user, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodDelete, path, userB, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 delete for other user, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodDelete, "/api/v1/properties/000000000000000000000000", userB, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for absent record, got %d", rec.Code)
	}

	stored, err := srv.store.FindByID(context.Background(), created.ID)
	if err != nil || stored.Title != created.Title {
		t.Fatalf("record changed by forbidden request: %+v %v", stored, err)
	}

	if rec := srv.do(t, http.MethodGet, "/api/v1/properties/user/properties", userB, nil); rec.Code != http.StatusOK || rec.Body.String() != "[]\n" {
		t.Fatalf("expected empty list for user-b, got %d %q", rec.Code, rec.Body.String())
	}
	if rec := srv.do(t, http.MethodPatch, path, userA, map[string]any{"title": "Updated"}); rec.Code != http.StatusOK {
		t.Fatalf("expected owner update to pass, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodDelete, path, userA, nil); rec.Code != http.StatusOK {
		t.Fatalf("expected owner delete to pass, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, path, "", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestRoutes_Misc(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{Requests: 3, Interval: time.Minute})

	if rec := srv.do(t, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/api/v1/ai/response", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected ai stub 200, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/api/v1/auth/verify", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected verify without token to be 401, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/api/v1/properties", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("expected third request to pass, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/api/v1/properties", "", nil); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected rate limit after budget, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/healthz", "", nil); rec.Code != http.StatusOK {
		t.Fatalf("healthz is outside the limited group, got %d", rec.Code)
	}
}

func TestRoutes_ClosedAccountLosesWriteAccess(t *testing.T) {
	srv := newTestServer(t, config.RateLimitConfig{})
	owner := srv.token(t, "seller")

	rec := srv.do(t, http.MethodPost, "/api/v1/properties", owner, listingBody("Lahore", "Sale", 9000000))
	var created entity.Property
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("create failed: %d %s", rec.Code, rec.Body.String())
	}
	path := "/api/v1/properties/" + created.ID

	srv.accounts["seller"] = true

	if rec := srv.do(t, http.MethodPatch, path, owner, map[string]any{"title": "Still mine"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 patch for closed account, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodDelete, path, owner, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 delete for closed account, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodPost, "/api/v1/properties", owner, listingBody("Lahore", "Sale", 1)); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 create for closed account, got %d", rec.Code)
	}
	if rec := srv.do(t, http.MethodGet, "/api/v1/properties/user/properties", owner, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 listing for closed account, got %d", rec.Code)
	}

	stored, err := srv.store.FindByID(context.Background(), created.ID)
	if err != nil || stored.Title != created.Title {
		t.Fatalf("closed account changed the record: %+v %v", stored, err)
	}
	if rec := srv.do(t, http.MethodGet, path, "", nil); rec.Code != http.StatusOK {
		t.Fatalf("public read should still work, got %d", rec.Code)
	}
}
