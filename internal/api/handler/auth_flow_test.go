package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/enrollhub/enrollment-api/internal/api"
	"github.com/enrollhub/enrollment-api/internal/api/handler"
	"github.com/enrollhub/enrollment-api/internal/api/middleware"
	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/ports"
	"github.com/enrollhub/enrollment-api/internal/core/service"
	"github.com/enrollhub/enrollment-api/internal/pkg/token"
)

// memUserRepo is an in-memory ports.UserRepository for end-to-end flow tests.
type memUserRepo struct {
	nextID int64
	byID   map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, byID: make(map[int64]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == user.Email {
			return nil, domain.ErrEmailTaken
		}
	}
	clone := *user
	clone.ID = r.nextID
	r.nextID++
	stored := clone
	r.byID[stored.ID] = &stored
	return &clone, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

type memNewsService struct {
	items []domain.NewsItem
}

func (s *memNewsService) ListActive(context.Context) ([]domain.NewsItem, error) {
	return s.items, nil
}

func (s *memNewsService) GetByID(_ context.Context, id string) (*domain.NewsItem, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, domain.ErrNewsNotFound
}

func (s *memNewsService) Create(_ context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	item.ID = "news-1"
	s.items = append(s.items, *item)
	return item, nil
}

// newTestServer wires the real auth service, middleware and handlers the same
// way the router does, on top of an in-memory user store.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	codec, err := token.NewCodec("flow-test-secret", "HS256")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	repo := newMemUserRepo()
	authService, err := service.NewAuthService(repo, codec, 30*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}

	e := echo.New()
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())

	authHandler := handler.NewAuthHandler(authService)
	newsHandler := handler.NewNewsHandler(&memNewsService{})
	authn := middleware.Auth(codec, repo, zerolog.Nop())

	e.POST("/auth/signup", authHandler.Signup)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/auth/me", authHandler.Me, authn)
	e.GET("/news", newsHandler.List)
	e.POST("/news", newsHandler.Create, authn, middleware.RequireRole(domain.RoleAdmin))
	e.GET("/centre/dashboard", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, authn, middleware.RequireRole(domain.RoleCentre))

	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodePair(t *testing.T, rec *httptest.ResponseRecorder) ports.TokenPair {
	t.Helper()
	var pair ports.TokenPair
	if err := json.Unmarshal(rec.Body.Bytes(), &pair); err != nil {
		t.Fatalf("invalid token pair json: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" || pair.TokenType != "bearer" {
		t.Fatalf("incomplete token pair: %+v", pair)
	}
	return pair
}

func TestFlow_SignupLoginMeRefreshGate(t *testing.T) {
	e := newTestServer(t)

	// Signup → 201 with access+refresh tokens.
	rec := do(t, e, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","password":"Secret123!","role":"applicant"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	signupPair := decodePair(t, rec)

	// Duplicate signup → 409.
	rec = do(t, e, http.MethodPost, "/auth/signup",
		`{"email":"a@x.com","password":"Other456!","role":"centre"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("duplicate signup: expected 409, got %d", rec.Code)
	}

	// Login with the same credentials → 200 with a new pair.
	rec = do(t, e, http.MethodPost, "/auth/login",
		`{"email":"a@x.com","password":"Secret123!"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	loginPair := decodePair(t, rec)

	// /auth/me with the access token → applicant with unset profile links.
	rec = do(t, e, http.MethodGet, "/auth/me", "", loginPair.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var me map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &me); err != nil {
		t.Fatalf("me: invalid json: %v", err)
	}
	if me["role"] != "applicant" || me["is_active"] != true {
		t.Fatalf("me: unexpected payload: %v", me)
	}
	if me["applicant_id"] != nil || me["center_id"] != nil || me["employee_id"] != nil {
		t.Fatalf("me: profile links must be null: %v", me)
	}

	// Refresh with the refresh token → a new valid pair.
	rec = do(t, e, http.MethodPost, "/auth/refresh", "", signupPair.RefreshToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("refresh: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	refreshed := decodePair(t, rec)
	rec = do(t, e, http.MethodGet, "/auth/me", "", refreshed.AccessToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("me with refreshed token: expected 200, got %d", rec.Code)
	}

	// A centre-gated route rejects the applicant's valid access token.
	rec = do(t, e, http.MethodGet, "/centre/dashboard", "", loginPair.AccessToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("centre gate: expected 403, got %d", rec.Code)
	}

	// An admin-gated write rejects the applicant too.
	rec = do(t, e, http.MethodPost, "/news",
		`{"title":"Admissions open","body":"Apply now","category":"enrollment"}`, loginPair.AccessToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("news create as applicant: expected 403, got %d", rec.Code)
	}
}

func TestFlow_TokenMisuse(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/auth/signup",
		`{"email":"b@x.com","password":"Secret123!","role":"centre"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}
	pair := decodePair(t, rec)

	// Refresh token presented as access token → 401.
	rec = do(t, e, http.MethodGet, "/auth/me", "", pair.RefreshToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("refresh-as-access: expected 401, got %d", rec.Code)
	}

	// Access token presented to the refresh endpoint → 401.
	rec = do(t, e, http.MethodPost, "/auth/refresh", "", pair.AccessToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("access-as-refresh: expected 401, got %d", rec.Code)
	}

	// No token at all → 401.
	rec = do(t, e, http.MethodGet, "/auth/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", rec.Code)
	}
}

func TestFlow_AdminCanPublishNews(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/auth/signup",
		`{"email":"admin@x.com","password":"Secret123!","role":"admin"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d", rec.Code)
	}
	pair := decodePair(t, rec)

	rec = do(t, e, http.MethodPost, "/news",
		`{"title":"Admissions open","body":"Apply now","category":"enrollment"}`, pair.AccessToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("news create as admin: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var item domain.NewsItem
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("invalid news json: %v", err)
	}
	if item.Title != "Admissions open" || item.CreatedBy != 1 || !item.Published {
		t.Fatalf("unexpected news item: %+v", item)
	}
}

func TestFlow_InactiveAccountRejectedEverywhere(t *testing.T) {
	// Build the server pieces directly so the store can be mutated.
	codec, err := token.NewCodec("flow-test-secret", "HS256")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	repo := newMemUserRepo()
	authService, err := service.NewAuthService(repo, codec, 30*time.Minute, 7*24*time.Hour)
	if err != nil {
		t.Fatalf("NewAuthService: %v", err)
	}

	pair, err := authService.Signup(context.Background(), "c@x.com", "Secret123!", domain.RoleApplicant)
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	repo.byID[1].IsActive = false

	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	authn := middleware.Auth(codec, repo, zerolog.Nop())
	authHandler := handler.NewAuthHandler(authService)
	e.GET("/auth/me", authHandler.Me, authn)
	e.POST("/auth/refresh", authHandler.Refresh)

	// A still-valid access token is rejected once the account is disabled.
	rec := do(t, e, http.MethodGet, "/auth/me", "", pair.AccessToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("inactive /me: expected 401, got %d", rec.Code)
	}

	// Refresh with a still-valid refresh token → 401, same as a vanished
	// user; possession of a token proves nothing about the account.
	rec = do(t, e, http.MethodPost, "/auth/refresh", "", pair.RefreshToken)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("inactive refresh: expected 401, got %d", rec.Code)
	}

	// Login with correct credentials → 403, distinct from bad credentials:
	// here the caller did prove password ownership.
	if _, err := authService.Login(context.Background(), "c@x.com", "Secret123!"); !errors.Is(err, domain.ErrAccountInactive) {
		t.Fatalf("expected ErrAccountInactive, got %v", err)
	}
	if _, err := authService.Refresh(context.Background(), pair.RefreshToken); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("refresh inactive: expected ErrInvalidToken, got %v", err)
	}
}
