package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/enrollhub/enrollment-api/internal/core/domain"
)

type stubNewsService struct {
	items []domain.NewsItem
}

func (s *stubNewsService) ListActive(context.Context) ([]domain.NewsItem, error) {
	return s.items, nil
}

func (s *stubNewsService) GetByID(_ context.Context, id string) (*domain.NewsItem, error) {
	for i := range s.items {
		if s.items[i].ID == id {
			return &s.items[i], nil
		}
	}
	return nil, domain.ErrNewsNotFound
}

func (s *stubNewsService) Create(_ context.Context, item *domain.NewsItem) (*domain.NewsItem, error) {
	item.ID = "created-1"
	s.items = append(s.items, *item)
	return item, nil
}

func newNewsFixture() *NewsHandler {
	return NewNewsHandler(&stubNewsService{
		items: []domain.NewsItem{{
			ID:        "abc123",
			Title:     "Admissions open",
			Body:      "Apply before the deadline.",
			Category:  "enrollment",
			Published: true,
			StartsAt:  time.Now().Add(-time.Hour),
			EndsAt:    time.Now().Add(time.Hour),
		}},
	})
}

func TestNewsHandler_List(t *testing.T) {
	h := newNewsFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/news", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var items []domain.NewsItem
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Admissions open" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestNewsHandler_Get(t *testing.T) {
	h := newNewsFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/news/:id")
	c.SetParamNames("id")
	c.SetParamValues("abc123")

	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var item domain.NewsItem
	if err := json.Unmarshal(rec.Body.Bytes(), &item); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if item.ID != "abc123" {
		t.Fatalf("unexpected item: %+v", item)
	}
}

func TestNewsHandler_Get_NotFound(t *testing.T) {
	h := newNewsFixture()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/news/:id")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrNewsNotFound) {
		t.Fatalf("expected ErrNewsNotFound, got %v", err)
	}
}
