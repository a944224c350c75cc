package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/enrollhub/enrollment-api/internal/api/middleware"
	"github.com/enrollhub/enrollment-api/internal/core/domain"
	"github.com/enrollhub/enrollment-api/internal/core/ports"
)

// NewsHandler serves portal announcements. Listing is public; creation is
// admin-gated in the route table.
type NewsHandler struct {
	news ports.NewsService
}

func NewNewsHandler(news ports.NewsService) *NewsHandler {
	return &NewsHandler{news: news}
}

type createNewsRequest struct {
	Title    string     `json:"title" validate:"required,min=3"`
	Body     string     `json:"body" validate:"required"`
	Category string     `json:"category" validate:"required"`
	StartsAt *time.Time `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at"`
}

// List returns the currently active announcements.
//
// @Summary      List active news
// @Tags         news
// @Produce      json
// @Success      200  {array}  domain.NewsItem
// @Router       /news [get]
func (h *NewsHandler) List(c echo.Context) error {
	items, err := h.news.ListActive(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Get returns one announcement by id.
//
// @Summary      Get a news item
// @Tags         news
// @Produce      json
// @Param        id   path      string  true  "News item ID"
// @Success      200  {object}  domain.NewsItem
// @Failure      404  {object}  map[string]string
// @Router       /news/{id} [get]
func (h *NewsHandler) Get(c echo.Context) error {
	item, err := h.news.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, item)
}

// Create publishes a new announcement.
//
// @Summary      Create a news item
// @Tags         news
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNewsRequest  true  "News item"
// @Success      201   {object}  domain.NewsItem
// @Failure      403   {object}  map[string]string
// @Router       /news [post]
func (h *NewsHandler) Create(c echo.Context) error {
	user, ok := middleware.Identity(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
	}

	var req createNewsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item := &domain.NewsItem{
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		Published: true,
		CreatedBy: user.ID,
	}
	if req.StartsAt != nil {
		item.StartsAt = *req.StartsAt
	}
	if req.EndsAt != nil {
		item.EndsAt = *req.EndsAt
	}

	created, err := h.news.Create(c.Request().Context(), item)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}
