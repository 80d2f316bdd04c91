package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"campushub/internal/model"
	"campushub/internal/service"
)

// ExchangeHandler handles exchange listings.
type ExchangeHandler struct {
	svc service.ExchangeService
}

// NewExchangeHandler creates a new exchange handler.
func NewExchangeHandler(svc service.ExchangeService) *ExchangeHandler {
	return &ExchangeHandler{svc: svc}
}

// ExchangeItemRequest represents a new listing.
type ExchangeItemRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"max=50"`
	Condition   string `json:"condition" validate:"max=20"`
	ImageURLs   string `json:"image_urls" validate:"max=1000"`
}

// CreateItem godoc
// @Summary List an item for exchange
// @Tags exchanges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ExchangeItemRequest true "Listing data"
// @Success 201 {object} model.ExchangeItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /exchanges [post]
func (h *ExchangeHandler) CreateItem(c echo.Context) error {
	owner, err := currentUser(c)
	if err != nil {
		return err
	}
	var req ExchangeItemRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	item, err := h.svc.CreateItem(c.Request().Context(), owner, service.NewExchangeItem{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Condition:   req.Condition,
		ImageURLs:   req.ImageURLs,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// ListItems godoc
// @Summary List exchange items, newest first
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param skip query int false "Offset" default(0)
// @Param limit query int false "Page size" default(100)
// @Success 200 {array} model.ExchangeItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /exchanges [get]
func (h *ExchangeHandler) ListItems(c echo.Context) error {
	page, err := pageQuery(c)
	if err != nil {
		return err
	}
	items, err := h.svc.ListItems(c.Request().Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// GetItem godoc
// @Summary Get an exchange item
// @Tags exchanges
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 200 {object} model.ExchangeItem
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /exchanges/{id} [get]
func (h *ExchangeHandler) GetItem(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	item, err := h.svc.GetItem(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// UpdateItem godoc
// @Summary Update own listing
// @Description Only fields present in the body are changed.
// @Tags exchanges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Param request body model.ExchangeItemPatch true "Fields to change"
// @Success 200 {object} model.ExchangeItem
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /exchanges/{id} [patch]
func (h *ExchangeHandler) UpdateItem(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var p model.ExchangeItemPatch
	if err := bindAndValidate(c, &p); err != nil {
		return err
	}

	item, err := h.svc.UpdateItem(c.Request().Context(), actor, id, p)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete own listing
// @Tags exchanges
// @Security BearerAuth
// @Param id path int true "Item ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /exchanges/{id} [delete]
func (h *ExchangeHandler) DeleteItem(c echo.Context) error {
	actor, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteItem(c.Request().Context(), actor, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
