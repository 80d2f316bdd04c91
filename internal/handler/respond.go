package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"campushub/internal/auth"
	"campushub/internal/errors"
	"campushub/internal/model"
	"campushub/internal/repository"
)

// respondError converts a service error into the JSON error envelope.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	switch httpErr.StatusCode {
	case http.StatusInternalServerError:
		slog.ErrorContext(c.Request().Context(), "request failed",
			"method", c.Request().Method,
			"route", c.Path(),
			"error", err,
		)
	case http.StatusUnauthorized:
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

func badRequest(message, code string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// bindAndValidate decodes the request body into req and runs its validate tags.
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body", "INVALID_REQUEST")
	}
	if err := c.Validate(req); err != nil {
		return badRequest(err.Error(), "VALIDATION_ERROR")
	}
	return nil
}

func parseID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 0)
	if err != nil || id == 0 {
		return 0, badRequest("invalid "+name, "INVALID_ID")
	}
	return uint(id), nil
}

// pageQuery reads ?skip and ?limit.
func pageQuery(c echo.Context) (repository.Page, error) {
	skip, limit := 0, repository.DefaultPageLimit
	err := echo.QueryParamsBinder(c).
		Int("skip", &skip).
		Int("limit", &limit).
		BindError()
	if err != nil {
		return repository.Page{}, badRequest("skip and limit must be integers", "INVALID_QUERY")
	}
	if skip < 0 {
		return repository.Page{}, badRequest("skip must be >= 0", "INVALID_QUERY")
	}
	if limit < 1 || limit > repository.MaxPageLimit {
		return repository.Page{}, badRequest("limit must be between 1 and "+strconv.Itoa(repository.MaxPageLimit), "INVALID_QUERY")
	}
	return repository.Page{Offset: skip, Limit: limit}, nil
}

// currentUser returns the identity the auth middleware resolved.
func currentUser(c echo.Context) (*model.User, error) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		return nil, respondError(c, errors.ErrUnauthenticated)
	}
	return p.User, nil
}
