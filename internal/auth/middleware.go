package auth

import (
	"errors"
	"log/slog"
	"net/http"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "campushub/internal/errors"
)

// PrincipalContextKey is where Middleware stores the *Principal.
const PrincipalContextKey = "principal"

const identityErrorKey = "auth.identity_error"

// Middleware requires an "Authorization: Bearer <token>" header and resolves
// it through the gate. A missing or malformed header and a token the gate
// rejects all answer 401. A failure to load the identity answers 500.
func Middleware(gate *Gate) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  PrincipalContextKey,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			p, err := gate.Authenticate(c.Request().Context(), token)
			if err != nil && !errors.Is(err, apperrors.ErrUnauthenticated) {
				c.Set(identityErrorKey, err)
			}
			return p, err
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if lookupErr, ok := c.Get(identityErrorKey).(error); ok {
				slog.ErrorContext(c.Request().Context(), "authenticate request", "error", lookupErr)
				return echo.NewHTTPError(http.StatusInternalServerError, apperrors.MapErrorToHTTP(lookupErr).ToErrorResponse())
			}
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
			return echo.NewHTTPError(http.StatusUnauthorized, apperrors.ErrorResponse{
				Error: apperrors.ErrUnauthenticated.Error(),
				Code:  "UNAUTHENTICATED",
			})
		},
	})
}

// PrincipalFrom returns the authenticated principal stored by Middleware.
func PrincipalFrom(c echo.Context) (*Principal, bool) {
	p, ok := c.Get(PrincipalContextKey).(*Principal)
	return p, ok && p != nil && p.User != nil
}
