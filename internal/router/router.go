package router

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	"campushub/internal/auth"
	"campushub/internal/config"
	"campushub/internal/handler"
	"campushub/internal/metrics"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	gate *auth.Gate,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	postHandler *handler.PostHandler,
	exchangeHandler *handler.ExchangeHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.LogAttrs(c.Request().Context(), slog.LevelInfo, "request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("request_id", v.RequestID),
			)
			return nil
		},
	}))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1")

	// Public routes
	api.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Welcome to the CampusHub API"})
	})
	api.POST("/users", userHandler.RegisterUser)
	api.POST("/auth/login", authHandler.Login)

	// Secured routes (require a bearer token)
	secured := api.Group("", auth.Middleware(gate))

	secured.POST("/auth/logout", authHandler.Logout)

	// User routes
	secured.GET("/users", userHandler.ListUsers)
	secured.GET("/users/me", userHandler.Me)
	secured.GET("/users/:id", userHandler.GetUser)
	secured.PUT("/users/:id", userHandler.UpdateUser)
	secured.PATCH("/users/:id", userHandler.UpdateUser)
	secured.DELETE("/users/:id", userHandler.DeleteUser)

	// Post routes
	secured.POST("/posts", postHandler.CreatePost)
	secured.GET("/posts", postHandler.ListPosts)
	secured.GET("/posts/:id", postHandler.GetPost)
	secured.PUT("/posts/:id", postHandler.UpdatePost)
	secured.PATCH("/posts/:id", postHandler.UpdatePost)
	secured.DELETE("/posts/:id", postHandler.DeletePost)
	secured.POST("/posts/:id/comments", postHandler.CreateComment)
	secured.GET("/posts/:id/comments", postHandler.ListComments)
	secured.DELETE("/posts/:id/comments/:comment_id", postHandler.DeleteComment)

	// Exchange routes
	secured.POST("/exchanges", exchangeHandler.CreateItem)
	secured.GET("/exchanges", exchangeHandler.ListItems)
	secured.GET("/exchanges/:id", exchangeHandler.GetItem)
	secured.PUT("/exchanges/:id", exchangeHandler.UpdateItem)
	secured.PATCH("/exchanges/:id", exchangeHandler.UpdateItem)
	secured.DELETE("/exchanges/:id", exchangeHandler.DeleteItem)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
