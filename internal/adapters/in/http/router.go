package http

import (
	"fmt"
	"log/slog"

	"orderflow/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving server, the OpenAPI validation
// in front of it and the Swagger UI at /swagger/.
func NewRouter(server *Server, logger *slog.Logger) (*echo.Echo, error) {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return nil, err
	}

	if err = registerSwaggerDoc(swagger); err != nil {
		return nil, fmt.Errorf("register swagger doc: %w", err)
	}

	validator, err := OpenAPIValidator(swagger)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewErrorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(RequestLogger(logger))
	e.Use(validator)

	e.GET("/swagger/*", echoSwagger.WrapHandler)
	servers.RegisterHandlers(e, server)

	return e, nil
}
