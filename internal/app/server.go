package app

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/avoshchina/tutorhub/internal/controller/handlers"
)

// Server hosts the HTTP API.
type Server struct {
	app  *echo.Echo
	addr string
}

func NewServer(addr string, h *handlers.Handlers, requestLogs bool) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Pre(middleware.RemoveTrailingSlash())
	if requestLogs {
		e.Use(middleware.Logger())
	}
	e.Use(middleware.Recover())

	e.HTTPErrorHandler = h.HTTPErrorHandler
	e.Validator = handlers.NewValidator()

	h.Register(e)

	return &Server{app: e, addr: addr}
}

// Start blocks until the listener stops.
func (s *Server) Start() error {
	err := s.app.Start(s.addr)
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}
