package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"promptforge/internal/config"
	"promptforge/internal/deepseek"
	"promptforge/internal/node"
)

const (
	maxBodyBytes        = 1 << 20 // 1 MiB
	shutdownGracePeriod = 10 * time.Second
	readTimeout         = 30 * time.Second
	idleTimeout         = 120 * time.Second
)

// Node executions block for up to the upstream 90s window, so the write
// timeout has to sit above it.
const writeTimeout = config.DefaultRequestTimeout + 15*time.Second

// Server hosts registered nodes over HTTP: discovery plus execution.
type Server struct {
	cfg      config.Config
	registry *node.Registry
	app      *echo.Echo
	address  string
}

// New constructs an HTTP server wired with routing and middleware.
func New(cfg config.Config, registry *node.Registry) (*Server, error) {
	if registry == nil {
		return nil, errors.New("registry must not be nil")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogLatency: true,
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Int64("latency_ms", v.Latency.Milliseconds()).
				Err(v.Error).
				Msg("request")
			return nil
		},
	}))
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'; form-action 'none'",
	}))

	srv := &Server{
		cfg:      cfg,
		registry: registry,
		app:      e,
		address:  fmt.Sprintf(":%d", cfg.Server.Port),
	}

	srv.registerRoutes()

	return srv, nil
}

// Run starts the HTTP server and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	log.Info().Str("addr", s.address).Msg("starting node host")

	httpServer := &http.Server{
		Addr:         s.address,
		Handler:      s.app,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.app.StartServer(httpServer); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
		defer cancel()
		if err := s.app.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		log.Info().Msg("server shutdown complete")
		return nil
	case err := <-errCh:
		return err
	}
}

func (s *Server) registerRoutes() {
	s.app.GET("/health", s.handleHealth)
	s.app.GET("/v1/nodes", s.handleListNodes)
	s.app.GET("/v1/nodes/:id", s.handleGetNode)
	s.app.POST("/v1/nodes/:id/execute", s.handleExecuteNode)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListNodes(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"nodes": s.registry.List()})
}

func (s *Server) handleGetNode(c echo.Context) error {
	n, err := s.registry.Lookup(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return c.JSON(http.StatusOK, n.Spec())
}

type executeRequest struct {
	Inputs node.Inputs `json:"inputs"`
}

type executeResponse struct {
	Node         string       `json:"node"`
	InvocationID string       `json:"invocation_id"`
	Outputs      node.Outputs `json:"outputs"`
}

func (s *Server) handleExecuteNode(c echo.Context) error {
	n, err := s.registry.Lookup(c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}

	var req executeRequest
	if err := decodeRequestBody(c, &req); err != nil {
		return err
	}

	invocationID := uuid.New().String()
	log.Info().
		Str("node", n.Spec().ID).
		Str("invocation_id", invocationID).
		Msg("node execution requested")

	outputs, err := n.Execute(c.Request().Context(), req.Inputs)
	if err != nil {
		log.Error().
			Str("node", n.Spec().ID).
			Str("invocation_id", invocationID).
			Err(err).
			Msg("node execution failed")
		return toHTTPError(err)
	}

	return c.JSON(http.StatusOK, executeResponse{
		Node:         n.Spec().ID,
		InvocationID: invocationID,
		Outputs:      outputs,
	})
}

func decodeRequestBody[T any](c echo.Context, target *T) error {
	req := c.Request()
	defer req.Body.Close()

	req.Body = http.MaxBytesReader(c.Response(), req.Body, maxBodyBytes)

	decoder := json.NewDecoder(req.Body)
	if err := decoder.Decode(target); err != nil {
		if errors.Is(err, io.EOF) {
			return requestError{
				Status:  http.StatusBadRequest,
				Message: "request body is required",
				Type:    "invalid_request_error",
			}
		}
		return requestError{
			Status:  http.StatusBadRequest,
			Message: fmt.Sprintf("invalid JSON payload: %v", err),
			Type:    "invalid_request_error",
		}
	}

	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return requestError{
			Status:  http.StatusBadRequest,
			Message: "request body must contain a single JSON object",
			Type:    "invalid_request_error",
		}
	}
	return nil
}

type requestError struct {
	Status  int
	Message string
	Type    string
	Code    string
}

func (e requestError) Error() string {
	return e.Message
}

type errorBody struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code,omitempty"`
	} `json:"error"`
}

func writeError(c echo.Context, status int, message, errType, code string) error {
	var payload errorBody
	payload.Error.Message = message
	payload.Error.Type = errType
	payload.Error.Code = code
	return c.JSON(status, payload)
}

func errorHandler(err error, c echo.Context) {
	var reqErr requestError
	if errors.As(err, &reqErr) {
		_ = writeError(c, reqErr.Status, reqErr.Message, reqErr.Type, reqErr.Code)
		return
	}

	type httpError interface {
		Code() int
		Error() string
	}

	if he, ok := err.(httpError); ok {
		_ = writeError(c, he.Code(), he.Error(), "invalid_request_error", "")
		return
	}

	_ = writeError(c, http.StatusInternalServerError, "internal server error", "server_error", "")
}

func toHTTPError(err error) error {
	var reqErr requestError
	if errors.As(err, &reqErr) {
		return reqErr
	}

	if errors.Is(err, node.ErrUnknownNode) {
		return requestError{
			Status:  http.StatusNotFound,
			Message: err.Error(),
			Type:    "invalid_request_error",
		}
	}
	if errors.Is(err, node.ErrInvalidInput) {
		return requestError{
			Status:  http.StatusBadRequest,
			Message: err.Error(),
			Type:    "invalid_request_error",
		}
	}

	var remoteErr *deepseek.RemoteError
	if errors.As(err, &remoteErr) {
		return requestError{
			Status:  http.StatusBadGateway,
			Message: remoteErr.Error(),
			Type:    "upstream_error",
		}
	}

	var transportErr *deepseek.TransportError
	if errors.As(err, &transportErr) {
		status := http.StatusBadGateway
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			status = http.StatusGatewayTimeout
		}
		return requestError{
			Status:  status,
			Message: transportErr.Error(),
			Type:    "upstream_error",
		}
	}

	var parseErr *deepseek.ParseError
	if errors.As(err, &parseErr) {
		return requestError{
			Status:  http.StatusBadGateway,
			Message: parseErr.Error(),
			Type:    "upstream_error",
		}
	}

	return requestError{
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
		Type:    "server_error",
	}
}
