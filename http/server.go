// Package http exposes the crawler and chat services over HTTP.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/sitechat"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultAddr is the default listen address.
const DefaultAddr = ":5000"

// ShutdownTimeout bounds how long Shutdown waits for open requests.
const ShutdownTimeout = 10 * time.Second

// Server serves the JSON API.
type Server struct {
	server *http.Server
	router chi.Router

	// Addr is the listen address used by ListenAndServe.
	Addr string

	CrawlService sitechat.CrawlService
	ChatService  sitechat.ChatService
	Logger       *slog.Logger
}

// NewServer returns a server with its routes registered.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router: chi.NewRouter(),
		Addr:   DefaultAddr,
	}
	s.server.Handler = s.router

	s.router.Use(middleware.Recoverer)
	s.router.Use(s.logRequests)

	s.router.Route("/api/crawler/websites/{id}", func(r chi.Router) {
		r.Post("/crawl", s.handleCrawl)
		r.Post("/recrawl", s.handleRecrawl)
		r.Post("/stop", s.handleStop)
		r.Get("/status", s.handleStatus)
	})
	s.router.Route("/api/chat", func(r chi.Router) {
		r.Post("/messages", s.handleSendMessage)
		r.Delete("/messages/{id}", s.handleDeleteMessage)
		r.Get("/users/{userId}/history", s.handleHistory)
	})
	s.router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeFailure(w, http.StatusNotFound, "route not found")
	})

	return s
}

// ServeHTTP dispatches to the router.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe listens on Addr until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.server.Addr = s.Addr
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for open requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		defer func(begin time.Time) {
			s.logger().Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"duration", time.Since(begin),
			)
		}(time.Now())
		next.ServeHTTP(ww, r)
	})
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: true, Data: data})
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Success: false, Message: msg})
}

// errorStatus maps application error codes to HTTP status codes.
var errorStatus = map[string]int{
	sitechat.ECONFLICT:     http.StatusConflict,
	sitechat.EINVALID:      http.StatusBadRequest,
	sitechat.ENOTFOUND:     http.StatusNotFound,
	sitechat.EUNAUTHORIZED: http.StatusForbidden,
}

// Error writes err to the response. Internal errors are logged and
// reported with a generic message.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := sitechat.ErrorCode(err), sitechat.ErrorMessage(err)
	status, ok := errorStatus[code]
	if !ok {
		s.logger().Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
		status = http.StatusInternalServerError
		msg = "internal error"
	}
	writeFailure(w, status, msg)
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return sitechat.Errorf(sitechat.EINVALID, "invalid JSON body")
	}
	return nil
}
