// Package api exposes exploration and simplification over HTTP as JSON
// endpoints. The handlers mirror the CLI commands: requests name a
// starting diagram or signature, responses carry canonical signatures.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/skeinlab/skein/pkg/cache"
	skerrors "github.com/skeinlab/skein/pkg/errors"
)

// Server holds the API's shared state.
type Server struct {
	logger      *log.Logger
	cache       cache.Cache
	defaultSize int
	maxList     int
}

// NewServer creates an API server. The cache may be a null cache;
// defaultSize is the exploration crossing cap applied when a request
// does not set one.
func NewServer(logger *log.Logger, c cache.Cache, defaultSize int) *Server {
	if logger == nil {
		logger = log.Default()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if defaultSize <= 0 {
		defaultSize = 8
	}
	return &Server{logger: logger, cache: c, defaultSize: defaultSize, maxList: maxReturnedDiagrams}
}

// Router builds the chi router with all routes registered.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/explore", s.handleExplore)
		r.Post("/simplify", s.handleSimplify)
		r.Post("/info", s.handleInfo)
	})
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorBody is the JSON error envelope.
type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeError maps structured error codes to HTTP statuses and writes the
// error envelope.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := skerrors.GetCode(err)
	status := http.StatusInternalServerError
	switch code {
	case skerrors.ErrCodeInvalidInput, skerrors.ErrCodeInvalidSignature,
		skerrors.ErrCodeInvalidMove, skerrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case skerrors.ErrCodeNotFound, skerrors.ErrCodeDiagramNotFound:
		status = http.StatusNotFound
	case "":
		code = skerrors.ErrCodeInternal
	}

	var body errorBody
	body.Error.Code = string(code)
	body.Error.Message = skerrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return skerrors.Wrap(skerrors.ErrCodeInvalidInput, err, "malformed request body")
	}
	return nil
}
