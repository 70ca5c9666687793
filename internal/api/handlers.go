package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/loglumen/loglumen-server/internal/aggregate"
	"github.com/loglumen/loglumen-server/internal/core"
	"github.com/loglumen/loglumen-server/internal/ingest"
	"github.com/loglumen/loglumen-server/pkg/logger"
)

// IngestResponse is the per-batch accept/reject summary returned to agents.
// The status and received fields predate the per-item summary and are kept
// for older agent builds that only check those.
type IngestResponse struct {
	Status     string             `json:"status" example:"success"`
	Received   int                `json:"received" example:"500"`
	Accepted   int                `json:"accepted" example:"499"`
	Rejected   int                `json:"rejected" example:"1"`
	Rejections []ingest.Rejection `json:"rejections,omitempty"`
}

// HealthResponse represents the health check payload.
type HealthResponse struct {
	Status      string `json:"status" example:"healthy"`
	Service     string `json:"service" example:"loglumen-server"`
	Uptime      string `json:"uptime" example:"1h2m3s"`
	TotalEvents uint64 `json:"total_events" example:"12500"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Server owns the ingestion pipeline, event store, and aggregation engine,
// and exposes them over HTTP. It is an explicit context object rather than
// package globals so tests can construct isolated instances.
type Server struct {
	pipeline  *ingest.Pipeline
	store     core.EventSink
	engine    *aggregate.Engine
	startTime time.Time
}

// NewServer creates an API server over the given components.
func NewServer(pipeline *ingest.Pipeline, store core.EventSink, engine *aggregate.Engine) *Server {
	return &Server{
		pipeline:  pipeline,
		store:     store,
		engine:    engine,
		startTime: time.Now(),
	}
}

// RegisterRoutes attaches all API routes to the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/events", s.HandleEvents)
	mux.HandleFunc("/api/events/", s.HandleHostEvents)
	mux.HandleFunc("/api/stats", s.HandleStats)
	mux.HandleFunc("/health", s.HandleHealth)
}

// writeJSONResponse writes a JSON response with the given status code
func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Errorf("Failed to encode JSON response: %v", err)
	}
}

// writeErrorResponse writes an error response
func writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// HandleEvents handles the /api/events endpoint: POST ingests a batch of
// event records, GET returns all currently retained events.
//
//	@Summary		Ingest an event batch
//	@Description	Accept a JSON array of event records (or a single object) from an agent. Records are validated independently; the response identifies each rejected item and its reason.
//	@Tags			events
//	@Accept			json
//	@Produce		json
//	@Param			events	body		[]core.Event	true	"Event records"
//	@Success		200		{object}	IngestResponse	"Per-item accept/reject summary"
//	@Failure		400		{object}	ErrorResponse	"Malformed JSON body"
//	@Failure		405		{object}	ErrorResponse	"Method not allowed"
//	@Router			/api/events [post]
func (s *Server) HandleEvents(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleIngest(w, r)
	case http.MethodGet:
		s.handleAllEvents(w, r)
	default:
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Only GET and POST methods are allowed")
	}
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	summary, err := s.pipeline.ProcessBody(r.Context(), body)
	if err != nil {
		if errors.Is(err, ingest.ErrMalformedBody) {
			writeErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Errorf("Failed to process batch: %v", err)
		writeErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSONResponse(w, http.StatusOK, IngestResponse{
		Status:     "success",
		Received:   summary.Received,
		Accepted:   summary.Accepted,
		Rejected:   summary.Rejected,
		Rejections: summary.Rejections,
	})
}

// handleAllEvents returns every retained event across all hosts. Originally
// a debugging aid; kept because dashboards use it during development.
//
//	@Summary		List all retained events
//	@Description	Return every currently retained event across all hosts
//	@Tags			events
//	@Produce		json
//	@Success		200	{array}		core.Event
//	@Failure		405	{object}	ErrorResponse	"Method not allowed"
//	@Router			/api/events [get]
func (s *Server) handleAllEvents(w http.ResponseWriter, r *http.Request) {
	writeJSONResponse(w, http.StatusOK, s.store.AllEvents())
}

// HandleHostEvents handles GET /api/events/{host}, returning the retained
// events for one host in ingestion order. Unknown hosts yield an empty
// array, not an error. The host segment is URL-decoded; the node detail
// page re-sorts by event time client-side.
//
//	@Summary		List events for a host
//	@Description	Return the currently retained events for the given host
//	@Tags			events
//	@Produce		json
//	@Param			host	path		string	true	"Host name (URL-encoded)"
//	@Success		200		{array}		core.Event
//	@Failure		400		{object}	ErrorResponse	"Missing or undecodable host"
//	@Failure		405		{object}	ErrorResponse	"Method not allowed"
//	@Router			/api/events/{host} [get]
func (s *Server) HandleHostEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	encoded := strings.TrimPrefix(r.URL.EscapedPath(), "/api/events/")
	if encoded == "" {
		writeErrorResponse(w, http.StatusBadRequest, "Host name is required")
		return
	}
	host, err := url.PathUnescape(encoded)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Invalid host name: %v", err))
		return
	}

	writeJSONResponse(w, http.StatusOK, s.store.EventsForHost(host))
}

// HandleStats handles GET /api/stats, returning a coherent snapshot of the
// global, per-category, and per-host aggregates for the dashboard.
//
//	@Summary		Get aggregate statistics
//	@Description	Return a consistent point-in-time snapshot of global, per-category, and per-host aggregates
//	@Tags			stats
//	@Produce		json
//	@Success		200	{object}	aggregate.Snapshot
//	@Failure		405	{object}	ErrorResponse	"Method not allowed"
//	@Router			/api/stats [get]
func (s *Server) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	writeJSONResponse(w, http.StatusOK, s.engine.Snapshot())
}

// HandleHealth provides a simple health check endpoint
//
//	@Summary		Health check
//	@Description	Get the health status and basic statistics of the server
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	HealthResponse
//	@Failure		405	{object}	ErrorResponse	"Method not allowed"
//	@Router			/health [get]
func (s *Server) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErrorResponse(w, http.StatusMethodNotAllowed, "Only GET method is allowed")
		return
	}

	writeJSONResponse(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		Service:     "loglumen-server",
		Uptime:      time.Since(s.startTime).Round(time.Second).String(),
		TotalEvents: s.engine.TotalEvents(),
	})
}
