package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"

	"github.com/Mr-Dark-debug/gf2div/internal/database"
	"github.com/Mr-Dark-debug/gf2div/internal/report"
	"github.com/Mr-Dark-debug/gf2div/internal/validation"
	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

// DivideResponse is the body of a successful /api/divide call.
type DivideResponse struct {
	Summary *report.Summary `json:"summary"`
	Trace   gf2.Trace       `json:"trace"`
}

// MultiplyResponse is the body of a successful /api/multiply call.
type MultiplyResponse struct {
	A       string `json:"a"`
	B       string `json:"b"`
	Product string `json:"product"`
}

// ErrorResponse carries a failure. Field is set for validation errors.
type ErrorResponse struct {
	Field   validation.Field `json:"field,omitempty"`
	Message string           `json:"message"`
}

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/divide", s.counted(s.handleDivide))
	mux.HandleFunc("/api/multiply", s.counted(s.handleMultiply))
	mux.HandleFunc("/api/history", s.counted(s.handleHistory))
	mux.HandleFunc("/api/metrics", s.handleAPIMetrics)
	mux.HandleFunc("/metrics", s.handleMetrics)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return mux
}

func (s *Server) counted(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.metrics.Requests, 1)
		if r.Method != http.MethodGet {
			s.writeJSON(w, http.StatusMethodNotAllowed, ErrorResponse{Message: "method not allowed"})
			return
		}
		h(w, r)
	}
}

func (s *Server) handleDivide(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dividend, divisor, err := validation.Parse(q.Get("dividend"), q.Get("divisor"))
	if err == nil {
		err = s.checkSize(validation.FieldDividend, dividend)
	}
	if err == nil {
		err = s.checkSize(validation.FieldDivisor, divisor)
	}
	if err != nil {
		s.badRequest(w, err)
		return
	}

	t := gf2.Generate(dividend, divisor)
	atomic.AddInt64(&s.metrics.Divisions, 1)
	s.record(database.NewDivision(t, database.SourceServer))

	s.writeJSON(w, http.StatusOK, DivideResponse{Summary: report.Summarize(t), Trace: t})
}

func (s *Server) handleMultiply(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	a, err := validation.ValidateBits("a", q.Get("a"))
	if err != nil {
		s.badRequest(w, err)
		return
	}
	b, err := validation.ValidateBits("b", q.Get("b"))
	if err != nil {
		s.badRequest(w, err)
		return
	}
	if a.Len() > s.config.MaxBits || b.Len() > s.config.MaxBits {
		s.badRequest(w, fmt.Errorf("factors are limited to %d bits", s.config.MaxBits))
		return
	}

	atomic.AddInt64(&s.metrics.Multiplications, 1)
	s.writeJSON(w, http.StatusOK, MultiplyResponse{
		A:       a.String(),
		B:       b.String(),
		Product: gf2.Multiply(a, b).String(),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{Message: "history is disabled"})
		return
	}

	q := r.URL.Query()
	filter := database.DivisionFilter{Limit: 20}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.badRequest(w, fmt.Errorf("limit must be a positive integer, got %q", v))
			return
		}
		filter.Limit = n
	}
	if v := q.Get("divisor"); v != "" {
		filter.Divisor = &v
	}

	divs, err := s.store.QueryDivisions(filter)
	if err != nil {
		s.log.Error("querying history", "err", err)
		atomic.AddInt64(&s.metrics.ErrorCount, 1)
		s.writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: "history query failed"})
		return
	}
	if divs == nil {
		divs = []*database.Division{}
	}
	s.writeJSON(w, http.StatusOK, divs)
}

// handleMetrics serves the Prometheus text format.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	m := s.Metrics()
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	counter := func(name, help string, v int64) {
		fmt.Fprintf(w, "# HELP %s %s\n", name, help)
		fmt.Fprintf(w, "# TYPE %s counter\n", name)
		fmt.Fprintf(w, "%s %d\n", name, v)
	}
	counter("gf2div_requests_total", "Total API requests", m.Requests)
	counter("gf2div_divisions_total", "Total divisions computed", m.Divisions)
	counter("gf2div_multiplications_total", "Total multiplications computed", m.Multiplications)
	counter("gf2div_validation_errors_total", "Total rejected inputs", m.ValidationErrors)
	counter("gf2div_recorded_total", "Total divisions written to history", m.Recorded)
	counter("gf2div_errors_total", "Total internal errors", m.ErrorCount)
	counter("gf2div_batches_committed_total", "Total history batches committed", m.BatchesCommitted)
	fmt.Fprintf(w, "# HELP gf2div_uptime_seconds Uptime in seconds\n")
	fmt.Fprintf(w, "# TYPE gf2div_uptime_seconds gauge\n")
	fmt.Fprintf(w, "gf2div_uptime_seconds %d\n", m.Uptime)
}

func (s *Server) handleAPIMetrics(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Metrics())
}

func (s *Server) checkSize(field validation.Field, b gf2.Bits) error {
	if b.Len() > s.config.MaxBits {
		return &validation.FieldError{
			Field:   field,
			Message: fmt.Sprintf("at most %d bits are accepted", s.config.MaxBits),
		}
	}
	return nil
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	atomic.AddInt64(&s.metrics.ValidationErrors, 1)
	resp := ErrorResponse{Message: err.Error()}
	var ferr *validation.FieldError
	if errors.As(err, &ferr) {
		resp.Field = ferr.Field
		resp.Message = ferr.Message
	}
	s.writeJSON(w, http.StatusBadRequest, resp)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Debug("encoding response", "status", status, "err", err)
	}
}
