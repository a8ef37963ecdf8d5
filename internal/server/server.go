// Package server exposes the division generator over HTTP.
//
// Each request computes its trace synchronously. Computed divisions are
// handed to a buffered channel and written to the history store in
// batches, every FlushInterval or BatchSize records, whichever comes
// first:
//
//	Client → HTTP handler → Generate → record chan → flushLoop → Store
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Mr-Dark-debug/gf2div/internal/database"
)

// Metrics tracks request throughput and persistence.
type Metrics struct {
	Requests         int64 `json:"requests"`
	Divisions        int64 `json:"divisions"`
	Multiplications  int64 `json:"multiplications"`
	ValidationErrors int64 `json:"validation_errors"`
	Recorded         int64 `json:"recorded"`
	ErrorCount       int64 `json:"error_count"`
	BatchesCommitted int64 `json:"batches_committed"`
	Uptime           int64 `json:"uptime_seconds"`
}

// Config holds configuration for the HTTP service.
type Config struct {
	// Addr is the TCP address to listen on. Port 0 picks a free port.
	Addr string `json:"addr"`

	// BatchSize is the maximum number of records to batch before flushing.
	BatchSize int `json:"batch_size"`

	// FlushInterval is the maximum time between batch flushes.
	FlushInterval time.Duration `json:"flush_interval"`

	// MaxBits bounds the length of each operand accepted by the API.
	MaxBits int `json:"max_bits"`
}

// DefaultConfig returns sensible defaults for the service.
func DefaultConfig() Config {
	return Config{
		Addr:          "127.0.0.1:8787",
		BatchSize:     100,
		FlushInterval: 500 * time.Millisecond,
		MaxBits:       4096,
	}
}

// Server is the HTTP front end. A nil store disables recording and the
// history endpoint.
type Server struct {
	config  Config
	store   database.Store
	log     *log.Logger
	metrics Metrics

	records chan *database.Division

	// closedMu guards sends on records against Stop closing it while a
	// handler that outlived the shutdown timeout is still recording.
	closedMu sync.RWMutex
	closed   bool

	listener net.Listener
	http     *http.Server
	wg       sync.WaitGroup
	started  time.Time

	stopOnce sync.Once
	done     chan struct{}
}

// New creates a server. Zero-valued config fields take their defaults.
func New(config Config, store database.Store, logger *log.Logger) *Server {
	def := DefaultConfig()
	if config.Addr == "" {
		config.Addr = def.Addr
	}
	if config.BatchSize <= 0 {
		config.BatchSize = def.BatchSize
	}
	if config.FlushInterval <= 0 {
		config.FlushInterval = def.FlushInterval
	}
	if config.MaxBits <= 0 {
		config.MaxBits = def.MaxBits
	}
	if logger == nil {
		logger = log.Default()
	}

	return &Server{
		config:  config,
		store:   store,
		log:     logger,
		records: make(chan *database.Division, config.BatchSize*2),
		started: time.Now(),
		done:    make(chan struct{}),
	}
}

// Start listens on the configured address and serves in the background.
// Cancelling ctx stops the server as Stop does.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.config.Addr, err)
	}
	s.listener = ln
	s.started = time.Now()
	s.http = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.wg.Add(2)
	go s.flushLoop()
	go s.serve(ln)

	go func() {
		select {
		case <-ctx.Done():
			if err := s.Stop(); err != nil {
				s.log.Error("shutdown", "err", err)
			}
		case <-s.done:
		}
	}()

	s.log.Info("listening", "addr", "http://"+ln.Addr().String())
	return nil
}

// Addr returns the bound listener address, or the configured one before
// Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.config.Addr
}

// Done is closed once Stop has completed.
func (s *Server) Done() <-chan struct{} { return s.done }

// Stop shuts the HTTP server down, waits for in-flight requests, and
// flushes buffered records. It is safe to call more than once.
func (s *Server) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		s.log.Info("shutting down")

		if s.http != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = s.http.Shutdown(ctx)
			cancel()
		}

		// Shutdown may time out with handlers still running; they insert
		// directly once records is closed.
		s.closedMu.Lock()
		s.closed = true
		close(s.records)
		s.closedMu.Unlock()
		s.wg.Wait()
		close(s.done)

		s.log.Info("stopped", "recorded", atomic.LoadInt64(&s.metrics.Recorded))
	})
	return err
}

// Metrics returns a snapshot of the current metrics.
func (s *Server) Metrics() Metrics {
	return Metrics{
		Requests:         atomic.LoadInt64(&s.metrics.Requests),
		Divisions:        atomic.LoadInt64(&s.metrics.Divisions),
		Multiplications:  atomic.LoadInt64(&s.metrics.Multiplications),
		ValidationErrors: atomic.LoadInt64(&s.metrics.ValidationErrors),
		Recorded:         atomic.LoadInt64(&s.metrics.Recorded),
		ErrorCount:       atomic.LoadInt64(&s.metrics.ErrorCount),
		BatchesCommitted: atomic.LoadInt64(&s.metrics.BatchesCommitted),
		Uptime:           int64(time.Since(s.started).Seconds()),
	}
}

func (s *Server) serve(ln net.Listener) {
	defer s.wg.Done()
	if err := s.http.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
		s.log.Error("http server", "err", err)
		atomic.AddInt64(&s.metrics.ErrorCount, 1)
	}
}

// record queues d for the history store. When the buffer is full the
// record is written directly so none are dropped.
func (s *Server) record(d *database.Division) {
	if s.store == nil {
		return
	}
	s.closedMu.RLock()
	defer s.closedMu.RUnlock()
	if !s.closed {
		select {
		case s.records <- d:
			return
		default:
		}
	}
	if err := s.store.InsertDivision(d); err != nil {
		s.log.Error("direct insert", "err", err)
		atomic.AddInt64(&s.metrics.ErrorCount, 1)
		return
	}
	atomic.AddInt64(&s.metrics.Recorded, 1)
}

// flushLoop drains the record channel into the store. It commits when
// either BatchSize records accumulate or FlushInterval elapses, and
// flushes whatever is left once the channel is closed.
func (s *Server) flushLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.config.FlushInterval)
	defer ticker.Stop()

	buf := make([]*database.Division, 0, s.config.BatchSize)

	flush := func() {
		if len(buf) == 0 {
			return
		}
		if err := s.store.BatchInsertDivisions(buf); err != nil {
			s.log.Error("flushing history batch", "size", len(buf), "err", err)
			atomic.AddInt64(&s.metrics.ErrorCount, 1)
		} else {
			atomic.AddInt64(&s.metrics.Recorded, int64(len(buf)))
			atomic.AddInt64(&s.metrics.BatchesCommitted, 1)
			s.log.Debug("flushed history batch", "size", len(buf))
		}
		buf = make([]*database.Division, 0, s.config.BatchSize)
	}

	for {
		select {
		case d, ok := <-s.records:
			if !ok {
				flush()
				return
			}
			buf = append(buf, d)
			if len(buf) >= s.config.BatchSize {
				flush()
			}

		case <-ticker.C:
			flush()
		}
	}
}
