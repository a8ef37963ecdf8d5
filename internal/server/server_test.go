package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-Dark-debug/gf2div/internal/database"
	"github.com/Mr-Dark-debug/gf2div/internal/validation"
	"github.com/Mr-Dark-debug/gf2div/pkg/gf2"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newStore(t *testing.T) *database.DBService {
	t.Helper()
	store, err := database.NewDBService(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestDivide(t *testing.T) {
	s := New(Config{}, nil, quietLogger())
	rec := get(t, s.Handler(), "/api/divide?dividend=1100110000&divisor=11001")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp DivideResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "100001", resp.Summary.Quotient)
	assert.Equal(t, "1001", resp.Summary.Remainder)
	require.Len(t, resp.Trace.Steps, 7)
	assert.Equal(t, gf2.KindInitial, resp.Trace.Steps[0].Kind)
	assert.True(t, resp.Trace.Steps[6].Terminal())

	assert.Equal(t, int64(1), s.Metrics().Divisions)
}

func TestDivideValidation(t *testing.T) {
	s := New(Config{MaxBits: 8}, nil, quietLogger())

	tests := []struct {
		query string
		field validation.Field
	}{
		{"dividend=&divisor=11", validation.FieldDividend},
		{"dividend=1011&divisor=0110", validation.FieldDivisor},
		{"dividend=10&divisor=1011", validation.FieldDividend},
		{"dividend=1011011011&divisor=11", validation.FieldDividend},
	}
	for _, tc := range tests {
		t.Run(tc.query, func(t *testing.T) {
			rec := get(t, s.Handler(), "/api/divide?"+tc.query)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tc.field, resp.Field)
			assert.NotEmpty(t, resp.Message)
		})
	}
	assert.Equal(t, int64(len(tests)), s.Metrics().ValidationErrors)
	assert.Zero(t, s.Metrics().Divisions)
}

func TestMultiply(t *testing.T) {
	s := New(Config{}, nil, quietLogger())

	rec := get(t, s.Handler(), "/api/multiply?a=11&b=11")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp MultiplyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "101", resp.Product)

	rec = get(t, s.Handler(), "/api/multiply?a=12&b=1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	s := New(Config{}, nil, quietLogger())
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/divide", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHistory(t *testing.T) {
	store := newStore(t)
	for _, in := range [][2]string{{"101", "11"}, {"1101", "1011"}, {"111", "11"}} {
		tr := gf2.Generate(gf2.MustParse(in[0]), gf2.MustParse(in[1]))
		require.NoError(t, store.InsertDivision(database.NewDivision(tr, database.SourceCLI)))
	}
	s := New(Config{}, store, quietLogger())

	rec := get(t, s.Handler(), "/api/history?limit=2")
	require.Equal(t, http.StatusOK, rec.Code)
	var divs []*database.Division
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &divs))
	assert.Len(t, divs, 2)

	rec = get(t, s.Handler(), "/api/history?divisor=11")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &divs))
	assert.Len(t, divs, 2)

	rec = get(t, s.Handler(), "/api/history?limit=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryDisabledWithoutStore(t *testing.T) {
	s := New(Config{}, nil, quietLogger())
	rec := get(t, s.Handler(), "/api/history")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHealthAndMetrics(t *testing.T) {
	s := New(Config{}, nil, quietLogger())
	h := s.Handler()

	rec := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	get(t, h, "/api/divide?dividend=101&divisor=11")

	rec = get(t, h, "/metrics")
	assert.True(t, strings.HasPrefix(rec.Header().Get("Content-Type"), "text/plain"))
	assert.Contains(t, rec.Body.String(), "gf2div_divisions_total 1\n")
	assert.Contains(t, rec.Body.String(), "# TYPE gf2div_uptime_seconds gauge\n")

	rec = get(t, h, "/api/metrics")
	var m Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, int64(1), m.Requests)
}

// TestStartRecordsAndFlushesOnStop runs the real listener and checks
// every computed division reaches the store once the server stops.
func TestStartRecordsAndFlushesOnStop(t *testing.T) {
	store := newStore(t)
	s := New(Config{Addr: "127.0.0.1:0", BatchSize: 4, FlushInterval: time.Hour}, store, quietLogger())
	require.NoError(t, s.Start(context.Background()))

	for i := 0; i < 10; i++ {
		url := fmt.Sprintf("http://%s/api/divide?dividend=%b&divisor=1011", s.Addr(), i+8)
		resp, err := http.Get(url)
		require.NoError(t, err)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop(), "Stop is idempotent")

	n, err := store.CountDivisions()
	require.NoError(t, err)
	assert.Equal(t, 10, n)
	assert.Equal(t, int64(10), s.Metrics().Recorded)

	divs, err := store.QueryDivisions(database.DivisionFilter{})
	require.NoError(t, err)
	for _, d := range divs {
		assert.Equal(t, database.SourceServer, d.Source)
	}
}

func TestContextCancelStops(t *testing.T) {
	s := New(Config{Addr: "127.0.0.1:0"}, newStore(t), quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	cancel()
	select {
	case <-s.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after context cancellation")
	}
}

// A handler still running after Shutdown gave up must not send on the
// closed record channel; its division goes straight to the store.
func TestRecordAfterStopInsertsDirectly(t *testing.T) {
	store := newStore(t)
	s := New(Config{BatchSize: 4}, store, quietLogger())
	require.NoError(t, s.Stop())

	assert.NotPanics(t, func() {
		rec := get(t, s.Handler(), "/api/divide?dividend=1101&divisor=11")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	n, err := store.CountDivisions()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, int64(1), s.Metrics().Recorded)
}

type failingWriter struct {
	header http.Header
}

func (f *failingWriter) Header() http.Header { return f.header }

func (f *failingWriter) WriteHeader(int) {}

func (f *failingWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	s := New(Config{}, nil, logger)

	s.writeJSON(&failingWriter{header: http.Header{}}, http.StatusOK, map[string]string{"status": "ok"})
	assert.Contains(t, buf.String(), "encoding response")
	assert.Contains(t, buf.String(), "connection reset")
}
