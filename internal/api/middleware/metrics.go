package middleware

import (
	"cmp"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
)

// series identifies one line of the exposition. Routes are chi patterns, so
// every file under a docs mount lands on the same "/docs/*" series.
type series struct {
	method string
	route  string
	status int
}

type seriesStats struct {
	requests int64
	bytes    int64
	seconds  float64
}

// Metrics counts requests per (method, route, status) and serves them in the
// Prometheus text format.
type Metrics struct {
	now      func() time.Time
	inFlight atomic.Int64

	mu    sync.Mutex
	stats map[series]*seriesStats
}

func NewMetrics() *Metrics {
	return &Metrics{now: time.Now, stats: make(map[series]*seriesStats)}
}

func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m.inFlight.Add(1)
			defer m.inFlight.Add(-1)

			start := m.now()
			rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rw, r)

			// The pattern is only complete once routing has finished.
			m.observe(series{method: r.Method, route: routePattern(r), status: rw.status},
				rw.written, m.now().Sub(start))
		})
	}
}

func (m *Metrics) observe(key series, written int64, took time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	st, ok := m.stats[key]
	if !ok {
		st = &seriesStats{}
		m.stats[key] = st
	}
	st.requests++
	st.bytes += written
	st.seconds += took.Seconds()
}

type sample struct {
	key series
	seriesStats
}

// snapshot copies the counters out under the lock, ordered by route, method,
// then status.
func (m *Metrics) snapshot() []sample {
	m.mu.Lock()
	out := make([]sample, 0, len(m.stats))
	for k, st := range m.stats {
		out = append(out, sample{key: k, seriesStats: *st})
	}
	m.mu.Unlock()

	slices.SortFunc(out, func(a, b sample) int {
		return cmp.Or(
			cmp.Compare(a.key.route, b.key.route),
			cmp.Compare(a.key.method, b.key.method),
			cmp.Compare(a.key.status, b.key.status),
		)
	})
	return out
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		m.write(w)
	}
}

func (m *Metrics) write(w io.Writer) {
	samples := m.snapshot()

	family(w, "swaggerui_http_in_flight_requests", "gauge", "Requests currently being served.")
	fmt.Fprintf(w, "swaggerui_http_in_flight_requests %d\n", m.inFlight.Load())

	family(w, "swaggerui_http_requests_total", "counter", "Requests served, by route pattern and status.")
	for _, s := range samples {
		fmt.Fprintf(w, "swaggerui_http_requests_total%s %d\n", s.key.labels(), s.requests)
	}

	family(w, "swaggerui_http_response_bytes_total", "counter", "Response body bytes written.")
	for _, s := range samples {
		fmt.Fprintf(w, "swaggerui_http_response_bytes_total%s %d\n", s.key.labels(), s.bytes)
	}

	family(w, "swaggerui_http_request_duration_seconds", "summary", "Time spent serving requests.")
	for _, s := range samples {
		l := s.key.labels()
		fmt.Fprintf(w, "swaggerui_http_request_duration_seconds_sum%s %s\n", l,
			strconv.FormatFloat(s.seconds, 'f', 6, 64))
		fmt.Fprintf(w, "swaggerui_http_request_duration_seconds_count%s %d\n", l, s.requests)
	}
}

func family(w io.Writer, name, kind, help string) {
	fmt.Fprintf(w, "# HELP %s %s\n# TYPE %s %s\n", name, help, name, kind)
}

func (s series) labels() string {
	return fmt.Sprintf("{method=%q,route=%q,status=\"%d\"}", s.method, s.route, s.status)
}

// routePattern returns the chi pattern that served r, or "unmatched" for
// requests no route claimed.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
