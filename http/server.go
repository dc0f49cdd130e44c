package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/xhsnote"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ShutdownTimeout is how long in-flight requests get to finish on shutdown.
const ShutdownTimeout = 5 * time.Second

// maxRequestBody caps the size of a lookup request body.
const maxRequestBody = 1 << 20

// Result codes carried in every response envelope.
const (
	CodeSuccess = 0
	CodeFailure = -1
)

// Response is the envelope returned by the note endpoint.
type Response struct {
	Code    int           `json:"code"`
	Success bool          `json:"success"`
	Msg     string        `json:"msg"`
	Data    *xhsnote.Note `json:"data"`
}

// Server exposes a NoteService over HTTP.
type Server struct {
	router chi.Router
	notes  xhsnote.NoteService
	logger *slog.Logger

	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewServer creates a Server backed by notes. Each server has its own
// metrics registry.
func NewServer(notes xhsnote.NoteService, logger *slog.Logger) *Server {
	s := &Server{
		router:   chi.NewRouter(),
		notes:    notes,
		logger:   logger,
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "xhsnote_requests_total",
			Help: "Note lookups by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "xhsnote_request_duration_seconds",
			Help:    "Time spent serving note lookups.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	s.registry.MustRegister(s.requests, s.duration)

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)

	s.router.Post("/getNote", s.handleGetNote)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAndServe listens on addr and serves until ctx is canceled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.logger.Info("listening", "addr", ln.Addr().String())
	return s.Serve(ctx, ln)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	begin := time.Now()
	defer func() {
		s.duration.Observe(time.Since(begin).Seconds())
	}()

	var req xhsnote.NoteRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBody)).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.requests.WithLabelValues(xhsnote.EINVALID).Inc()
		s.writeJSON(w, http.StatusBadRequest, &Response{Code: CodeFailure, Msg: "invalid request body"})
		return
	}

	note, err := s.notes.FindNote(r.Context(), req)
	if err != nil {
		code := xhsnote.ErrorCode(err)
		if code == xhsnote.EINTERNAL {
			s.logger.Error("note lookup", "url", req.URL, "request_id", middleware.GetReqID(r.Context()), "err", err)
		}
		s.requests.WithLabelValues(code).Inc()
		s.writeJSON(w, http.StatusOK, &Response{Code: CodeFailure, Msg: ErrorMessage(code)})
		return
	}

	s.requests.WithLabelValues("success").Inc()
	s.writeJSON(w, http.StatusOK, &Response{Code: CodeSuccess, Success: true, Msg: "success", Data: note})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, "ok")
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("write response", "err", err)
	}
}

// ErrorMessage returns the message shown to API callers for an error code.
// Internal detail never reaches the caller.
func ErrorMessage(code string) string {
	switch code {
	case xhsnote.EMISSINGPARAM:
		return "missing url parameter"
	case xhsnote.EREDIRECT:
		return "cannot resolve redirect"
	case xhsnote.EMISSINGTOKEN:
		return "link missing token"
	case xhsnote.EMALFORMED:
		return "link missing valid id or token"
	case xhsnote.ETRANSPORT, xhsnote.ESTATENOTFOUND, xhsnote.EPARSE:
		return "cannot extract page data"
	case xhsnote.ENOTFOUND:
		return "no note of requested type found"
	default:
		return "internal error"
	}
}
