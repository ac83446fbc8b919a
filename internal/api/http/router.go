package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"restaurant-storefront/internal/logging"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler, logger *slog.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(RequestLogger(logger))
	handler.RegisterRoutes(r)
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
	}).Handler(r)
}

func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

// RequestLogger puts a request-scoped logger into the context and logs the
// outcome of every request.
func RequestLogger(base *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)

			l := base.With(
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
				"request_id", rid,
			)
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			start := time.Now()
			next.ServeHTTP(rec, r.WithContext(logging.IntoContext(r.Context(), l)))
			dur := time.Since(start)

			switch {
			case rec.status >= 500:
				l.Error("request completed", "status", rec.status, "duration_ms", dur.Milliseconds())
			case rec.status >= 400:
				l.Warn("request completed", "status", rec.status, "duration_ms", dur.Milliseconds())
			default:
				l.Info("request completed", "status", rec.status, "duration_ms", dur.Milliseconds(), "bytes", rec.bytes)
			}
		})
	}
}
