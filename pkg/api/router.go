package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"
	gotel "go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"cartapi/pkg/logger"
	"cartapi/pkg/otel"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

// NewRouter builds the service router. tracer may be nil.
func NewRouter(h *Handlers, log *logger.Logger, tracer trace.Tracer) *mux.Router {
	r := mux.NewRouter()
	r.Use(traceMiddleware(tracer))
	r.Use(requestLogger(log))

	// Middleware registered with Use only runs on matched routes.
	r.NotFoundHandler = chain(http.NotFoundHandler(), tracer, log)
	r.MethodNotAllowedHandler = chain(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusMethodNotAllowed)
	}), tracer, log)

	r.HandleFunc("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)

	h.Register(r)

	r.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)
	return r
}

func chain(h http.Handler, tracer trace.Tracer, log *logger.Logger) http.Handler {
	return traceMiddleware(tracer)(requestLogger(log)(h))
}

func traceMiddleware(tracer trace.Tracer) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if tracer == nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := gotel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx = otel.InjectTracing(ctx, tracer)
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path, trace.WithSpanKind(trace.SpanKindServer))
			defer span.End()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
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
	if s.status == 0 {
		s.status = http.StatusOK
	}
	n, err := s.ResponseWriter.Write(b)
	s.bytes += n
	return n, err
}

func requestLogger(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rid := r.Header.Get(HeaderRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(HeaderRequestID, rid)

			rec := &statusRecorder{ResponseWriter: w}
			start := time.Now()
			next.ServeHTTP(rec, r)
			dur := time.Since(start)
			if rec.status == 0 {
				rec.status = http.StatusOK
			}

			l := log.With(
				"request_id", rid,
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)
			switch {
			case rec.status >= 500:
				l.Error(r.Context(), "request completed", "status", rec.status, "duration_ms", dur.Milliseconds())
			case rec.status >= 400:
				l.Warn(r.Context(), "request completed", "status", rec.status, "duration_ms", dur.Milliseconds())
			default:
				l.Info(r.Context(), "request completed", "status", rec.status, "duration_ms", dur.Milliseconds(), "bytes", rec.bytes)
			}
		})
	}
}
