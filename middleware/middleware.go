package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type contextKey string

const contextRequestID = contextKey("RequestID")
const httpHeaderRequestID = "X-Request-Id"

func AddAll(next http.Handler) http.Handler {
	return AddRequestID(AddLogging(next))
}

// AddRequestID takes the request id from the X-Request-Id header or creates
// a new one, echoes it in the response and stores it in the context.
func AddRequestID(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(httpHeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		if w != nil {
			w.Header().Set(httpHeaderRequestID, id)
		}
		next.ServeHTTP(w, r.WithContext(CtxNewWithRequestID(r.Context(), id)))
	}
	return http.HandlerFunc(fn)
}

// AddLogging attaches a logger carrying the request id to the context.
func AddLogging(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		logger := log.With().Str("requestID", CtxGetRequestID(r.Context())).Logger()
		ctx := logger.WithContext(r.Context())
		logger.Debug().Msgf("%s %s from %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(fn)
}

func CtxGetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(contextRequestID).(string); ok {
		return id
	}
	return ""
}

func CtxNewWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextRequestID, id)
}
