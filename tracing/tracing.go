// Package tracing provides functions to help integrate logging with request tracing.
package tracing

import (
	"context"
	"net/http"

	"github.com/birdie-ai/handy/slog"
	"github.com/google/uuid"
)

// RequestIDHeader is the header used to propagate request IDs.
const RequestIDHeader = "X-Request-Id"

// InstrumentHTTP will instrument the given [http.Handler] by adding a slog.Logger on the request context.
// The request ID is read from the [RequestIDHeader], a new UUID is generated when it is absent,
// and it is echoed back on the response headers.
// The logger will have `request_id` added to it.
// Use slog.FromCtx(ctx) to retrieve the logger.
func InstrumentHTTP(h http.Handler) http.Handler {
	return http.HandlerFunc(func(res http.ResponseWriter, req *http.Request) {
		requestID := req.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
			slog.Debug("header absent, generated UUID", "request_id", requestID)
		}
		res.Header().Set(RequestIDHeader, requestID)

		ctx := req.Context()
		ctx = CtxWithRequestID(ctx, requestID)

		log := slog.FromCtx(ctx)
		log = log.With("request_id", requestID)
		ctx = slog.NewContext(ctx, log)

		h.ServeHTTP(res, req.WithContext(ctx))
	})
}

// CtxWithRequestID creates a new [context.Context] with the given request ID associated with it.
// Call [CtxGetRequestID] to retrieve the request ID.
func CtxWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// CtxGetRequestID gets the request ID associated with this context.
// Return the request ID and true if there is a request ID, empty and false otherwise.
func CtxGetRequestID(ctx context.Context) (string, bool) {
	val, ok := ctx.Value(requestIDKey).(string)
	return val, ok
}

// SetRequestID sets the request ID of ctx, if any, on the headers of an outgoing request.
func SetRequestID(ctx context.Context, header http.Header) {
	if requestID, ok := CtxGetRequestID(ctx); ok {
		header.Set(RequestIDHeader, requestID)
	}
}

// key is the type used to store data on contexts.
type key int

const (
	requestIDKey key = iota
)
