package slog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// HTTPRequestKey is the key of [HTTPRequest] attributes.
// The gcloud format logs it as the httpRequest field of a LogEntry.
const HTTPRequestKey = "http_request"

// HTTPRequest describes a served HTTP request.
// Log it with [HTTPRequestAttr] or with the [HTTPRequestKey] key.
type HTTPRequest struct {
	Method       string
	URL          string
	Status       int
	ResponseSize int
	UserAgent    string
	Latency      time.Duration
}

// HTTPRequestAttr returns an attribute with r under the [HTTPRequestKey] key.
func HTTPRequestAttr(r HTTPRequest) slog.Attr {
	return slog.Any(HTTPRequestKey, r)
}

// MarshalJSON encodes r with snake case fields and the latency in seconds, like "0.001200s".
func (r HTTPRequest) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"method":        r.Method,
		"url":           r.URL,
		"status_code":   r.Status,
		"response_size": r.ResponseSize,
		"user_agent":    r.UserAgent,
		"elapsed":       latency(r.Latency),
	})
}

func (r HTTPRequest) String() string {
	return fmt.Sprintf("%s %s %d %dB %s", r.Method, r.URL, r.Status, r.ResponseSize, latency(r.Latency))
}

// Customize the http request fields
// More: https://cloud.google.com/logging/docs/reference/v2/rest/v2/LogEntry#HttpRequest
func convertHTTPRequest(origKey string, origValue slog.Value) (string, slog.Value) {
	r, ok := origValue.Any().(HTTPRequest)
	if !ok {
		return origKey, origValue
	}
	attrs := []slog.Attr{
		slog.String("requestMethod", r.Method),
		slog.String("requestUrl", r.URL),
		slog.Int("status", r.Status),
		// LogEntry encodes int64 fields as strings
		slog.String("responseSize", fmt.Sprint(r.ResponseSize)),
		slog.String("latency", latency(r.Latency)),
	}
	if r.UserAgent != "" {
		attrs = append(attrs, slog.String("userAgent", r.UserAgent))
	}
	return "httpRequest", slog.GroupValue(attrs...)
}

func latency(d time.Duration) string {
	return fmt.Sprintf("%.6fs", d.Seconds())
}
