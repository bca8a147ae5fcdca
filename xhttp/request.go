package xhttp

import (
	"context"
	"io"
	"net/http"
	"path"
	"runtime/debug"
	"strings"
	"sync"

	"github.com/birdie-ai/handy/tracing"
)

const fallbackUserAgent = "handy-xhttp-client/0"

var userAgent = sync.OnceValue(func() string {
	bf, ok := debug.ReadBuildInfo()
	if !ok {
		return fallbackUserAgent
	}
	return buildUserAgent(bf)
})

// UserAgent returns the User-Agent header set by [NewRequestWithContext],
// like "handy/1a2b3c4 Go/go1.25.0".
func UserAgent() string {
	return userAgent()
}

// NewRequestWithContext is a wrapper that will call [http.NewRequestWithContext] and add an User-Agent header according to [RFC 7231].
// It is a more complete User-Agent than Go's default, including proper Go version and the name of the main package of the binary with its version.
// The user agent will be on the format: <main package name>/<short vcs revision> Go/<go version>
// This is intended for internal communication between services since the user agent contains a lot of details about the client.
// If this seems like too much information to send to a public service just use [http.NewRequestWithContext].
//
// The request ID of ctx, if any, is propagated on the [tracing.RequestIDHeader].
//
// [RFC 7231]: https://datatracker.ietf.org/doc/html/rfc7231#section-5.5.3
func NewRequestWithContext(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return req, err
	}
	req.Header.Set("User-Agent", UserAgent())
	tracing.SetRequestID(ctx, req.Header)
	return req, nil
}

func buildUserAgent(bf *debug.BuildInfo) string {
	var parts []string
	if bf.Path != "" {
		parts = append(parts, path.Base(bf.Path)+"/"+shortRevision(bf))
	}
	if bf.GoVersion != "" {
		parts = append(parts, "Go/"+bf.GoVersion)
	}
	if len(parts) == 0 {
		return fallbackUserAgent
	}
	return strings.Join(parts, " ")
}

// shortRevision returns the first 7 chars of the VCS revision, like git short hashes.
func shortRevision(bf *debug.BuildInfo) string {
	for _, s := range bf.Settings {
		if s.Key == "vcs.revision" {
			return s.Value[:min(len(s.Value), 7)]
		}
	}
	return "no-version"
}
