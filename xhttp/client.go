package xhttp

import (
	"context"
	"net/http"
	"time"

	"github.com/birdie-ai/handy/slog"
)

type (
	// Client abstracts a [http.Client], allowing us to create wrappers for http clients adding useful
	// functionality like retry. It has the same API as [http.Client] and is intended to be
	// a drop-in replacement (but not all methods are supported yet).
	Client interface {
		Do(req *http.Request) (*http.Response, error)
	}
	// RetrierOption is used to configure retrier clients created with [NewRetrierClient].
	RetrierOption func(*retrierClient)
)

// Default limits of the retrier.
const (
	DefaultMinSleepPeriod = 250 * time.Millisecond
	DefaultMaxAttempts    = 4
)

// RetrierWithMinSleepPeriod configures the min period that the retrier will sleep between retries.
// Retrying uses an exponential backoff, so this will be only the initial sleep period, that then grows exponentially.
func RetrierWithMinSleepPeriod(minPeriod time.Duration) RetrierOption {
	return func(r *retrierClient) {
		r.minPeriod = minPeriod
	}
}

// RetrierWithMaxAttempts configures how many times a request is sent before giving up
// and returning the last response.
func RetrierWithMaxAttempts(attempts int) RetrierOption {
	return func(r *retrierClient) {
		r.maxAttempts = max(attempts, 1)
	}
}

// RetrierWithSleep configures the sleep function used to sleep between retries, usually used for testing.
// But can be used as a way to measure how much retries happened since this is called before each retry.
func RetrierWithSleep(sleep func(context.Context, time.Duration)) RetrierOption {
	return func(r *retrierClient) {
		r.sleep = sleep
	}
}

// NewRetrierClient wraps the given client with retry logic.
// The returned [Client] will automatically retry requests that failed with
// a 429, 500, 502, 503 or 504 status.
//
// Only requests without a body, or with [http.Request.GetBody] set, are retried.
// Requests created with [NewRequestWithContext] from a bytes or strings reader have it.
func NewRetrierClient(c Client, options ...RetrierOption) Client {
	r := &retrierClient{
		client:      c,
		sleep:       defaultSleep,
		minPeriod:   DefaultMinSleepPeriod,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

type retrierClient struct {
	client      Client
	minPeriod   time.Duration
	maxAttempts int
	sleep       func(context.Context, time.Duration)
}

func (r *retrierClient) Do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	log := slog.FromCtx(ctx)
	sleepPeriod := r.minPeriod

	for attempt := 1; ; attempt++ {
		res, err := r.client.Do(req)
		if err != nil {
			return nil, err
		}
		if !retryStatus(res.StatusCode) || attempt >= r.maxAttempts {
			return res, nil
		}

		next, ok := rewind(req)
		if !ok {
			return res, nil
		}
		if res.Body != nil {
			_ = res.Body.Close()
		}

		log.Debug("xhttp: retrying request", "url", req.URL.String(), "status", res.StatusCode, "attempt", attempt)
		r.sleep(ctx, sleepPeriod)
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req = next
		sleepPeriod *= 2
	}
}

// rewind returns a copy of req with a fresh body, if that is possible.
func rewind(req *http.Request) (*http.Request, bool) {
	next := req.Clone(req.Context())
	if req.Body == nil || req.Body == http.NoBody {
		return next, true
	}
	if req.GetBody == nil {
		return nil, false
	}
	body, err := req.GetBody()
	if err != nil {
		return nil, false
	}
	next.Body = body
	return next, true
}

func retryStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

func defaultSleep(ctx context.Context, period time.Duration) {
	// Guarantee that we won't sleep more than the request context allows
	sleepCtx, cancel := context.WithTimeout(ctx, period)
	defer cancel()
	<-sleepCtx.Done()
}
