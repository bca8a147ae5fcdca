package xhttp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/birdie-ai/handy/slog"
	"github.com/birdie-ai/handy/xurl"
)

type (
	// API is a client of a remote JSON API rooted at a base URL.
	API struct {
		baseURL string
		client  Client
	}

	// Request describes a call to an [API].
	Request struct {
		// Method defaults to GET.
		Method string
		// Path is appended to the API base URL as is.
		Path   string
		Header http.Header
		// Params go on the query string for GET requests and on a JSON body otherwise.
		Params url.Values
		// Data is the raw request body, if present it is sent instead of Params.
		Data []byte
	}
)

// NewAPI creates an [API] client sending requests to baseURL with the given client.
func NewAPI(baseURL string, client Client) *API {
	return &API{baseURL: baseURL, client: client}
}

// CreateURL returns the URL of a request: base URL plus path, with params on the
// query string for GET requests. Other methods send params on the body.
func (a *API) CreateURL(method, path string, params url.Values) xurl.URL {
	raw := a.baseURL + path
	if method == http.MethodGet {
		return xurl.New(raw, params)
	}
	return xurl.New(raw, nil)
}

// CreateBody returns the body of a request: nothing for GET, data if present,
// otherwise params encoded as a JSON object. Single valued params are encoded
// as strings, multi valued params as lists.
func (a *API) CreateBody(method string, params url.Values, data []byte) ([]byte, error) {
	switch {
	case method == http.MethodGet:
		return nil, nil
	case data != nil:
		return data, nil
	case len(params) > 0:
		obj := make(map[string]any, len(params))
		for k, v := range params {
			if len(v) == 1 {
				obj[k] = v[0]
				continue
			}
			obj[k] = v
		}
		body, err := json.Marshal(obj)
		if err != nil {
			return nil, fmt.Errorf("xhttp: encoding params: %w", err)
		}
		return body, nil
	default:
		return nil, nil
	}
}

// NewRequest creates the [http.Request] for r, see [NewRequestWithContext].
func (a *API) NewRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	body, err := a.CreateBody(method, r.Params, r.Data)
	if err != nil {
		return nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	u := a.CreateURL(method, r.Path, r.Params)
	req, err := NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return nil, fmt.Errorf("xhttp: creating request: %w", err)
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	if body != nil && r.Data == nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// Request sends r and returns the response, the caller must close its body.
func (a *API) Request(ctx context.Context, r Request) (*http.Response, error) {
	req, err := a.NewRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	slog.FromCtx(ctx).Debug("xhttp: sending request", "method", req.Method, "url", req.URL.String())
	return a.client.Do(req)
}

// RequestJSON sends r and parses the JSON response as [T], see [Do].
// Responses with a 4xx or 5xx status are returned along with an error
// tagged with [ErrStatus], see [Response.Err].
func RequestJSON[T any](ctx context.Context, a *API, r Request) (*Response[T], error) {
	req, err := a.NewRequest(ctx, r)
	if err != nil {
		return nil, err
	}
	slog.FromCtx(ctx).Debug("xhttp: sending request", "method", req.Method, "url", req.URL.String())

	res, err := Do[T](a.client, req)
	if err != nil {
		return nil, err
	}
	return res, res.Err()
}
