// Package xhttp extends Go's net/http with JSON request helpers and clients.
package xhttp

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/birdie-ai/handy/xerrors"
)

type (
	// Response is an extension of [http.Response] that contains parsed data
	// instead of a response body.
	Response[T any] struct {
		*http.Response
		// RawObj is the raw response from where Obj was parsed (useful mostly for debugging).
		RawObj []byte
		// Obj is the parsed JSON response.
		Obj T
	}
	// ResponseErr is the error returned by [Do] if parsing the response body fails.
	ResponseErr struct {
		Err        error
		StatusCode int
		Body       []byte
	}
)

// ErrStatus tags errors of responses with a 4xx or 5xx status, see [Response.Err].
var ErrStatus = errors.New("xhttp: unexpected response status")

// Do calls [Client.Do] and unmarshalls the HTTP response as a JSON of type [T].
// The returned [Response] embeds the original [http.Response] with the addition
// of the [Response.Obj] field that holds the parsed response.
//
// The original [http.Response.Body] will always be read and closed, the caller should ignore
// this field and use [Response.Obj] to access the parsed response or use errors.As
// to check details in the case of an error (eg. debugging malformed JSON).
//
// Responses of any status are parsed, use [Response.Err] to reject 4xx and 5xx responses.
// If the response is not valid JSON an error of type [ResponseErr] is returned.
func Do[T any](c Client, req *http.Request) (*Response[T], error) {
	v, err := c.Do(req)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(v.Body)
	if err != nil {
		return nil, errors.Join(err, v.Body.Close())
	}
	if err := v.Body.Close(); err != nil {
		return nil, fmt.Errorf("xhttp: closing response body: %w", err)
	}

	var parsed T
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, ResponseErr{Err: err, StatusCode: v.StatusCode, Body: body}
	}
	return &Response[T]{Response: v, RawObj: body, Obj: parsed}, nil
}

// Err returns an error tagged with [ErrStatus] if r has a 4xx or 5xx status, nil otherwise.
// The error message includes the response body.
func (r *Response[T]) Err() error {
	if r.StatusCode < http.StatusBadRequest {
		return nil
	}
	err := fmt.Errorf("xhttp: status %d: %s", r.StatusCode, bytes.TrimSpace(r.RawObj))
	if req := r.Request; req != nil {
		err = fmt.Errorf("xhttp: %s %s: status %d: %s", req.Method, req.URL, r.StatusCode, bytes.TrimSpace(r.RawObj))
	}
	return xerrors.Tag(err, ErrStatus)
}

func (r ResponseErr) Error() string {
	return fmt.Sprintf("xhttp: parsing response with status %d: %v", r.StatusCode, r.Err)
}

func (r ResponseErr) Unwrap() error {
	return r.Err
}
