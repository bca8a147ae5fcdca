// Package server exposes the time parsing and calendar helpers as a JSON HTTP API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/birdie-ai/handy/duration"
	"github.com/birdie-ai/handy/filesize"
	"github.com/birdie-ai/handy/slog"
	"github.com/birdie-ai/handy/tracing"
	"github.com/birdie-ai/handy/xtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calendar views accepted by /v1/calendar.
const (
	ViewWeek         = "week"
	ViewMonth        = "month"
	ViewRoundedMonth = "rounded-month"
)

type (
	// Options configures the handler created by [New].
	Options struct {
		// Registry is served on /metrics. When nil /metrics is not served.
		Registry *prometheus.Registry
	}

	// TimeResponse is the response of /v1/time.
	TimeResponse struct {
		Input        string         `json:"input"`
		Empty        bool           `json:"empty"`
		MilitaryTime string         `json:"military_time,omitempty"`
		Time         string         `json:"time,omitempty"`
		ISO          xtime.Datetime `json:"iso"`
	}

	// CalendarResponse is the response of /v1/calendar.
	CalendarResponse struct {
		View string   `json:"view"`
		Days []string `json:"days"`
	}

	// RelativeResponse is the response of /v1/relative.
	RelativeResponse struct {
		Date            xtime.Datetime `json:"date"`
		Relative        string         `json:"relative"`
		RelativeInWeeks string         `json:"relative_in_weeks"`
		TimeAgo         string         `json:"time_ago"`
	}

	// FilesizeResponse is the response of /v1/filesize.
	FilesizeResponse struct {
		Bytes float64 `json:"bytes"`
		Text  string  `json:"text"`
	}

	// DurationResponse is the response of /v1/duration.
	DurationResponse struct {
		Seconds int64  `json:"seconds"`
		Minutes int64  `json:"minutes"`
		Text    string `json:"text"`
	}

	// ErrorResponse is the body of every failed request.
	ErrorResponse struct {
		Error string `json:"error"`
	}
)

// errBadRequest tags errors caused by invalid input.
var errBadRequest = errors.New("bad request")

// New creates the HTTP handler of the API.
// Every request gets a request ID and a request scoped logger, see [tracing.InstrumentHTTP].
func New(opts Options) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern, name string, h handlerFunc) {
		mux.Handle(pattern, instrument(name, h))
	}

	handle("GET /v1/time", "time", handleTime)
	handle("GET /v1/calendar", "calendar", handleCalendar)
	handle("GET /v1/relative", "relative", handleRelative)
	handle("GET /v1/filesize", "filesize", handleFilesize)
	handle("GET /v1/duration", "duration", handleDuration)
	handle("GET /health", "health", func(*http.Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	if opts.Registry != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(opts.Registry, promhttp.HandlerOpts{}))
	}
	return tracing.InstrumentHTTP(mux)
}

// handlerFunc returns the value to encode as the JSON response.
// Errors tagged with errBadRequest respond with 400, any other error with 500.
type handlerFunc func(*http.Request) (any, error)

func handleTime(req *http.Request) (any, error) {
	input := req.URL.Query().Get("input")
	d := xtime.ParseTime(input)
	res := TimeResponse{Input: input, Empty: d.IsEmpty(), ISO: d}
	if !d.IsEmpty() {
		res.MilitaryTime = d.MilitaryTime()
		res.Time = d.Time()
	}
	return res, nil
}

func handleCalendar(req *http.Request) (any, error) {
	query := req.URL.Query()

	d := xtime.Today()
	if date := query.Get("date"); date != "" {
		v, err := xtime.FromString(date)
		if err != nil {
			return nil, badRequest("invalid date %q: %v", date, err)
		}
		d = v
	}

	view := query.Get("view")
	if view == "" {
		view = ViewWeek
	}

	var days []xtime.Datetime
	switch view {
	case ViewWeek:
		days = d.DaysForWeek()
	case ViewMonth:
		days = d.DaysForMonth()
	case ViewRoundedMonth:
		days = d.DaysForRoundedMonth()
	default:
		return nil, badRequest("invalid view %q", view)
	}

	res := CalendarResponse{View: view, Days: make([]string, len(days))}
	for i, day := range days {
		res.Days[i] = day.DateString()
	}
	return res, nil
}

func handleRelative(req *http.Request) (any, error) {
	date := req.URL.Query().Get("date")
	if date == "" {
		return nil, badRequest("missing date")
	}
	d, err := xtime.FromString(date)
	if err != nil {
		return nil, badRequest("invalid date %q: %v", date, err)
	}
	return RelativeResponse{
		Date:            d,
		Relative:        d.RelativeToNow(),
		RelativeInWeeks: d.RelativeToInWeeks(xtime.Now()),
		TimeAgo:         d.TimeAgoInWords(),
	}, nil
}

func handleFilesize(req *http.Request) (any, error) {
	query := req.URL.Query()

	var size filesize.Size
	switch {
	case query.Has("bytes"):
		v, err := strconv.ParseFloat(query.Get("bytes"), 64)
		if err != nil {
			return nil, badRequest("invalid bytes %q", query.Get("bytes"))
		}
		size = filesize.Size(v)
	case query.Has("size"):
		v, err := filesize.Parse(query.Get("size"))
		if err != nil {
			return nil, badRequest("invalid size %q: %v", query.Get("size"), err)
		}
		size = v
	default:
		return nil, badRequest("missing bytes or size")
	}

	return FilesizeResponse{Bytes: float64(size), Text: size.String()}, nil
}

func handleDuration(req *http.Request) (any, error) {
	raw := req.URL.Query().Get("seconds")
	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, badRequest("invalid seconds %q", raw)
	}
	d := duration.New(seconds)
	return DurationResponse{
		Seconds: d.ToSeconds(),
		Minutes: d.ToMinutes(),
		Text:    d.ToMinutesText(),
	}, nil
}

func instrument(name string, h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		log := slog.FromCtx(req.Context())

		v, err := h(req)
		switch {
		case errors.Is(err, errBadRequest):
			log.Debug("bad request", "handler", name, "error", err)
			writeJSON(rec, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		case err != nil:
			log.Error("handling request", "handler", name, "error", err)
			writeJSON(rec, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		default:
			writeJSON(rec, http.StatusOK, v)
		}

		sampleRequest(name, rec.status)
		log.Info("request handled", slog.HTTPRequestAttr(slog.HTTPRequest{
			Method:       req.Method,
			URL:          req.URL.String(),
			Status:       rec.status,
			ResponseSize: rec.size,
			UserAgent:    req.UserAgent(),
			Latency:      time.Since(start),
		}))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		status = http.StatusInternalServerError
		body = []byte(`{"error":"encoding response"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func badRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadRequest, fmt.Sprintf(format, args...))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (s *statusRecorder) Write(b []byte) (int, error) {
	n, err := s.ResponseWriter.Write(b)
	s.size += n
	return n, err
}
