// Handy is a command line tool to parse loosely formatted times of day, print calendars
// and serve them over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/birdie-ai/handy/config"
	"github.com/birdie-ai/handy/duration"
	"github.com/birdie-ai/handy/filesize"
	"github.com/birdie-ai/handy/server"
	"github.com/birdie-ai/handy/service"
	"github.com/birdie-ai/handy/slog"
	"github.com/birdie-ai/handy/xerrgroup"
	"github.com/birdie-ai/handy/xhttp"
	"github.com/birdie-ai/handy/xtime"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const usage = `usage: handy <command> [flags] [args]

commands:
  parse <input>...        parse times of day, like 8pm, 20:00 or 0800
  calendar                print the days of a week or month
  filesize <bytes|size>   print a file size on its largest denomination
  duration <seconds>      print a duration in minutes
  serve                   serve the JSON API
  fetch <input>...        parse times of day on a running handy serve
  config show|init        print or write the configuration
  version                 print build information
`

var errUsage = errors.New("invalid usage")

// fetchConcurrency is the maximum number of in flight requests of fetch.
const fetchConcurrency = 4

func main() {
	logCfg, err := slog.LoadConfig("HANDY")
	if err != nil {
		slog.Fatal("loading log config", "error", err)
	}
	if err := slog.Configure(logCfg); err != nil {
		slog.Fatal("configuring logger", "error", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, os.Args[1:], os.Stdout)
	cancel()

	if errors.Is(err, errUsage) {
		fmt.Fprintf(os.Stderr, "%v\n\n%s", err, usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cmd, args := args[0], args[1:]
	switch cmd {
	case "parse":
		return parse(args, stdout)
	case "calendar":
		return calendar(args, stdout)
	case "filesize":
		return fileSize(args, stdout)
	case "duration":
		return printDuration(args, stdout)
	case "serve":
		return serve(ctx, args)
	case "fetch":
		return fetch(ctx, args, stdout)
	case "config":
		return configCmd(args, stdout)
	case "version":
		info := service.ReadBuildInfo()
		_, err := fmt.Fprintf(stdout, "version %s\nrevision %s\ngo %s\n", info.Version, info.Revision, info.GoVersion)
		return err
	case "help", "-h", "--help":
		_, err := io.WriteString(stdout, usage)
		return err
	default:
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}
}

func parse(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: parse needs at least one input", errUsage)
	}
	for _, input := range args {
		printTime(stdout, input, xtime.ParseTime(input))
	}
	return nil
}

func printTime(w io.Writer, input string, d xtime.Datetime) {
	if d.IsEmpty() {
		fmt.Fprintf(w, "%s\tempty\n", input)
		return
	}
	fmt.Fprintf(w, "%s\t%s\t%s\n", input, d.MilitaryTime(), d.Time())
}

func calendar(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("calendar", pflag.ContinueOnError)
	view := flags.String("view", server.ViewWeek, "week, month or rounded-month")
	date := flags.String("date", "", "any day of the week or month as YYYY-MM-DD (default today)")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	d := xtime.Today()
	if *date != "" {
		v, err := xtime.FromString(*date)
		if err != nil {
			return fmt.Errorf("parsing date: %w", err)
		}
		d = v
	}

	var days []xtime.Datetime
	switch *view {
	case server.ViewWeek:
		days = d.DaysForWeek()
	case server.ViewMonth:
		days = d.DaysForMonth()
	case server.ViewRoundedMonth:
		days = d.DaysForRoundedMonth()
	default:
		return fmt.Errorf("%w: unknown view %q", errUsage, *view)
	}

	for _, day := range days {
		fmt.Fprintf(stdout, "%s %s\n", day.ShortDayName(), day.DateString())
	}
	return nil
}

func fileSize(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: filesize needs one size", errUsage)
	}

	size, err := filesize.Parse(args[0])
	if v, parseErr := strconv.ParseFloat(args[0], 64); parseErr == nil {
		size, err = filesize.Size(v), nil
	}
	if err != nil {
		return fmt.Errorf("parsing size: %w", err)
	}

	fmt.Fprintln(stdout, size)
	return nil
}

func printDuration(args []string, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: duration needs the seconds", errUsage)
	}
	seconds, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("parsing seconds: %w", err)
	}

	d := duration.New(seconds)
	fmt.Fprintf(stdout, "%s\t%s\n", d.ToSecondsText(), d.ToMinutesText())
	return nil
}

func serve(ctx context.Context, args []string) error {
	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	configPath := flags.String("config", "", "path of the YAML configuration file")
	listen := flags.String("listen", "", "listen address, overrides the configuration")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Listen = *listen
	}

	logCfg, err := cfg.SlogConfig()
	if err != nil {
		return err
	}
	if err := slog.Configure(logCfg); err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	defer xtime.SetClock(xtime.SystemClockIn(loc))()

	registry := prometheus.NewRegistry()
	service.MustRegisterMetrics(registry)
	xtime.MustRegisterMetrics(registry)
	server.MustRegisterMetrics(registry)
	service.SampleBuildInfo()

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           server.New(server.Options{Registry: registry}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := service.NewShutdownHandler(cfg.ShutdownPeriod)
	shutdown.Add("http", srv)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return shutdown.Wait(ctx)
	})
	g.Go(func() error {
		slog.Info("serving", "addr", cfg.Listen, "timezone", loc.String())
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func fetch(ctx context.Context, args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("fetch", pflag.ContinueOnError)
	baseURL := flags.String("base-url", "http://"+config.DefaultListen, "base URL of a running handy serve")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("%w: fetch needs at least one input", errUsage)
	}

	type fetched struct {
		input string
		time  xtime.Datetime
	}

	api := xhttp.NewAPI(*baseURL, xhttp.NewRetrierClient(http.DefaultClient))
	g, ctx := xerrgroup.WithContext[fetched](ctx)
	g.SetLimit(fetchConcurrency)
	for _, input := range flags.Args() {
		g.Go(func() (fetched, error) {
			res, err := xhttp.RequestJSON[server.TimeResponse](ctx, api, xhttp.Request{
				Path:   "/v1/time",
				Params: url.Values{"input": {input}},
			})
			if err != nil {
				return fetched{}, fmt.Errorf("fetching %q: %w", input, err)
			}
			return fetched{input: input, time: res.Obj.ISO}, nil
		})
	}

	results, err := g.Wait()
	if err != nil {
		return err
	}
	for _, r := range results {
		// The server parses with its own clock, keep the date it picked.
		printTime(stdout, r.input, r.time)
	}
	return nil
}

func configCmd(args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: config needs show or init", errUsage)
	}

	switch args[0] {
	case "show":
		flags := pflag.NewFlagSet("config show", pflag.ContinueOnError)
		path := flags.String("config", "", "path of the YAML configuration file")
		if err := flags.Parse(args[1:]); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		cfg, err := config.Load(*path)
		if err != nil {
			return err
		}
		enc := yaml.NewEncoder(stdout)
		if err := enc.Encode(cfg); err != nil {
			return fmt.Errorf("encoding config: %w", err)
		}
		return enc.Close()
	case "init":
		if len(args) != 2 {
			return fmt.Errorf("%w: config init needs a path", errUsage)
		}
		if err := config.Save(args[1], config.Default()); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", args[1])
		return nil
	default:
		return fmt.Errorf("%w: unknown config command %q", errUsage, args[0])
	}
}
