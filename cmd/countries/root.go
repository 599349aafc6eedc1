package main

import (
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	appcountries "country-directory-service/internal/app/countries"
	"country-directory-service/internal/config"
	"country-directory-service/internal/logging"
	"country-directory-service/internal/providers"
	"country-directory-service/internal/providers/fixture"
	"country-directory-service/internal/providers/restcountries"
	"country-directory-service/internal/transport"
)

const appVersion = "dev"

// options holds the persistent flags shared by every subcommand.
type options struct {
	// upstream starts from the environment; flags override single fields.
	upstream config.UpstreamConfig
	fixture  bool
	json     bool
	verbose  bool
	timeout  time.Duration

	out    io.Writer
	errOut io.Writer

	// dotenvErr is reported at debug once a logger exists.
	dotenvErr error
	// newFetcher is swapped in tests.
	newFetcher func(opts *options, logger *slog.Logger) (providers.Fetcher, error)
}

func buildRootCmd(cfg config.Config, opts *options) *cobra.Command {
	opts.upstream = cfg.Upstream

	root := &cobra.Command{
		Use:   "countries",
		Short: "Query the country directory",
		Long: `Lists, filters and looks up countries from the restcountries API
(or a compatible wrapped API) after normalizing both upstream shapes.

Upstream settings default to the UPSTREAM_* environment (and .env).

Examples:
  countries list --region europe --sort population
  countries get CAN
  countries get --name "united kingdom"
  countries regions --json`,
		Version:       appVersion,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(opts.out)
	root.SetErr(opts.errOut)

	up := &opts.upstream
	flags := root.PersistentFlags()
	flags.StringVar(&up.BaseURL, "base-url", up.BaseURL, "Upstream base URL (default: public API for the layout)")
	flags.StringVar(&up.Layout, "layout", up.Layout, "Upstream path layout: restcountries or wrapped")
	flags.BoolVar(&opts.fixture, "fixture", cfg.Provider == config.ProviderFixture, "Serve embedded sample data instead of calling the upstream")
	flags.BoolVar(&opts.json, "json", false, "Print JSON instead of a table")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Log upstream attempts to stderr")
	flags.IntVar(&up.MaxAttempts, "attempts", up.MaxAttempts, "Maximum upstream attempts per request")
	flags.DurationVar(&up.RetryDelay, "retry-delay", up.RetryDelay, "Pause between attempts (initial pause for exponential)")
	flags.StringVar(&up.BackOff, "backoff", up.BackOff, "Retry pause policy: constant or exponential")
	flags.Float64Var(&up.RateLimit, "rate-limit", up.RateLimit, "Upstream requests per second (0 disables)")
	flags.DurationVar(&opts.timeout, "timeout", time.Minute, "Overall timeout per command")

	root.AddCommand(newListCmd(opts), newGetCmd(opts), newRegionsCmd(opts))
	return root
}

// service builds the query façade for one command invocation.
func (o *options) service() (*appcountries.Service, error) {
	level := "error"
	if o.verbose {
		level = "debug"
	}
	logger := logging.NewLogger(logging.Config{Level: level, Service: "countries", Version: appVersion, Output: o.errOut})
	if o.dotenvErr != nil {
		logging.Debug(logger, "no .env file loaded", logging.FieldError, o.dotenvErr)
	}

	fetcher, err := o.newFetcher(o, logger)
	if err != nil {
		return nil, err
	}
	endpoints := restcountries.NewEndpoints(o.upstream.BaseURL, restcountries.ParseLayout(o.upstream.Layout), o.upstream.Fields...)
	return appcountries.NewService(fetcher, endpoints, logger, nil), nil
}

// defaultFetcher mirrors the server's assembly: a transport client built from
// the upstream settings, behind the optional rate limiter.
func defaultFetcher(o *options, logger *slog.Logger) (providers.Fetcher, error) {
	if o.fixture {
		return fixture.New()
	}
	up := o.upstream
	policy, err := transport.BackOffPolicy(up.BackOff, up.RetryDelay, up.MaxRetryDelay)
	if err != nil {
		return nil, err
	}
	client := transport.NewClient(transport.Config{
		Name:           restcountries.UpstreamName,
		MaxAttempts:    up.MaxAttempts,
		RetryDelay:     up.RetryDelay,
		BackOff:        policy,
		AttemptTimeout: up.AttemptTimeout,
		Logger:         logger,
	})
	return providers.NewRateLimitedFetcher(client, up.RateLimit, up.RateBurst, client.Name(), logger, nil), nil
}
