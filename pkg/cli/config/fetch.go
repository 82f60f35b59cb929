package config

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/infra/fetcher"
	"github.com/m-mizutani/texpack/pkg/infra/gcs"
	"github.com/urfave/cli/v3"
)

// Fetch holds asset fetch configuration
type Fetch struct {
	Timeout     time.Duration
	Concurrency int
	Token       string `masq:"secret"`
	TokenHosts  []string
	UserAgent   string
	MaxSize     int64
	EnableGCS   bool
}

// Flags returns CLI flags for fetch configuration
func (c *Fetch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "fetch-timeout",
			Usage:       "Timeout of a single model or texture download",
			Value:       fetcher.DefaultTimeout,
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("TEXPACK_FETCH_TIMEOUT"),
		},
		&cli.IntFlag{
			Name:        "fetch-concurrency",
			Usage:       "Maximum parallel texture downloads (0 = unbounded)",
			Value:       0,
			Destination: &c.Concurrency,
			Sources:     cli.EnvVars("TEXPACK_FETCH_CONCURRENCY"),
		},
		&cli.StringFlag{
			Name:        "fetch-token",
			Usage:       "Bearer token sent to asset repositories listed in the catalog",
			Destination: &c.Token,
			Sources:     cli.EnvVars("TEXPACK_FETCH_TOKEN"),
		},
		&cli.StringSliceFlag{
			Name:        "fetch-token-host",
			Usage:       "Host that receives the fetch token; repository hosts of the catalog are added automatically",
			Destination: &c.TokenHosts,
			Sources:     cli.EnvVars("TEXPACK_FETCH_TOKEN_HOST"),
		},
		&cli.StringFlag{
			Name:        "user-agent",
			Usage:       "User-Agent header for downloads",
			Value:       fetcher.DefaultUserAgent,
			Destination: &c.UserAgent,
			Sources:     cli.EnvVars("TEXPACK_USER_AGENT"),
		},
		&cli.Int64Flag{
			Name:        "max-size",
			Usage:       "Maximum size in bytes of a downloaded asset (0 = unlimited)",
			Value:       fetcher.DefaultMaxSize,
			Destination: &c.MaxSize,
			Sources:     cli.EnvVars("TEXPACK_MAX_SIZE"),
		},
		&cli.BoolFlag{
			Name:        "gcs",
			Usage:       "Enable gs:// URLs for models, textures and catalogs",
			Destination: &c.EnableGCS,
			Sources:     cli.EnvVars("TEXPACK_GCS"),
		},
	}
}

// NewFetcher builds a scheme router over the HTTP client and, if enabled, GCS.
// The returned function releases resources held by the fetchers.
func (c *Fetch) NewFetcher(ctx context.Context) (*fetcher.Router, func() error, error) {
	opts := []fetcher.Option{
		fetcher.WithTimeout(c.Timeout),
		fetcher.WithUserAgent(c.UserAgent),
		fetcher.WithMaxSize(c.MaxSize),
	}
	if c.Token != "" {
		opts = append(opts, fetcher.WithToken(c.Token, c.TokenHosts...))
	}

	router := fetcher.NewRouter(fetcher.NewClient(opts...))
	closer := func() error { return nil }

	if c.EnableGCS {
		client, err := gcs.New(ctx)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to set up GCS fetcher")
		}
		router.Register("gs", client)
		closer = client.Close
	}

	return router, closer, nil
}
