package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/interfaces"
	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/infra/catalog"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Catalog holds textures catalog sources
type Catalog struct {
	Sources []string
}

// Flags returns CLI flags for catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Textures catalog file or URL (.ini, .toml, .yaml); later sources override earlier ones",
			Destination: &c.Sources,
			Sources:     cli.EnvVars("TEXPACK_CATALOG"),
		},
	}
}

type hostTruster interface {
	TrustHosts(hosts ...string)
}

// Load reads all catalog sources into one TexturesMap. Repository hosts of the
// catalog are trusted by fetcher to receive the fetch token.
func (c *Catalog) Load(ctx context.Context, fetcher interfaces.AssetFetcher) (model.TexturesMap, error) {
	m, err := catalog.NewLoader(fetcher).Load(ctx, c.Sources...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load textures catalog")
	}

	if t, ok := fetcher.(hostTruster); ok {
		hosts := m.Hosts()
		t.TrustHosts(hosts...)
		logging.From(ctx).Debug("Trusted repository hosts", "hosts", hosts)
	}

	return m, nil
}
