package config

import (
	"github.com/klauspost/compress/flate"
	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/infra/archive"
	"github.com/m-mizutani/texpack/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// Bundle holds archive naming and compression configuration
type Bundle struct {
	StripSuffix      string
	ArchiveSuffix    string
	CompressionLevel int
}

// Flags returns CLI flags for bundle configuration
func (c *Bundle) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "strip-suffix",
			Usage:       "Suffix removed from the model name when naming the archive",
			Value:       model.DefaultStripSuffix,
			Destination: &c.StripSuffix,
			Sources:     cli.EnvVars("TEXPACK_STRIP_SUFFIX"),
		},
		&cli.StringFlag{
			Name:        "archive-suffix",
			Usage:       "Suffix appended to the model name when naming the archive",
			Value:       model.DefaultArchiveSuffix,
			Destination: &c.ArchiveSuffix,
			Sources:     cli.EnvVars("TEXPACK_ARCHIVE_SUFFIX"),
		},
		&cli.IntFlag{
			Name:        "compression-level",
			Usage:       "Deflate level from -2 (huffman only) to 9 (best), -1 for default",
			Value:       flate.DefaultCompression,
			Destination: &c.CompressionLevel,
			Sources:     cli.EnvVars("TEXPACK_COMPRESSION_LEVEL"),
		},
	}
}

// Options converts the configuration into bundle use case options
func (c *Bundle) Options(fetch *Fetch) []usecase.BundleOption {
	return []usecase.BundleOption{
		usecase.WithNamingRule(model.NamingRule{
			StripSuffix:   c.StripSuffix,
			ArchiveSuffix: c.ArchiveSuffix,
		}),
		usecase.WithArchiveOptions(archive.WithCompressionLevel(c.CompressionLevel)),
		usecase.WithConcurrency(fetch.Concurrency),
	}
}
