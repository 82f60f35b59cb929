// Package archive assembles named in-memory entries into a ZIP archive.
package archive

import (
	"archive/zip"
	"bytes"
	"io"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/domain/types"
)

type config struct {
	level    int
	modified time.Time
}

// Option is a functional option for Assemble
type Option func(*config)

// WithCompressionLevel sets the deflate level (flate.HuffmanOnly .. flate.BestCompression)
func WithCompressionLevel(level int) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithModified sets the modification time recorded for every entry
func WithModified(t time.Time) Option {
	return func(c *config) {
		c.modified = t
	}
}

// Assemble writes entries, in order, into one ZIP archive under their bare
// names. Zero entries produce a valid empty archive. Any failure is fatal and
// tagged with types.ErrTagArchiveAssembly.
func Assemble(entries []model.FetchedEntry, opts ...Option) ([]byte, error) {
	cfg := config{
		level:    flate.DefaultCompression,
		modified: time.Now(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.level < flate.HuffmanOnly || cfg.level > flate.BestCompression {
		return nil, goerr.New("invalid compression level",
			goerr.V("level", cfg.level),
			goerr.T(types.ErrTagArchiveAssembly))
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, cfg.level)
	})

	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		if entry.Name == "" {
			return nil, goerr.New("empty entry name", goerr.T(types.ErrTagArchiveAssembly))
		}
		if _, ok := seen[entry.Name]; ok {
			return nil, goerr.New("duplicate entry name",
				goerr.V("name", entry.Name),
				goerr.T(types.ErrTagArchiveAssembly))
		}
		seen[entry.Name] = struct{}{}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     entry.Name,
			Method:   zip.Deflate,
			Modified: cfg.modified,
		})
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create archive entry",
				goerr.V("name", entry.Name),
				goerr.T(types.ErrTagArchiveAssembly))
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, goerr.Wrap(err, "failed to write archive entry",
				goerr.V("name", entry.Name),
				goerr.T(types.ErrTagArchiveAssembly))
		}
	}

	if err := zw.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize archive", goerr.T(types.ErrTagArchiveAssembly))
	}

	return buf.Bytes(), nil
}
