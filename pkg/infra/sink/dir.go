package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/interfaces"
	"github.com/m-mizutani/texpack/pkg/infra/gcs"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
)

// Dir writes archives into a local directory
type Dir struct {
	path string
}

// NewDir creates a Dir writer; the directory is created on first write
func NewDir(path string) *Dir {
	if path == "" {
		path = "."
	}
	return &Dir{path: path}
}

// Write stores data as path/name and returns the file path
func (d *Dir) Write(ctx context.Context, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) {
		return "", goerr.New("invalid archive name", goerr.V("name", name))
	}

	if err := os.MkdirAll(d.path, 0755); err != nil {
		return "", goerr.Wrap(err, "failed to create output directory", goerr.V("dir", d.path))
	}

	dest := filepath.Join(d.path, name)
	if err := os.WriteFile(dest, data, 0644); err != nil {
		return "", goerr.Wrap(err, "failed to write archive", goerr.V("dest", dest))
	}

	logging.From(ctx).Info("Wrote archive", "dest", dest, "size_bytes", len(data))

	return dest, nil
}

// New returns an ArchiveWriter for dest: a gs://bucket/prefix URL or a local directory
func New(ctx context.Context, dest string) (interfaces.ArchiveWriter, func() error, error) {
	if strings.HasPrefix(dest, "gs://") {
		client, err := gcs.New(ctx, gcs.WithPrefix(dest))
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create GCS writer", goerr.V("dest", dest))
		}
		return client, client.Close, nil
	}

	return NewDir(dest), func() error { return nil }, nil
}
