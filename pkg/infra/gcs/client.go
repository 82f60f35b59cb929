package gcs

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/types"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
	"google.golang.org/api/option"
)

// Client reads assets from and writes archives to Google Cloud Storage
type Client struct {
	client *storage.Client
	prefix Location // Destination for Write
}

// Location is a parsed gs://bucket/object URL
type Location struct {
	Bucket string
	Object string
}

// String returns the gs:// URL of the location
func (l Location) String() string {
	return "gs://" + l.Bucket + "/" + l.Object
}

// ParseURL parses "gs://bucket/object"
func ParseURL(raw string) (Location, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Location{}, goerr.Wrap(err, "invalid GCS URL", goerr.V("url", raw))
	}
	if u.Scheme != "gs" || u.Host == "" {
		return Location{}, goerr.New("GCS URL must be gs://bucket/object", goerr.V("url", raw))
	}

	return Location{
		Bucket: u.Host,
		Object: strings.TrimPrefix(u.Path, "/"),
	}, nil
}

// Option is a functional option for Client
type Option func(*clientConfig)

type clientConfig struct {
	prefix  string
	options []option.ClientOption
}

// WithPrefix sets the gs://bucket/prefix URL under which archives are written
func WithPrefix(prefix string) Option {
	return func(c *clientConfig) {
		c.prefix = prefix
	}
}

// WithClientOptions passes options to storage.NewClient
func WithClientOptions(opts ...option.ClientOption) Option {
	return func(c *clientConfig) {
		c.options = append(c.options, opts...)
	}
}

// New creates a GCS client using application default credentials
func New(ctx context.Context, opts ...Option) (*Client, error) {
	var cfg clientConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Client{}
	if cfg.prefix != "" {
		loc, err := ParseURL(cfg.prefix)
		if err != nil {
			return nil, err
		}
		c.prefix = loc
	}

	client, err := storage.NewClient(ctx, cfg.options...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create GCS client")
	}
	c.client = client

	return c, nil
}

// Close releases the underlying client
func (c *Client) Close() error {
	return c.client.Close()
}

// FetchBinary implements interfaces.AssetFetcher for gs:// URLs
func (c *Client) FetchBinary(ctx context.Context, rawURL string) ([]byte, error) {
	loc, err := ParseURL(rawURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse object URL", goerr.T(types.ErrTagFetch))
	}

	r, err := c.client.Bucket(loc.Bucket).Object(loc.Object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, goerr.Wrap(err, "object not found",
				goerr.V("url", rawURL),
				goerr.T(types.ErrTagFetch))
		}
		return nil, goerr.Wrap(err, "failed to open object",
			goerr.V("url", rawURL),
			goerr.T(types.ErrTagFetch))
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read object",
			goerr.V("url", rawURL),
			goerr.T(types.ErrTagFetch))
	}

	return data, nil
}

// Write uploads data as name under the configured prefix and returns its gs:// URL
func (c *Client) Write(ctx context.Context, name string, data []byte) (string, error) {
	if c.prefix.Bucket == "" {
		return "", goerr.New("GCS destination prefix is not configured")
	}

	loc := Location{
		Bucket: c.prefix.Bucket,
		Object: path.Join(c.prefix.Object, name),
	}

	w := c.client.Bucket(loc.Bucket).Object(loc.Object).NewWriter(ctx)
	w.ContentType = "application/zip"
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write object", goerr.V("dest", loc.String()))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object", goerr.V("dest", loc.String()))
	}

	logging.From(ctx).Info("Uploaded archive", "dest", loc.String(), "size_bytes", len(data))

	return loc.String(), nil
}
