package config_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/texpack/pkg/cli/config"
	"github.com/m-mizutani/texpack/pkg/domain/model"
)

func TestFetch_NewFetcher(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer token-1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(r.Header.Get("User-Agent")))
	}))
	defer server.Close()

	cfg := &config.Fetch{
		Timeout:    5 * time.Second,
		Token:      "token-1",
		TokenHosts: []string{server.URL},
		UserAgent:  "texpack-test",
		MaxSize:    1024,
	}

	f, closer, err := cfg.NewFetcher(context.Background())
	gt.NoError(t, err)
	defer func() {
		_ = closer()
	}()

	data, err := f.FetchBinary(context.Background(), server.URL+"/a.dds")
	gt.NoError(t, err)
	gt.Equal(t, string(data), "texpack-test")

	// token is withheld from hosts that are not listed
	untrusted := &config.Fetch{Token: "token-1"}
	f2, closer2, err := untrusted.NewFetcher(context.Background())
	gt.NoError(t, err)
	defer func() {
		_ = closer2()
	}()
	_, err = f2.FetchBinary(context.Background(), server.URL+"/a.dds")
	gt.Error(t, err)

	// gs:// is not routed unless enabled
	_, err = f.FetchBinary(context.Background(), "gs://bucket/a.dds")
	gt.Error(t, err)
}

func TestCatalog_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "units.ini")
	gt.NoError(t, os.WriteFile(path, []byte("[https://repoA]\nwall01\n"), 0644))

	cfg := &config.Catalog{Sources: []string{path}}
	m, err := cfg.Load(context.Background(), nil)
	gt.NoError(t, err)
	gt.Equal(t, m, model.TexturesMap{"wall01.dds": "https://repoA"})

	cfg = &config.Catalog{Sources: []string{filepath.Join(dir, "missing.ini")}}
	_, err = cfg.Load(context.Background(), nil)
	gt.Error(t, err)
}

func TestBundle_Options(t *testing.T) {
	cfg := &config.Bundle{
		StripSuffix:      ".m3",
		ArchiveSuffix:    "_with_textures.zip",
		CompressionLevel: -1,
	}
	opts := cfg.Options(&config.Fetch{Concurrency: 4})
	gt.Equal(t, len(opts), 3)
}

func TestSentry_Configure_Disabled(t *testing.T) {
	cfg := &config.Sentry{}
	flush, err := cfg.Configure()
	gt.NoError(t, err)
	flush()
}

func TestSentry_Configure_InvalidDSN(t *testing.T) {
	cfg := &config.Sentry{DSN: "not a dsn"}
	flush, err := cfg.Configure()
	gt.Error(t, err)
	gt.True(t, flush != nil)
	flush()
}

func TestCatalog_LoadTrustsRepositoryHosts(t *testing.T) {
	var auth string
	repo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte("DDS "))
	}))
	defer repo.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "units.ini")
	gt.NoError(t, os.WriteFile(path, []byte("["+repo.URL+"/repoA]\nwall01\n"), 0644))

	ctx := context.Background()
	fetchCfg := &config.Fetch{Timeout: 5 * time.Second, Token: "repo-secret"}
	f, closer, err := fetchCfg.NewFetcher(ctx)
	gt.NoError(t, err)
	defer func() {
		_ = closer()
	}()

	_, err = f.FetchBinary(ctx, repo.URL+"/repoA/wall01.dds")
	gt.NoError(t, err)
	gt.Equal(t, auth, "")

	catalogCfg := &config.Catalog{Sources: []string{path}}
	_, err = catalogCfg.Load(ctx, f)
	gt.NoError(t, err)

	_, err = f.FetchBinary(ctx, repo.URL+"/repoA/wall01.dds")
	gt.NoError(t, err)
	gt.Equal(t, auth, "Bearer repo-secret")
}
