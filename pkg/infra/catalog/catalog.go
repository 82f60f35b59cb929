// Package catalog loads texture repository listings into a model.TexturesMap.
package catalog

import (
	"context"
	"net/url"
	"os"
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/interfaces"
	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/domain/texture"
	"github.com/m-mizutani/texpack/pkg/domain/types"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
)

// DefaultExtension is appended to listed names that carry no extension
const DefaultExtension = ".dds"

// Repository is one hosting location and the files it serves
type Repository struct {
	URL   string   `toml:"url" yaml:"url"`
	Files []string `toml:"files" yaml:"files"`
}

// Format identifies a catalog file syntax
type Format string

const (
	FormatINI  Format = "ini"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DetectFormat returns the catalog format from the source's extension
func DetectFormat(source string) (Format, error) {
	p := source
	if u, err := url.Parse(source); err == nil && u.Scheme != "" && u.Host != "" {
		p = u.Path
	}

	switch strings.ToLower(path.Ext(p)) {
	case ".ini":
		return FormatINI, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", goerr.New("unsupported catalog format",
			goerr.V("source", source),
			goerr.T(types.ErrTagCatalog))
	}
}

// Parse decodes data in the given format
func Parse(format Format, data []byte) ([]Repository, error) {
	switch format {
	case FormatINI:
		return parseINI(data), nil
	case FormatTOML:
		return parseTOML(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, goerr.New("unsupported catalog format",
			goerr.V("format", format),
			goerr.T(types.ErrTagCatalog))
	}
}

// Build flattens repositories into a TexturesMap. Names are normalized like
// extracted references; a later listing of the same name wins.
func Build(repos []Repository, texturesMap model.TexturesMap) model.TexturesMap {
	if texturesMap == nil {
		texturesMap = model.TexturesMap{}
	}

	for _, repo := range repos {
		for _, file := range repo.Files {
			name := NormalizeEntry(file)
			if name == "" {
				continue
			}
			texturesMap[name] = repo.URL
		}
	}

	return texturesMap
}

// NormalizeEntry lowercases and path-strips a listed file name. Listings hold
// base names, so DefaultExtension is appended unless already present.
func NormalizeEntry(file string) string {
	name := texture.NormalizeFilename(strings.TrimSpace(file))
	if name == "" {
		return ""
	}
	if !strings.HasSuffix(name, DefaultExtension) {
		name += DefaultExtension
	}
	return name
}

// Loader reads catalog sources from local files or URLs
type Loader struct {
	fetcher interfaces.AssetFetcher
}

// NewLoader creates a Loader. fetcher is used for sources with a URL scheme
// and may be nil when only local files are loaded.
func NewLoader(fetcher interfaces.AssetFetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load reads every source in order and merges them into one TexturesMap
func (l *Loader) Load(ctx context.Context, sources ...string) (model.TexturesMap, error) {
	logger := logging.From(ctx)
	texturesMap := model.TexturesMap{}

	for _, src := range sources {
		format, err := DetectFormat(src)
		if err != nil {
			return nil, err
		}

		data, err := l.read(ctx, src)
		if err != nil {
			return nil, err
		}

		repos, err := Parse(format, data)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse catalog", goerr.V("source", src))
		}

		before := len(texturesMap)
		Build(repos, texturesMap)

		logger.Info("Loaded textures catalog",
			"source", src,
			"format", format,
			"repositories", len(repos),
			"new_entries", len(texturesMap)-before,
		)
	}

	return texturesMap, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if isURL(src) {
		if l.fetcher == nil {
			return nil, goerr.New("no fetcher for remote catalog",
				goerr.V("source", src),
				goerr.T(types.ErrTagCatalog))
		}
		data, err := l.fetcher.FetchBinary(ctx, src)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to fetch catalog",
				goerr.V("source", src),
				goerr.T(types.ErrTagCatalog))
		}
		return data, nil
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog",
			goerr.V("source", src),
			goerr.T(types.ErrTagCatalog))
	}
	return data, nil
}

func isURL(src string) bool {
	u, err := url.Parse(src)
	return err == nil && u.Scheme != "" && u.Host != ""
}
