package usecase

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/interfaces"
	"github.com/m-mizutani/texpack/pkg/domain/model"
	"github.com/m-mizutani/texpack/pkg/domain/texture"
	"github.com/m-mizutani/texpack/pkg/domain/types"
	"github.com/m-mizutani/texpack/pkg/infra/archive"
	"github.com/m-mizutani/texpack/pkg/utils/async"
	"github.com/m-mizutani/texpack/pkg/utils/logging"
)

type bundleUseCase struct {
	fetcher     interfaces.AssetFetcher
	extractor   texture.Extractor
	naming      model.NamingRule
	concurrency int
	archiveOpts []archive.Option
}

// BundleOption is a functional option for the bundle use case
type BundleOption func(*bundleUseCase)

// WithExtractor replaces the texture reference extraction strategy
func WithExtractor(x texture.Extractor) BundleOption {
	return func(uc *bundleUseCase) {
		uc.extractor = x
	}
}

// WithNamingRule sets how the archive filename is derived from the model name
func WithNamingRule(rule model.NamingRule) BundleOption {
	return func(uc *bundleUseCase) {
		uc.naming = rule
	}
}

// WithConcurrency bounds parallel texture fetches, <= 0 means unbounded
func WithConcurrency(n int) BundleOption {
	return func(uc *bundleUseCase) {
		uc.concurrency = n
	}
}

// WithArchiveOptions passes options to the archive assembler
func WithArchiveOptions(opts ...archive.Option) BundleOption {
	return func(uc *bundleUseCase) {
		uc.archiveOpts = append(uc.archiveOpts, opts...)
	}
}

// NewBundle creates a new instance of BundleUseCase
func NewBundle(fetcher interfaces.AssetFetcher, opts ...BundleOption) interfaces.BundleUseCase {
	uc := &bundleUseCase{
		fetcher:   fetcher,
		extractor: texture.DDSExtractor,
		naming:    model.DefaultNamingRule(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Bundle fetches the model, resolves and fetches its textures and packs everything into one archive
func (uc *bundleUseCase) Bundle(ctx context.Context, modelURL string, texturesMap model.TexturesMap) (*model.BundleResult, error) {
	id := uuid.NewString()
	logger := logging.From(ctx).With("bundle_id", id)
	ctx = logging.With(ctx, logger)
	start := time.Now()

	ref, err := uc.fetchModel(ctx, modelURL)
	if err != nil {
		return nil, err
	}

	names, assets, diagnostics := uc.resolve(ctx, ref, texturesMap)

	var targets []model.ResolvedAsset
	for _, asset := range assets {
		if !asset.Resolved {
			continue
		}
		if asset.Filename == ref.Name {
			logger.Debug("Skip reference to the model itself", "filename", asset.Filename)
			continue
		}
		targets = append(targets, asset)
	}

	fetched := make([]*model.FetchedEntry, len(targets))
	errs := async.Gather(ctx, len(targets), uc.concurrency, func(ctx context.Context, i int) error {
		data, err := uc.fetcher.FetchBinary(ctx, targets[i].URL)
		if err != nil {
			return err
		}
		fetched[i] = &model.FetchedEntry{Name: targets[i].Filename, Data: data}
		return nil
	})

	entries := []model.FetchedEntry{{Name: ref.Name, Data: ref.Data}}
	var textures []string
	for i, err := range errs {
		if err != nil {
			logger.Warn("Failed to fetch texture",
				"filename", targets[i].Filename,
				"url", targets[i].URL,
				"error", err,
			)
			diagnostics = append(diagnostics, model.Diagnostic{
				Kind:     model.DiagTextureFetchFailed,
				Filename: targets[i].Filename,
				URL:      targets[i].URL,
				Message:  err.Error(),
			})
			continue
		}
		entries = append(entries, *fetched[i])
		textures = append(textures, fetched[i].Name)
	}

	data, err := archive.Assemble(entries, uc.archiveOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to assemble archive",
			goerr.V("model_url", modelURL),
			goerr.V("entries", len(entries)),
			goerr.T(types.ErrTagArchiveAssembly))
	}

	result := &model.BundleResult{
		ID:          id,
		Filename:    uc.naming.ArchiveName(ref.Name),
		Data:        data,
		Model:       ref.Name,
		Textures:    textures,
		Diagnostics: diagnostics,
	}

	logger.Info("Bundle completed",
		"filename", result.Filename,
		"extracted", len(names),
		"textures", len(textures),
		"diagnostics", len(diagnostics),
		"size_bytes", len(data),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return result, nil
}

// Inspect fetches the model and reports which textures would be bundled
func (uc *bundleUseCase) Inspect(ctx context.Context, modelURL string, texturesMap model.TexturesMap) (*model.BundlePlan, error) {
	id := uuid.NewString()
	ctx = logging.With(ctx, logging.From(ctx).With("bundle_id", id))

	ref, err := uc.fetchModel(ctx, modelURL)
	if err != nil {
		return nil, err
	}

	names, assets, diagnostics := uc.resolve(ctx, ref, texturesMap)

	return &model.BundlePlan{
		ID:          id,
		Model:       ref.Name,
		Filename:    uc.naming.ArchiveName(ref.Name),
		Extracted:   names,
		Assets:      assets,
		Diagnostics: diagnostics,
	}, nil
}

// fetchModel retrieves the model binary. Every failure is fatal.
func (uc *bundleUseCase) fetchModel(ctx context.Context, modelURL string) (*model.ModelReference, error) {
	logger := logging.From(ctx)

	name, err := modelName(modelURL)
	if err != nil {
		return nil, err
	}

	logger.Info("Fetching model", "url", modelURL, "name", name)

	data, err := uc.fetcher.FetchBinary(ctx, modelURL)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch model",
			goerr.V("model_url", modelURL),
			goerr.T(types.ErrTagModelFetch))
	}

	logger.Info("Fetched model", "name", name, "size_bytes", len(data))

	return &model.ModelReference{
		URL:  modelURL,
		Name: name,
		Data: data,
	}, nil
}

// resolve extracts texture references from the model and resolves them
func (uc *bundleUseCase) resolve(ctx context.Context, ref *model.ModelReference, texturesMap model.TexturesMap) ([]string, []model.ResolvedAsset, []model.Diagnostic) {
	logger := logging.From(ctx)

	names := uc.extractor.Extract(texture.Scan(ref.Data))
	assets := texture.Resolve(names, texturesMap)

	logger.Info("Extracted texture references", "model", ref.Name, "count", len(names))

	diagnostics := []model.Diagnostic{}
	for _, asset := range assets {
		if asset.Resolved {
			continue
		}
		logger.Warn("Missing repository for texture", "filename", asset.Filename)
		diagnostics = append(diagnostics, model.Diagnostic{
			Kind:     model.DiagTextureUnresolved,
			Filename: asset.Filename,
			Message:  "no repository found in textures map",
		})
	}

	return names, assets, diagnostics
}

// modelName returns the final path segment of modelURL as written, without
// percent-decoding. A URL ending in "/" has no model name.
func modelName(modelURL string) (string, error) {
	if modelURL == "" {
		return "", goerr.New("model URL is required", goerr.T(types.ErrTagInvalidArgument))
	}

	u, err := url.Parse(modelURL)
	if err != nil {
		return "", goerr.Wrap(err, "invalid model URL",
			goerr.V("model_url", modelURL),
			goerr.T(types.ErrTagInvalidArgument))
	}

	p := u.EscapedPath()
	name := p[strings.LastIndex(p, "/")+1:]
	if name == "" || name == "." || name == ".." {
		return "", goerr.New("model URL has no file name",
			goerr.V("model_url", modelURL),
			goerr.T(types.ErrTagInvalidArgument))
	}

	return name, nil
}
