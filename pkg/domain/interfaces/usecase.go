package interfaces

import (
	"context"

	"github.com/m-mizutani/texpack/pkg/domain/model"
)

// BundleUseCase defines the model + textures bundling operations
type BundleUseCase interface {
	// Bundle fetches the model and every resolvable texture it references and
	// packs them into one archive. Only model fetch and archive assembly
	// failures are returned as errors.
	Bundle(ctx context.Context, modelURL string, texturesMap model.TexturesMap) (*model.BundleResult, error)

	// Inspect fetches the model and reports extracted and resolved textures
	// without fetching them
	Inspect(ctx context.Context, modelURL string, texturesMap model.TexturesMap) (*model.BundlePlan, error)
}
