package types

import "github.com/m-mizutani/goerr/v2"

// Error tags used to classify failures across layers
var (
	// ErrTagFetch marks a failed binary fetch (transport error or non-success status)
	ErrTagFetch = goerr.NewTag("fetch")

	// ErrTagModelFetch marks a fatal failure to retrieve the model binary
	ErrTagModelFetch = goerr.NewTag("model_fetch")

	// ErrTagArchiveAssembly marks a fatal failure while building the archive
	ErrTagArchiveAssembly = goerr.NewTag("archive_assembly")

	// ErrTagCatalog marks a failure while loading a textures catalog
	ErrTagCatalog = goerr.NewTag("catalog")

	// ErrTagInvalidArgument marks invalid user input
	ErrTagInvalidArgument = goerr.NewTag("invalid_argument")
)
