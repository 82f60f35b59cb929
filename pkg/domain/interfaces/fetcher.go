package interfaces

import "context"

// AssetFetcher retrieves binary content addressed by URL
type AssetFetcher interface {
	// FetchBinary returns the body of url. Transport failures and non-success
	// statuses are returned as errors tagged with types.ErrTagFetch.
	FetchBinary(ctx context.Context, url string) ([]byte, error)
}

// ArchiveWriter stores a finished archive and returns its location
type ArchiveWriter interface {
	Write(ctx context.Context, name string, data []byte) (string, error)
}
