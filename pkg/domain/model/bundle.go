package model

import (
	"net/url"
	"slices"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/types"
)

// TexturesMap maps a normalized texture filename (lowercase, no path) to the
// base URL of the repository hosting it
type TexturesMap map[string]string

// Hosts returns the distinct hosts of the repository bases, sorted
func (m TexturesMap) Hosts() []string {
	var hosts []string
	for _, base := range m {
		u, err := url.Parse(base)
		if err != nil || u.Host == "" {
			continue
		}
		host := strings.ToLower(u.Host)
		if !slices.Contains(hosts, host) {
			hosts = append(hosts, host)
		}
	}
	slices.Sort(hosts)
	return hosts
}

// ModelReference is the model binary fetched for one bundling operation
type ModelReference struct {
	URL  string // Source location
	Name string // Final path segment of URL, stored unchanged in the archive
	Data []byte
}

// ResolvedAsset is the resolution outcome of one extracted filename
type ResolvedAsset struct {
	Filename string `json:"filename"`
	URL      string `json:"url,omitempty"`
	Resolved bool   `json:"resolved"`
}

// FetchedEntry is a named binary entry ready to be archived
type FetchedEntry struct {
	Name string
	Data []byte
}

// BundleResult is the archive produced by a bundling operation
type BundleResult struct {
	ID          string       // Bundle ID for log correlation
	Filename    string       // Suggested download filename
	Data        []byte       // ZIP archive content
	Model       string       // Archive entry name of the model
	Textures    []string     // Archive entry names of bundled textures
	Diagnostics []Diagnostic // Non-fatal asset level failures
}

// Entries returns the number of entries in the archive
func (r *BundleResult) Entries() int {
	return 1 + len(r.Textures)
}

// BundlePlan is the result of inspecting a model without fetching textures
type BundlePlan struct {
	ID          string          `json:"id"`
	Model       string          `json:"model"`
	Filename    string          `json:"filename"`
	Extracted   []string        `json:"extracted"`
	Assets      []ResolvedAsset `json:"assets"`
	Diagnostics []Diagnostic    `json:"diagnostics"`
}

// ErrorKind classifies a failed bundling operation
type ErrorKind string

const (
	ErrorKindModelFetch      ErrorKind = "model_fetch"
	ErrorKindArchiveAssembly ErrorKind = "archive_assembly"
	ErrorKindInvalidArgument ErrorKind = "invalid_argument"
	ErrorKindUnknown         ErrorKind = "unknown"
)

// KindOf returns the ErrorKind of err based on its goerr tags
func KindOf(err error) ErrorKind {
	switch {
	case goerr.HasTag(err, types.ErrTagModelFetch):
		return ErrorKindModelFetch
	case goerr.HasTag(err, types.ErrTagArchiveAssembly):
		return ErrorKindArchiveAssembly
	case goerr.HasTag(err, types.ErrTagInvalidArgument):
		return ErrorKindInvalidArgument
	default:
		return ErrorKindUnknown
	}
}
