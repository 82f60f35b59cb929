package fetcher

import (
	"context"
	"net/url"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/interfaces"
	"github.com/m-mizutani/texpack/pkg/domain/types"
)

// Router dispatches FetchBinary to a fetcher registered for the URL scheme
type Router struct {
	schemes map[string]interfaces.AssetFetcher
}

// NewRouter creates a Router that sends http and https URLs to httpFetcher
func NewRouter(httpFetcher interfaces.AssetFetcher) *Router {
	r := &Router{schemes: map[string]interfaces.AssetFetcher{}}
	r.Register("http", httpFetcher)
	r.Register("https", httpFetcher)
	return r
}

// Register sets the fetcher for scheme
func (r *Router) Register(scheme string, f interfaces.AssetFetcher) {
	r.schemes[strings.ToLower(scheme)] = f
}

// FetchBinary implements interfaces.AssetFetcher
func (r *Router) FetchBinary(ctx context.Context, rawURL string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, goerr.Wrap(err, "invalid URL",
			goerr.V("url", rawURL),
			goerr.T(types.ErrTagFetch))
	}

	f, ok := r.schemes[strings.ToLower(u.Scheme)]
	if !ok || f == nil {
		return nil, goerr.New("unsupported URL scheme",
			goerr.V("url", rawURL),
			goerr.V("scheme", u.Scheme),
			goerr.T(types.ErrTagFetch))
	}

	return f.FetchBinary(ctx, rawURL)
}

type hostTruster interface {
	TrustHosts(hosts ...string)
}

// TrustHosts forwards hosts to every registered fetcher that sends credentials
func (r *Router) TrustHosts(hosts ...string) {
	for _, f := range r.schemes {
		if t, ok := f.(hostTruster); ok {
			t.TrustHosts(hosts...)
		}
	}
}
