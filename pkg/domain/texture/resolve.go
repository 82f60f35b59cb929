package texture

import (
	"strings"

	"github.com/m-mizutani/texpack/pkg/domain/model"
)

// Resolve looks up each filename in texturesMap. Filenames without an entry
// (or with an empty base) are returned with Resolved=false. Duplicate input names yield one outcome.
func Resolve(names []string, texturesMap model.TexturesMap) []model.ResolvedAsset {
	seen := make(map[string]struct{}, len(names))
	assets := make([]model.ResolvedAsset, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		base, ok := texturesMap[name]
		if !ok || base == "" {
			assets = append(assets, model.ResolvedAsset{Filename: name})
			continue
		}

		assets = append(assets, model.ResolvedAsset{
			Filename: name,
			URL:      JoinURL(base, name),
			Resolved: true,
		})
	}

	return assets
}

// JoinURL joins a repository base location and a filename with exactly one slash
func JoinURL(base, name string) string {
	return strings.TrimRight(base, "/") + "/" + name
}
