package catalog

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/types"
	"github.com/pelletier/go-toml/v2"
)

type tomlCatalog struct {
	Repository []Repository `toml:"repository"`
}

func parseTOML(data []byte) ([]Repository, error) {
	var c tomlCatalog
	if err := toml.Unmarshal(data, &c); err != nil {
		return nil, goerr.Wrap(err, "invalid TOML catalog", goerr.T(types.ErrTagCatalog))
	}
	return c.Repository, nil
}
