package catalog

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/texpack/pkg/domain/types"
	"gopkg.in/yaml.v3"
)

type yamlCatalog struct {
	Repositories []Repository `yaml:"repositories"`
}

func parseYAML(data []byte) ([]Repository, error) {
	var c yamlCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, goerr.Wrap(err, "invalid YAML catalog", goerr.T(types.ErrTagCatalog))
	}
	return c.Repositories, nil
}
