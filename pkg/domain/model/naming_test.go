package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/texpack/pkg/domain/model"
)

func TestNamingRule_ArchiveName(t *testing.T) {
	tests := []struct {
		name      string
		rule      model.NamingRule
		modelName string
		expected  string
	}{
		{
			name:      "Default rule strips .m3",
			rule:      model.DefaultNamingRule(),
			modelName: "unit_x.m3",
			expected:  "unit_x_with_textures.zip",
		},
		{
			name:      "Default rule keeps other extensions",
			rule:      model.DefaultNamingRule(),
			modelName: "unit_x.m3x",
			expected:  "unit_x.m3x_with_textures.zip",
		},
		{
			name:      "Suffix only stripped at the end",
			rule:      model.DefaultNamingRule(),
			modelName: "a.m3.bak",
			expected:  "a.m3.bak_with_textures.zip",
		},
		{
			name:      "Custom strip suffix",
			rule:      model.NamingRule{StripSuffix: ".rsm", ArchiveSuffix: ".zip"},
			modelName: "tree.rsm",
			expected:  "tree.zip",
		},
		{
			name:      "Empty strip suffix",
			rule:      model.NamingRule{ArchiveSuffix: "_bundle.zip"},
			modelName: "unit.m3",
			expected:  "unit.m3_bundle.zip",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Equal(t, tt.rule.ArchiveName(tt.modelName), tt.expected)
		})
	}
}
