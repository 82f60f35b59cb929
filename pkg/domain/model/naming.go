package model

import "strings"

const (
	DefaultStripSuffix   = ".m3"
	DefaultArchiveSuffix = "_with_textures.zip"
)

// NamingRule derives the archive filename from the model filename
type NamingRule struct {
	StripSuffix   string // Removed from the end of the model name if present
	ArchiveSuffix string // Appended to the remaining name
}

// DefaultNamingRule returns the rule producing "<name>_with_textures.zip" from "<name>.m3"
func DefaultNamingRule() NamingRule {
	return NamingRule{
		StripSuffix:   DefaultStripSuffix,
		ArchiveSuffix: DefaultArchiveSuffix,
	}
}

// ArchiveName returns the archive filename for modelName
func (r NamingRule) ArchiveName(modelName string) string {
	base := modelName
	if r.StripSuffix != "" {
		base = strings.TrimSuffix(base, r.StripSuffix)
	}
	return base + r.ArchiveSuffix
}
