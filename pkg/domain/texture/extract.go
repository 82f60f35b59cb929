package texture

import (
	"regexp"
	"slices"
	"strings"
)

// Extractor recovers referenced texture filenames from a scanned model
type Extractor interface {
	Extract(text string) []string
}

// PatternExtractor is a named regular expression with a normalization step.
// It is the default strategy until a format-aware parser replaces it.
type PatternExtractor struct {
	Name      string
	Pattern   *regexp.Regexp
	Normalize func(match string) string
}

// DDSExtractor matches path-like tokens ending with ".dds", case-insensitive
var DDSExtractor = &PatternExtractor{
	Name:      "dds",
	Pattern:   regexp.MustCompile(`(?i)[\w\-/\\]+\.dds`),
	Normalize: NormalizeFilename,
}

// Extract returns the sorted set of normalized filenames matched in text
func (x *PatternExtractor) Extract(text string) []string {
	matches := x.Pattern.FindAllString(text, -1)
	if len(matches) == 0 {
		return []string{}
	}

	seen := make(map[string]struct{}, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m
		if x.Normalize != nil {
			name = x.Normalize(m)
		}
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

// NormalizeFilename converts backslashes to slashes, drops everything up to
// the last slash and lowercases the result
func NormalizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	return strings.ToLower(name)
}
