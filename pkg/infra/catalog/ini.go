package catalog

import (
	"regexp"
	"strings"
)

var iniSection = regexp.MustCompile(`^\[(.+?)\]$`)

// parseINI reads "[repository-url]" sections, each followed by one file name
// per line. Blank lines and lines starting with ';' or '#' are skipped, as are
// entries before the first section.
func parseINI(data []byte) []Repository {
	var repos []Repository
	current := -1

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(strings.TrimSuffix(line, "\r"))
		if line == "" || strings.HasPrefix(line, ";") || strings.HasPrefix(line, "#") {
			continue
		}

		if m := iniSection.FindStringSubmatch(line); m != nil {
			repos = append(repos, Repository{URL: m[1]})
			current = len(repos) - 1
			continue
		}

		if current >= 0 {
			repos[current].Files = append(repos[current].Files, line)
		}
	}

	return repos
}
