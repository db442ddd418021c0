package usecase

import (
	"regexp"
	"strings"
)

var commentLine = regexp.MustCompile(`^\s*#`)

// parseConfigLines folds key=value lines into a flat map.
//
// Comment lines (optional leading whitespace, then '#') and blank lines are
// skipped. Each remaining line is split on its first '=' and both sides are
// trimmed; later lines overwrite earlier ones. A line without '=' yields the
// key with an empty value.
func parseConfigLines(lines []string) map[string]string {
	out := make(map[string]string, len(lines))
	for _, line := range lines {
		if commentLine.MatchString(line) || strings.TrimSpace(line) == "" {
			continue
		}
		k, v, _ := strings.Cut(line, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}
