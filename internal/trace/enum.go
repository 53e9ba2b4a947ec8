package trace

import (
	"fmt"
	"strings"
)

func enumName(names []string, i int) string {
	if i >= 0 && i < len(names) && names[i] != "" {
		return names[i]
	}
	return "unknown"
}

// parseEnum matches s case-insensitively against names; empty slots are
// not valid values.
func parseEnum(what string, names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	valid := make([]string, 0, len(names))
	for i, n := range names {
		if n == "" {
			continue
		}
		if n == s {
			return i, nil
		}
		valid = append(valid, n)
	}
	return 0, fmt.Errorf("invalid %s: %q (expected: %s)", what, s, strings.Join(valid, "|"))
}
