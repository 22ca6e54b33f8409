package utils

import "strings"

// ContainsFold reports whether s contains substr, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// CleanQuery trims surrounding whitespace from a raw query string.
// Interior whitespace stays, multi word queries are valid.
func CleanQuery(q string) string {
	return strings.TrimSpace(q)
}
