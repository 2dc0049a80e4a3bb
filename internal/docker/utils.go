package docker

import (
	"path/filepath"
	"strings"
)

// ---- FS helpers ----

func absOr(p, fallback string) string {
	if a, err := filepath.Abs(p); err == nil {
		return a
	}
	return fallback
}

// first non-empty
func first(a, b string) string {
	if strings.TrimSpace(a) != "" {
		return a
	}
	return b
}

func formatOrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "<none>"
	}
	return s
}
