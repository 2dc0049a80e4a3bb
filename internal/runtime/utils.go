package runtime

import (
	"path/filepath"
	"strings"
)

// --- helpers ---
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
func formatOrNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "<none>"
	}
	return s
}
func emoji(b bool) string {
	if b {
		return "✅"
	}
	return "❌"
}

// cleanList trims entries and drops blanks, keeping order.
func cleanList(in []string) []string {
	var out []string
	for _, v := range in {
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}
