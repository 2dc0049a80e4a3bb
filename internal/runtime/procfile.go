package runtime

import (
	"fmt"
	"io"
	"strings"
)

// ReadProcfile extracts the command from a single-process Procfile such as
// "web: gunicorn app:app". Only one line is supported; an empty file has
// no command.
func ReadProcfile(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read procfile: %w", err)
	}

	lines := strings.SplitAfter(string(data), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	switch {
	case len(lines) == 0:
		return "", nil
	case len(lines) > 1:
		return "", fmt.Errorf("%w: expected exactly one line, got %d", ErrMalformedProcfile, len(lines))
	}

	_, cmd, ok := strings.Cut(lines[0], ":")
	if !ok {
		return "", fmt.Errorf("%w: missing ':' after process type", ErrMalformedProcfile)
	}
	return strings.TrimSpace(cmd), nil
}
