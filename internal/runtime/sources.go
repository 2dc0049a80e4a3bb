package runtime

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pydockerize/internal/envfile"
	"pydockerize/internal/version"
)

var (
	// ErrConflictingSources is returned when two mutually exclusive inputs
	// are both supplied.
	ErrConflictingSources = errors.New("conflicting sources")
	// ErrMalformedProcfile is returned for a Procfile that is not a single
	// "type: command" line.
	ErrMalformedProcfile = errors.New("malformed procfile")
)

// DefaultBaseImages is used when neither base images nor python versions
// are configured.
var DefaultBaseImages = []string{"python:2.7-onbuild"}

// DefaultProcfileName is picked up from the working directory when no
// command source is configured.
const DefaultProcfileName = "Procfile"

// ImageSource is one of ExplicitImages, PythonVersions or DefaultImages.
// Use NewImageSource so that at most one source is ever in play.
type ImageSource interface {
	Images() ([]string, error)
	Kind() string
}

// ExplicitImages lists base images verbatim.
type ExplicitImages []string

// PythonVersions expands each version to the matching onbuild image.
type PythonVersions []string

// DefaultImages resolves to DefaultBaseImages.
type DefaultImages struct{}

func (s ExplicitImages) Images() ([]string, error) {
	return append([]string(nil), s...), nil
}

func (ExplicitImages) Kind() string { return "base-images" }

func (s PythonVersions) Images() ([]string, error) {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if _, err := version.ParsePython(v); err != nil {
			return nil, err
		}
		out = append(out, version.OnbuildImage(v))
	}
	return out, nil
}

func (PythonVersions) Kind() string { return "python-versions" }

func (DefaultImages) Images() ([]string, error) {
	return append([]string(nil), DefaultBaseImages...), nil
}

func (DefaultImages) Kind() string { return "default" }

// NewImageSource picks the image source from the two optional lists.
// Blank entries are ignored.
func NewImageSource(images, versions []string) (ImageSource, error) {
	images, versions = cleanList(images), cleanList(versions)
	switch {
	case len(images) > 0 && len(versions) > 0:
		return nil, fmt.Errorf("%w: base images and python versions are mutually exclusive", ErrConflictingSources)
	case len(images) > 0:
		return ExplicitImages(images), nil
	case len(versions) > 0:
		return PythonVersions(versions), nil
	default:
		return DefaultImages{}, nil
	}
}

// CommandSource is one of ExplicitCommand, ProcfileCommand or
// DefaultProcfile. Command returns "" when no command could be determined.
type CommandSource interface {
	Command(dir string, env map[string]string) (string, error)
	Kind() string
}

// ExplicitCommand is a command given on the command line.
type ExplicitCommand string

// ProcfileCommand names a Procfile that must exist.
type ProcfileCommand string

// DefaultProcfile reads DefaultProcfileName when it exists.
type DefaultProcfile struct{}

func (c ExplicitCommand) Command(_ string, env map[string]string) (string, error) {
	return envfile.Expand(string(c), env), nil
}

func (ExplicitCommand) Kind() string { return "cmd" }

func (c ProcfileCommand) Command(dir string, env map[string]string) (string, error) {
	return commandFromProcfile(resolvePath(dir, string(c)), env)
}

func (ProcfileCommand) Kind() string { return "procfile" }

func (DefaultProcfile) Command(dir string, env map[string]string) (string, error) {
	path := filepath.Join(dir, DefaultProcfileName)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return commandFromProcfile(path, env)
}

func (DefaultProcfile) Kind() string { return "default" }

// NewCommandSource picks the command source from an explicit command and a
// Procfile path.
func NewCommandSource(cmd, procfile string) (CommandSource, error) {
	cmd, procfile = strings.TrimSpace(cmd), strings.TrimSpace(procfile)
	switch {
	case cmd != "" && procfile != "":
		return nil, fmt.Errorf("%w: cmd and procfile are mutually exclusive", ErrConflictingSources)
	case cmd != "":
		return ExplicitCommand(cmd), nil
	case procfile != "":
		return ProcfileCommand(procfile), nil
	default:
		return DefaultProcfile{}, nil
	}
}

func commandFromProcfile(path string, env map[string]string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open procfile: %w", err)
	}
	defer f.Close()

	cmd, err := ReadProcfile(f)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return envfile.Expand(cmd, env), nil
}
