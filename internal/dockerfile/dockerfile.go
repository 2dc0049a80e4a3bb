// Package dockerfile renders the Dockerfile written for each base image.
package dockerfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"

	"mvdan.cc/sh/v3/syntax"

	"pydockerize/internal/assets"
)

// CanonicalName is the filename used when a single base image is configured.
const CanonicalName = "Dockerfile"

// ErrInvalidShell is returned when interpolated parameters break the shell
// syntax of a RUN instruction.
var ErrInvalidShell = errors.New("invalid shell in RUN instruction")

// Params are the inputs of Render.
type Params struct {
	BaseImage    string
	Requirements string
	IndexURL     string // optional
	Cmd          string // optional
	Entrypoint   string // optional
	Single       bool   // the only configured base image
}

// File is a rendered Dockerfile.
type File struct {
	BaseImage string
	Filename  string
	Text      string
}

var parsedTemplate = sync.OnceValues(func() (*template.Template, error) {
	src, err := assets.DockerfileTemplate()
	if err != nil {
		return nil, err
	}
	return template.New("Dockerfile").Option("missingkey=error").Parse(src)
})

// Filename returns "Dockerfile" for a single base image and
// "Dockerfile-<base image>" otherwise. The image name is used verbatim.
func Filename(baseImage string, single bool) string {
	if single {
		return CanonicalName
	}
	return CanonicalName + "-" + baseImage
}

// Render produces the Dockerfile for p. It has no side effects.
func Render(p Params) (File, error) {
	if strings.TrimSpace(p.BaseImage) == "" {
		return File{}, errors.New("render: base image is empty")
	}
	tmpl, err := parsedTemplate()
	if err != nil {
		return File{}, fmt.Errorf("render: %w", err)
	}

	flag := ""
	if p.IndexURL != "" {
		flag = "--index-url=" + p.IndexURL + " "
	}
	data := map[string]string{
		"BaseImage":    p.BaseImage,
		"Requirements": p.Requirements,
		"IndexURLFlag": flag,
		"Entrypoint":   p.Entrypoint,
		"Cmd":          p.Cmd,
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return File{}, fmt.Errorf("render %s: %w", p.BaseImage, err)
	}
	text := buf.String()
	if err := checkRunLines(text); err != nil {
		return File{}, fmt.Errorf("render %s: %w", p.BaseImage, err)
	}

	return File{
		BaseImage: p.BaseImage,
		Filename:  Filename(p.BaseImage, p.Single),
		Text:      text,
	}, nil
}

// Write stores f in dir, replacing any existing file of the same name.
// It returns the path written.
func Write(dir string, f File) (string, error) {
	path := filepath.Join(dir, f.Filename)
	if err := os.WriteFile(path, []byte(f.Text), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", f.Filename, err)
	}
	return path, nil
}

// checkRunLines parses the shell of every RUN instruction.
func checkRunLines(text string) error {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	for i, line := range strings.Split(text, "\n") {
		script, ok := strings.CutPrefix(line, "RUN ")
		if !ok {
			continue
		}
		if _, err := parser.Parse(strings.NewReader(script), "RUN"); err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidShell, i+1, err)
		}
	}
	return nil
}
