// internal/docker/build.go
package docker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"pydockerize/internal/dockerfile"
	"pydockerize/internal/executil"
)

// ErrBuildFailed is wrapped by every *BuildError.
var ErrBuildFailed = errors.New("build failed")

// BuildError reports a build that the engine rejected.
type BuildError struct {
	Code       int
	Dockerfile string
	Tag        string
}

func (e *BuildError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("build of %s (%s) failed with %d", e.Tag, e.Dockerfile, e.Code)
	}
	return fmt.Sprintf("build of %s failed with %d", e.Dockerfile, e.Code)
}

func (e *BuildError) Unwrap() error { return ErrBuildFailed }

// ExitCode is the engine's exit status.
func (e *BuildError) ExitCode() int { return e.Code }

// Engine drives a docker-compatible CLI (docker, podman).
type Engine struct {
	binary string
	dir    string
	dryRun bool
	runner executil.Runner
	log    *log.Logger
}

// NewEngine returns an Engine invoking binary in dir through runner.
func NewEngine(binary, dir string, dryRun bool, runner executil.Runner, logger *log.Logger) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	return &Engine{binary: binary, dir: dir, dryRun: dryRun, runner: runner, log: logger}
}

// Binary is the engine executable.
func (e *Engine) Binary() string { return e.binary }

// BuildArgs assembles the argument vector of a build:
// build [--tag TAG] [--file FILE] CONTEXT
func BuildArgs(opts BuildOptions) []string {
	df := strings.TrimSpace(opts.Dockerfile)
	if df == "" {
		df = dockerfile.CanonicalName
	}
	ctxPath := strings.TrimSpace(opts.ContextPath)
	if ctxPath == "" {
		ctxPath = "."
	}

	args := []string{"build"}
	if opts.Tag != "" {
		args = append(args, "--tag", opts.Tag)
	}
	if df != dockerfile.CanonicalName {
		args = append(args, "--file", df)
	}
	return append(args, ctxPath)
}

// Build runs the engine's build command and waits for it. A non-zero exit
// yields *BuildError.
func (e *Engine) Build(ctx context.Context, opts BuildOptions) error {
	df := strings.TrimSpace(opts.Dockerfile)
	if df == "" {
		df = dockerfile.CanonicalName
	}

	// Only validate filesystem when not in dry-run
	if !e.dryRun {
		path := df
		if !filepath.IsAbs(path) {
			path = filepath.Join(e.dir, df)
		}
		if st, err := os.Stat(path); err != nil || st.IsDir() {
			return fmt.Errorf("build: Dockerfile %q not found or not a file", df)
		}
	}

	args := BuildArgs(opts)
	e.log.Info("build plan",
		"tag", formatOrNone(opts.Tag),
		"dockerfile", absOr(filepath.Join(e.dir, df), df),
		"context", first(opts.ContextPath, "."))

	err := e.runner.Run(ctx, executil.Cmd{Name: e.binary, Args: args, Dir: e.dir})
	if err == nil {
		return nil
	}
	var exitErr *executil.ExitError
	if errors.As(err, &exitErr) {
		return &BuildError{Code: exitErr.ExitCode(), Dockerfile: df, Tag: opts.Tag}
	}
	return fmt.Errorf("%s build: %w", e.binary, err)
}
