// Package app runs a chain of pydockerize steps against one resolved
// configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"pydockerize/internal/docker"
	"pydockerize/internal/dockerfile"
	"pydockerize/internal/executil"
	"pydockerize/internal/runtime"
)

// ErrTagRequired is returned when run is requested without a tag prefix:
// untagged images cannot be referred to by name.
var ErrTagRequired = errors.New("a tag is required to run an image")

// App executes steps. It holds no state besides its collaborators.
type App struct {
	cfg     runtime.Config
	engine  *docker.Engine
	out     io.Writer
	log     *log.Logger
	preview func(dockerfile.File) error
}

// Option configures an App.
type Option func(*App)

// WithOutput sets where headers and previews are printed (default stdout).
func WithOutput(w io.Writer) Option {
	return func(a *App) { a.out = w }
}

// WithLogger sets the base logger; components derive prefixed loggers from it.
func WithLogger(l *log.Logger) Option {
	return func(a *App) { a.log = l }
}

// WithPreview registers a callback invoked with every generated Dockerfile.
func WithPreview(fn func(dockerfile.File) error) Option {
	return func(a *App) { a.preview = fn }
}

// New builds an App whose engine commands go through runner.
func New(cfg runtime.Config, runner executil.Runner, opts ...Option) *App {
	a := &App{cfg: cfg, out: os.Stdout}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = log.Default()
	}
	a.engine = docker.NewEngine(cfg.Engine(), cfg.WorkDir(), cfg.DryRun(), runner, a.log.WithPrefix(cfg.Engine()))
	return a
}

// Execute runs steps in order and stops at the first failure. Everything
// that can be checked up front (tag prefix, run prerequisites) is checked
// before the first step touches the filesystem or the engine.
func (a *App) Execute(ctx context.Context, steps []runtime.Step, runArgs []string) error {
	targets, err := docker.PlanTargets(a.cfg)
	if err != nil {
		return err
	}
	for _, s := range steps {
		if s == runtime.StepRun && a.cfg.Tag() == "" {
			return ErrTagRequired
		}
	}

	for _, s := range steps {
		switch s {
		case runtime.StepGenerate:
			err = a.Generate(targets)
		case runtime.StepBuild:
			err = a.Build(ctx, targets)
		case runtime.StepImages:
			err = a.Images(ctx)
		case runtime.StepRun:
			err = a.Run(ctx, targets, runArgs)
		default:
			err = fmt.Errorf("%w: %q", runtime.ErrUnknownStep, s)
		}
		if err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
	}
	return nil
}

// Generate renders and writes one Dockerfile per target.
func (a *App) Generate(targets []docker.Target) error {
	logger := a.log.WithPrefix("generate")
	for _, t := range targets {
		f, err := dockerfile.Render(dockerfile.Params{
			BaseImage:    t.BaseImage,
			Requirements: a.cfg.Requirements(),
			IndexURL:     a.cfg.IndexURL(),
			Cmd:          a.cfg.Cmd(),
			Entrypoint:   a.cfg.Entrypoint(),
			Single:       a.cfg.Single(),
		})
		if err != nil {
			return err
		}
		path, err := dockerfile.Write(a.cfg.WorkDir(), f)
		if err != nil {
			return err
		}
		logger.Info("wrote Dockerfile", "base_image", t.BaseImage, "path", path)

		if a.preview != nil {
			if err := a.preview(f); err != nil {
				return fmt.Errorf("preview %s: %w", f.Filename, err)
			}
		}
	}
	return nil
}

// Build builds every target in order, stopping at the first failure.
func (a *App) Build(ctx context.Context, targets []docker.Target) error {
	for _, t := range targets {
		if err := a.engine.Build(ctx, docker.BuildOptionsFor(t)); err != nil {
			return err
		}
		a.log.Info("build succeeded", "base_image", t.BaseImage, "tag", t.Tag)
	}
	return nil
}

// Images lists the images of the configured repository.
func (a *App) Images(ctx context.Context) error {
	if tag := a.cfg.Tag(); tag != "" {
		fmt.Fprintf(a.out, "\nShowing images for %s:\n\n", tag)
	}
	return a.engine.Images(ctx, a.cfg.Tag())
}

// Run starts a container for every target in order.
func (a *App) Run(ctx context.Context, targets []docker.Target, extra []string) error {
	if a.cfg.Tag() == "" {
		return ErrTagRequired
	}
	for _, t := range targets {
		if err := a.engine.Run(ctx, docker.RunOptionsFor(a.cfg, t, extra)); err != nil {
			return err
		}
	}
	return nil
}
