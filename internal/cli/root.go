// Package cli contains the pydockerize command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"pydockerize/internal/envfile"
	"pydockerize/internal/executil"
	"pydockerize/internal/runtime"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"
)

// rootState is what the commands of one command tree share. Nothing in it
// is package-level, so every tree (and every test) is independent.
type rootState struct {
	v       *viper.Viper
	cfgFile string
	verbose bool
	logger  *log.Logger

	// newRunner builds the engine runner once the config is resolved.
	newRunner func(cfg runtime.Config, logger *log.Logger) executil.Runner
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(&rootState{
		newRunner: func(cfg runtime.Config, logger *log.Logger) executil.Runner {
			return executil.NewExec(cfg.DryRun(), logger.WithPrefix("exec"))
		},
	})
}

func newRootCmd(s *rootState) *cobra.Command {
	s.v = viper.New()

	root := &cobra.Command{
		Use:   "pydockerize",
		Short: "Create Docker images for Python apps",
		Long: TitleStyle.Render("pydockerize") + SubtitleStyle.Render(" - Create Docker images for Python apps") + `

pydockerize writes a Dockerfile per base image, builds them with docker
(or podman), lists the results and runs them. Steps can be chained in one
invocation and share the same configuration.

` + SubtitleStyle.Render("Examples:") + `
  pydockerize generate
  pydockerize -t myapp --python-versions 2.7,3.4 generate build images
  pydockerize -t myapp --cmd 'gunicorn app:app' generate build run -- --rm`,
		SilenceUsage:      true,
		PersistentPreRunE: s.setup,
	}

	pf := root.PersistentFlags()
	pf.StringSliceP("base-images", "b", nil, `base images (comma-separated), e.g. "python:2.7-onbuild,python:3.4-onbuild"`)
	pf.StringSlice("python-versions", nil, `python versions (comma-separated), e.g. "2.7,3.4"; mutually exclusive with --base-images`)
	pf.String("cmd", "", "default command of the container (CMD); mutually exclusive with --procfile")
	pf.String("entrypoint", "", "fixed entry command of the container (ENTRYPOINT)")
	pf.String("procfile", "", "single-line Procfile to take the command from (default ./Procfile when present)")
	pf.StringP("tag", "t", "", "repository name applied to built images; a per-image tag is appended")
	pf.StringP("requirements", "r", runtime.DefaultRequirements, "pip requirements file")
	pf.StringP("index-url", "i", "", "base URL of the Python package index")
	pf.String("engine", runtime.DefaultEngine, "container engine binary (docker or podman)")
	pf.String("env-file", envfile.DefaultPath, "environment file providing PORT and $VAR substitutions")
	pf.StringP("directory", "C", "", "run as if pydockerize was started in this directory")
	pf.Bool("dry-run", false, "print engine commands instead of running them")
	pf.Bool("preview", false, "print each generated Dockerfile")
	pf.StringVar(&s.cfgFile, "config", "", "config file (default is ./.pydockerize.{yaml,toml,json})")
	pf.BoolVarP(&s.verbose, "verbose", "v", false, "enable verbose output")
	_ = s.v.BindPFlags(pf)

	s.v.SetEnvPrefix("PYDOCKERIZE")
	s.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	s.v.AutomaticEnv()

	root.AddCommand(
		newStepCmd(s, runtime.StepGenerate, "Write a Dockerfile per base image"),
		newStepCmd(s, runtime.StepBuild, "Build an image per base image"),
		newStepCmd(s, runtime.StepImages, "List the images built for the tag"),
		newStepCmd(s, runtime.StepRun, "Run the built images interactively"),
		newConfigCmd(s),
	)
	return root
}

// setup reads the config file and sets up logging. Runs before every subcommand.
func (s *rootState) setup(cmd *cobra.Command, _ []string) error {
	if err := s.readConfigFile(); err != nil {
		return err
	}

	s.logger = log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "pydockerize"})
	s.verbose = s.verbose || s.v.GetBool("verbose")
	if s.verbose {
		s.logger.SetLevel(log.DebugLevel)
	}
	return nil
}

func (s *rootState) readConfigFile() error {
	if s.cfgFile != "" {
		s.v.SetConfigFile(s.cfgFile)
		if err := s.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", s.cfgFile, err)
		}
		return nil
	}

	dir := s.v.GetString("directory")
	if dir == "" {
		dir = "."
	}
	s.v.SetConfigName(".pydockerize")
	s.v.AddConfigPath(dir)
	if err := s.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}
	return nil
}

// resolve builds the immutable configuration shared by every step.
func (s *rootState) resolve() (runtime.Config, error) {
	return runtime.Resolve(runtime.Options{
		BaseImages:     stringList(s.v, "base-images"),
		PythonVersions: stringList(s.v, "python-versions"),
		Cmd:            s.v.GetString("cmd"),
		Entrypoint:     s.v.GetString("entrypoint"),
		Procfile:       s.v.GetString("procfile"),
		Tag:            s.v.GetString("tag"),
		Requirements:   s.v.GetString("requirements"),
		IndexURL:       s.v.GetString("index-url"),
		Engine:         s.v.GetString("engine"),
		EnvFile:        s.v.GetString("env-file"),
		WorkDir:        s.v.GetString("directory"),
		DryRun:         s.v.GetBool("dry-run"),
	})
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute runs the command tree and exits with the engine's status on failure.
// This is called by main.main().
func Execute() {
	if err := run(context.Background(), NewRootCmd(), os.Args[1:]); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, root *cobra.Command, args []string) error {
	root.SetArgs(args)
	return fang.Execute(
		ctx,
		root,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	)
}
