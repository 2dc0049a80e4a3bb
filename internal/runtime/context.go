package runtime

import (
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"sort"
	"strings"

	"pydockerize/internal/envfile"
)

const (
	// DefaultRequirements is the dependency manifest used when none is configured.
	DefaultRequirements = "requirements.txt"
	// DefaultEngine is the container engine binary used when none is configured.
	DefaultEngine = "docker"
)

// Options are the raw, unresolved inputs gathered from flags, environment
// variables and config files.
type Options struct {
	BaseImages     []string
	PythonVersions []string
	Cmd            string
	Entrypoint     string
	Procfile       string
	Tag            string
	Requirements   string
	IndexURL       string
	Engine         string
	EnvFile        string
	WorkDir        string
	DryRun         bool
}

// Config is the resolved configuration of one invocation. It is built once
// by Resolve and only read afterwards; accessors hand out copies.
type Config struct {
	images       []string
	imageSource  string
	requirements string
	indexURL     string
	cmd          string
	cmdSource    string
	entrypoint   string
	tag          string
	engine       string
	workDir      string
	envFile      string
	dryRun       bool
	env          map[string]string
}

// Resolve validates opts and builds the Config. Mutually exclusive inputs
// are rejected before any file is read.
func Resolve(opts Options) (Config, error) {
	images, err := NewImageSource(opts.BaseImages, opts.PythonVersions)
	if err != nil {
		return Config{}, err
	}
	cmds, err := NewCommandSource(opts.Cmd, opts.Procfile)
	if err != nil {
		return Config{}, err
	}

	workDir := strings.TrimSpace(opts.WorkDir)
	if workDir == "" {
		workDir = "."
	}
	if workDir, err = filepath.Abs(workDir); err != nil {
		return Config{}, fmt.Errorf("resolve working directory: %w", err)
	}

	envFile := firstNonEmpty(opts.EnvFile, envfile.DefaultPath)
	env, err := envfile.Load(resolvePath(workDir, envFile))
	if err != nil {
		return Config{}, err
	}

	imgs, err := images.Images()
	if err != nil {
		return Config{}, fmt.Errorf("resolve images: %w", err)
	}
	cmd, err := cmds.Command(workDir, env)
	if err != nil {
		return Config{}, fmt.Errorf("resolve command: %w", err)
	}

	return Config{
		images:       imgs,
		imageSource:  images.Kind(),
		requirements: firstNonEmpty(opts.Requirements, DefaultRequirements),
		indexURL:     strings.TrimSpace(opts.IndexURL),
		cmd:          cmd,
		cmdSource:    cmds.Kind(),
		entrypoint:   strings.TrimSpace(opts.Entrypoint),
		tag:          strings.TrimSpace(opts.Tag),
		engine:       firstNonEmpty(opts.Engine, DefaultEngine),
		workDir:      workDir,
		envFile:      envFile,
		dryRun:       opts.DryRun,
		env:          env,
	}, nil
}

// Images returns the base images in render and build order.
func (c Config) Images() []string { return append([]string(nil), c.images...) }

// Single reports whether exactly one base image is configured.
func (c Config) Single() bool { return len(c.images) == 1 }

func (c Config) Requirements() string { return c.requirements }
func (c Config) IndexURL() string     { return c.indexURL }

// Cmd is the container's default command, or "" for none.
func (c Config) Cmd() string { return c.cmd }

// Entrypoint is the container's fixed entry command, or "" for none.
func (c Config) Entrypoint() string { return c.entrypoint }

// Tag is the tag prefix (repository name), or "" when images stay untagged.
func (c Config) Tag() string     { return c.tag }
func (c Config) Engine() string  { return c.engine }
func (c Config) WorkDir() string { return c.workDir }
func (c Config) DryRun() bool    { return c.dryRun }

// Env looks up a key from the parsed environment file.
func (c Config) Env(key string) (string, bool) {
	v, ok := c.env[key]
	return v, ok
}

// Summary is a serializable view of a Config.
type Summary struct {
	BaseImages   []string          `json:"base_images" yaml:"base_images" toml:"base_images"`
	ImageSource  string            `json:"image_source" yaml:"image_source" toml:"image_source"`
	Requirements string            `json:"requirements" yaml:"requirements" toml:"requirements"`
	IndexURL     string            `json:"index_url,omitempty" yaml:"index_url,omitempty" toml:"index_url,omitempty"`
	Cmd          string            `json:"cmd,omitempty" yaml:"cmd,omitempty" toml:"cmd,omitempty"`
	CmdSource    string            `json:"cmd_source" yaml:"cmd_source" toml:"cmd_source"`
	Entrypoint   string            `json:"entrypoint,omitempty" yaml:"entrypoint,omitempty" toml:"entrypoint,omitempty"`
	Tag          string            `json:"tag,omitempty" yaml:"tag,omitempty" toml:"tag,omitempty"`
	Engine       string            `json:"engine" yaml:"engine" toml:"engine"`
	WorkDir      string            `json:"work_dir" yaml:"work_dir" toml:"work_dir"`
	EnvFile      string            `json:"env_file" yaml:"env_file" toml:"env_file"`
	DryRun       bool              `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Env          map[string]string `json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty"`
}

// Summary returns a copy of the configuration suitable for encoding.
func (c Config) Summary() Summary {
	return Summary{
		BaseImages:   c.Images(),
		ImageSource:  c.imageSource,
		Requirements: c.requirements,
		IndexURL:     c.indexURL,
		Cmd:          c.cmd,
		CmdSource:    c.cmdSource,
		Entrypoint:   c.entrypoint,
		Tag:          c.tag,
		Engine:       c.engine,
		WorkDir:      c.workDir,
		EnvFile:      c.envFile,
		DryRun:       c.dryRun,
		Env:          maps.Clone(c.env),
	}
}

// PrintSummary writes a scannable report of the resolved configuration.
func (c Config) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "pydockerize Configuration")
	fmt.Fprintln(w, "-------------------------")

	// ── Images ──────────────────────────────────────────────────────────────────
	fmt.Fprintln(w, "Images")
	fmt.Fprintf(w, "  Source                : %s\n", c.imageSource)
	for _, img := range c.images {
		fmt.Fprintf(w, "  Base Image            : %s\n", img)
	}
	fmt.Fprintf(w, "  Tag Prefix            : %s\n", formatOrNone(c.tag))
	fmt.Fprintln(w)

	// ── Container ───────────────────────────────────────────────────────────────
	fmt.Fprintln(w, "Container")
	fmt.Fprintf(w, "  Command Source        : %s\n", c.cmdSource)
	fmt.Fprintf(w, "  Command               : %s\n", formatOrNone(c.cmd))
	fmt.Fprintf(w, "  Entrypoint            : %s\n", formatOrNone(c.entrypoint))
	if port, ok := c.Env("PORT"); ok {
		fmt.Fprintf(w, "  Port                  : %s\n", port)
	}
	fmt.Fprintln(w)

	// ── Dependencies ────────────────────────────────────────────────────────────
	fmt.Fprintln(w, "Dependencies")
	fmt.Fprintf(w, "  Requirements          : %s\n", c.requirements)
	fmt.Fprintf(w, "  Index URL             : %s\n", formatOrNone(c.indexURL))
	fmt.Fprintln(w)

	// ── Environment ─────────────────────────────────────────────────────────────
	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  Engine                : %s\n", c.engine)
	fmt.Fprintf(w, "  Working Directory     : %s\n", c.workDir)
	fmt.Fprintf(w, "  Env File              : %s\n", c.envFile)
	keys := make([]string, 0, len(c.env))
	for k := range c.env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(w, "  Env Keys              : %s\n", formatOrNone(strings.Join(keys, ", ")))
	fmt.Fprintf(w, "  Dry Run Mode          : %s\n", emoji(c.dryRun))
	fmt.Fprintln(w)
}
