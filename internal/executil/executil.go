// internal/executil/executil.go
package executil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

// Cmd describes one external command invocation.
type Cmd struct {
	Name        string
	Args        []string
	Dir         string
	Env         map[string]string // added to the inherited environment
	Interactive bool              // attach stdin
}

// String renders the command line the way it would be typed into a shell.
func (c Cmd) String() string {
	if len(c.Args) == 0 {
		return quote(c.Name)
	}
	return quote(c.Name) + " " + QuoteArgs(c.Args)
}

// Runner runs external commands. Exec is the real implementation; tests
// substitute their own.
type Runner interface {
	Run(ctx context.Context, c Cmd) error
}

// ExitError is returned when a command ran and exited with a non-zero status.
type ExitError struct {
	Code int
	Cmd  string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command failed (exit=%d): %s", e.Code, e.Cmd)
}

// ExitCode returns the status the command exited with.
func (e *ExitError) ExitCode() int { return e.Code }

// Exec runs commands with inherited stdout/stderr. In dry-run mode it only
// logs what would be run.
type Exec struct {
	DryRun bool
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger
}

// NewExec returns an Exec wired to the process's standard streams.
func NewExec(dryRun bool, logger *log.Logger) *Exec {
	return &Exec{
		DryRun: dryRun,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run executes c and waits for it. A non-zero exit yields *ExitError.
func (e *Exec) Run(ctx context.Context, c Cmd) error {
	fullCmd := c.String()
	logger := e.Logger
	if logger == nil {
		logger = log.Default()
	}

	if e.DryRun {
		if c.Dir != "" {
			logger.Info("dry run", "dir", c.Dir, "cmd", fullCmd)
		} else {
			logger.Info("dry run", "cmd", fullCmd)
		}
		return nil
	}

	if ctx == nil {
		ctx = context.Background()
	}

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	if c.Interactive {
		cmd.Stdin = e.Stdin
	}
	cmd.Env = os.Environ()
	for k, v := range c.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	logger.Debug("running", "dir", c.Dir, "cmd", fullCmd)
	if err := cmd.Run(); err != nil {
		// context cancellations show clearly
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("command canceled: %s: %w", fullCmd, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			return &ExitError{Code: exitErr.ExitCode(), Cmd: fullCmd}
		}
		return fmt.Errorf("failed to run command: %s: %w", fullCmd, err)
	}
	return nil
}

// QuoteArgs returns a printable, shell-safe representation of args.
func QuoteArgs(args []string) string {
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = quote(a)
	}
	return strings.Join(quoted, " ")
}

func quote(s string) string {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		// Only reachable for strings a POSIX shell cannot represent.
		return fmt.Sprintf("%q", s)
	}
	return q
}
