package executil

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"plain", []string{"build", "--tag", "myapp:py2.7", "."}, "build --tag myapp:py2.7 ."},
		{"spaces", []string{"run", "-e", "A=b c"}, "run -e 'A=b c'"},
		{"empty", []string{""}, "''"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, QuoteArgs(tt.args))
		})
	}
}

func TestCmdString(t *testing.T) {
	c := Cmd{Name: "docker", Args: []string{"images", "myapp"}}
	assert.Equal(t, "docker images myapp", c.String())
	assert.Equal(t, "docker", Cmd{Name: "docker"}.String())
}

func TestExecDryRun(t *testing.T) {
	var logs bytes.Buffer
	e := &Exec{DryRun: true, Logger: log.New(&logs)}

	err := e.Run(context.Background(), Cmd{Name: "definitely-not-a-real-binary", Args: []string{"build", "."}})
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "definitely-not-a-real-binary build .")
}

func TestExecRun(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	var stdout, stderr bytes.Buffer
	e := &Exec{Stdout: &stdout, Stderr: &stderr, Logger: log.New(&bytes.Buffer{})}

	t.Run("success with env and dir", func(t *testing.T) {
		stdout.Reset()
		dir := t.TempDir()
		err := e.Run(context.Background(), Cmd{
			Name: "sh",
			Args: []string{"-c", `echo "$GREETING"; pwd`},
			Dir:  dir,
			Env:  map[string]string{"GREETING": "hello"},
		})
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "hello\n")
	})

	t.Run("exit status is reported", func(t *testing.T) {
		err := e.Run(context.Background(), Cmd{Name: "sh", Args: []string{"-c", "exit 3"}})

		var exitErr *ExitError
		require.True(t, errors.As(err, &exitErr), "got %v", err)
		assert.Equal(t, 3, exitErr.ExitCode())
		assert.Contains(t, exitErr.Error(), "exit=3")
	})

	t.Run("missing binary", func(t *testing.T) {
		err := e.Run(context.Background(), Cmd{Name: "definitely-not-a-real-binary"})
		require.Error(t, err)
		var exitErr *ExitError
		assert.False(t, errors.As(err, &exitErr))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := e.Run(ctx, Cmd{Name: "sh", Args: []string{"-c", "true"}})
		require.ErrorIs(t, err, context.Canceled)
	})
}
