//go:build integration

package dockerfile

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestRenderedDockerfileBuilds builds a rendered Dockerfile against a real
// engine and checks that the requirements step and CMD took effect.
func TestRenderedDockerfileBuilds(t *testing.T) {
	testcontainers.SkipIfProviderIsNotHealthy(t)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "requirements.txt"), []byte("six\n"), 0o644))

	f, err := Render(Params{
		BaseImage:    "python:3.12-slim",
		Requirements: "requirements.txt",
		Cmd:          `python -c "import six; print('ok')"`,
		Single:       true,
	})
	require.NoError(t, err)
	_, err = Write(dir, f)
	require.NoError(t, err)

	ctx := context.Background()
	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			FromDockerfile: testcontainers.FromDockerfile{
				Context:    dir,
				Dockerfile: f.Filename,
			},
			WaitingFor: wait.ForExit(),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, c)
	require.NoError(t, err)

	logs, err := c.Logs(ctx)
	require.NoError(t, err)
	defer logs.Close()
	out, err := io.ReadAll(logs)
	require.NoError(t, err)
	require.Contains(t, string(out), "ok")
}
