package dockerfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const expectedBasic = "# This Dockerfile was generated by pydockerize\n" +
	"FROM python:2.7-onbuild\n" +
	"\n" +
	"RUN mkdir -p /usr/src/app\n" +
	"WORKDIR /usr/src/app\n" +
	"COPY . /usr/src/app\n" +
	"\n" +
	"RUN if [ -f apt-packages.txt ]; then apt-get update && apt-get install -y $(cat apt-packages.txt); fi\n" +
	"RUN if [ -f requirements.txt ]; then pip install -r requirements.txt; fi\n" +
	"RUN if [ -f setup.py ]; then pip install .; fi\n" +
	"\n" +
	"# This is so one can mount a volume from the host to give the container access\n" +
	"# to the host's current working directory.\n" +
	"#\n" +
	"# E.g.:\n" +
	"#\n" +
	"#   - `docker run -v $(pwd):/host` from command-line\n" +
	"#         or\n" +
	"#   - `volumes: [\".:/host\"]` in docker-compose.yml\n" +
	"WORKDIR /host\n"

func TestRenderBasic(t *testing.T) {
	f, err := Render(Params{
		BaseImage:    "python:2.7-onbuild",
		Requirements: "requirements.txt",
		Single:       true,
	})
	require.NoError(t, err)

	assert.Equal(t, "python:2.7-onbuild", f.BaseImage)
	assert.Equal(t, "Dockerfile", f.Filename)
	assert.Equal(t, expectedBasic, f.Text)
}

func TestRenderEntrypointAndCmd(t *testing.T) {
	f, err := Render(Params{
		BaseImage:    "python:3.4-onbuild",
		Requirements: "requirements.txt",
		Entrypoint:   `["/usr/bin/dumb-init", "--"]`,
		Cmd:          "gunicorn app:app",
		Single:       true,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(f.Text,
		"WORKDIR /host\nENTRYPOINT [\"/usr/bin/dumb-init\", \"--\"]\nCMD gunicorn app:app\n"),
		"unexpected tail:\n%s", f.Text)
	assert.Contains(t, f.Text, "FROM python:3.4-onbuild\n")
}

func TestRenderCmdOnly(t *testing.T) {
	f, err := Render(Params{BaseImage: "python:3.4-onbuild", Requirements: "requirements.txt", Cmd: "python app.py"})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(f.Text, "WORKDIR /host\nCMD python app.py\n"))
	assert.NotContains(t, f.Text, "ENTRYPOINT")
}

func TestRenderIndexURLAndRequirements(t *testing.T) {
	f, err := Render(Params{
		BaseImage:    "python:3.4-onbuild",
		Requirements: "requirements/prod.txt",
		IndexURL:     "https://pypi.example.com/simple",
	})
	require.NoError(t, err)

	assert.Contains(t, f.Text,
		"RUN if [ -f requirements/prod.txt ]; then pip install --index-url=https://pypi.example.com/simple -r requirements/prod.txt; fi\n")
	assert.Contains(t, f.Text,
		"RUN if [ -f setup.py ]; then pip install --index-url=https://pypi.example.com/simple .; fi\n")
}

func TestRenderRejectsBrokenShell(t *testing.T) {
	_, err := Render(Params{
		BaseImage:    "python:3.4-onbuild",
		Requirements: "requirements.txt",
		IndexURL:     "https://pypi.example.com/'simple",
	})
	require.ErrorIs(t, err, ErrInvalidShell)
}

func TestRenderRequiresBaseImage(t *testing.T) {
	_, err := Render(Params{Requirements: "requirements.txt"})
	require.Error(t, err)
}

func TestFilename(t *testing.T) {
	tests := []struct {
		image  string
		single bool
		want   string
	}{
		{"python:2.7-onbuild", true, "Dockerfile"},
		{"python:2.7-onbuild", false, "Dockerfile-python:2.7-onbuild"},
		{"python:3.4-onbuild", false, "Dockerfile-python:3.4-onbuild"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Filename(tt.image, tt.single))
	}
}

func TestWriteOverwrites(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("old contents that are longer\n"), 0o644))

	path, err := Write(dir, File{Filename: "Dockerfile", Text: "FROM x\n"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Dockerfile"), path)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FROM x\n", string(got))
}
