package runtime

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pydockerize/internal/version"
)

func TestNewImageSource(t *testing.T) {
	tests := []struct {
		name     string
		images   []string
		versions []string
		want     []string
		wantErr  error
	}{
		{
			name: "default",
			want: []string{"python:2.7-onbuild"},
		},
		{
			name:   "explicit images keep order",
			images: []string{"python:3.4-onbuild", "python:2.7-onbuild"},
			want:   []string{"python:3.4-onbuild", "python:2.7-onbuild"},
		},
		{
			name:     "versions expand to onbuild images",
			versions: []string{"2.7", "3.4"},
			want:     []string{"python:2.7-onbuild", "python:3.4-onbuild"},
		},
		{
			name:   "blank entries are dropped",
			images: []string{" ", "python:3.4-onbuild", ""},
			want:   []string{"python:3.4-onbuild"},
		},
		{
			name:     "both supplied conflict",
			images:   []string{"python:3.4-onbuild"},
			versions: []string{"2.7"},
			wantErr:  ErrConflictingSources,
		},
		{
			name:     "bad version",
			versions: []string{"2.7", "latest"},
			wantErr:  version.ErrInvalidPython,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewImageSource(tt.images, tt.versions)
			if err == nil {
				var got []string
				got, err = src.Images()
				if tt.wantErr == nil {
					require.NoError(t, err)
					assert.Equal(t, tt.want, got)
					return
				}
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefaultImagesReturnsCopy(t *testing.T) {
	imgs, err := DefaultImages{}.Images()
	require.NoError(t, err)
	imgs[0] = "mutated"
	assert.Equal(t, "python:2.7-onbuild", DefaultBaseImages[0])
}

func TestNewCommandSource(t *testing.T) {
	t.Run("conflict", func(t *testing.T) {
		_, err := NewCommandSource("python app.py", "Procfile")
		require.ErrorIs(t, err, ErrConflictingSources)
	})

	t.Run("kinds", func(t *testing.T) {
		src, err := NewCommandSource("python app.py", "")
		require.NoError(t, err)
		assert.Equal(t, ExplicitCommand("python app.py"), src)

		src, err = NewCommandSource("", "Procfile.web")
		require.NoError(t, err)
		assert.Equal(t, ProcfileCommand("Procfile.web"), src)

		src, err = NewCommandSource("  ", "")
		require.NoError(t, err)
		assert.Equal(t, DefaultProcfile{}, src)
	})
}

func TestCommandSources(t *testing.T) {
	env := map[string]string{"PORT": "8080"}

	t.Run("explicit command is expanded", func(t *testing.T) {
		got, err := ExplicitCommand("run on $PORT").Command(t.TempDir(), env)
		require.NoError(t, err)
		assert.Equal(t, "run on 8080", got)
	})

	t.Run("default procfile missing", func(t *testing.T) {
		got, err := DefaultProcfile{}.Command(t.TempDir(), env)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("default procfile present", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Procfile", "web: gunicorn -b 0.0.0.0:$PORT app:app\n")

		got, err := DefaultProcfile{}.Command(dir, env)
		require.NoError(t, err)
		assert.Equal(t, "gunicorn -b 0.0.0.0:8080 app:app", got)
	})

	t.Run("named procfile relative to dir", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Procfile.dev", "web: python manage.py runserver\n")

		got, err := ProcfileCommand("Procfile.dev").Command(dir, nil)
		require.NoError(t, err)
		assert.Equal(t, "python manage.py runserver", got)
	})

	t.Run("named procfile missing", func(t *testing.T) {
		_, err := ProcfileCommand("nope").Command(t.TempDir(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("two line procfile", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Procfile", "web: gunicorn app:app\nworker: celery worker\n")

		_, err := DefaultProcfile{}.Command(dir, nil)
		require.ErrorIs(t, err, ErrMalformedProcfile)
	})
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
