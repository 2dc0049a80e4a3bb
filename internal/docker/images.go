// internal/docker/images.go
//
// Lists the images built for a repository. Output goes straight to the
// terminal; only the exit status is observed.

package docker

import (
	"context"
	"fmt"

	"pydockerize/internal/executil"
)

// ImagesArgs returns: images [REPOSITORY]
func ImagesArgs(repo string) []string {
	args := []string{"images"}
	if repo != "" {
		args = append(args, repo)
	}
	return args
}

// Images shows the engine's images for repo, or all images when repo is empty.
func (e *Engine) Images(ctx context.Context, repo string) error {
	if err := e.runner.Run(ctx, executil.Cmd{Name: e.binary, Args: ImagesArgs(repo), Dir: e.dir}); err != nil {
		return fmt.Errorf("%s images: %w", e.binary, err)
	}
	return nil
}
