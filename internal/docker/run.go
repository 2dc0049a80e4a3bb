// internal/docker/run.go
package docker

import (
	"context"
	"fmt"
	"strings"

	"pydockerize/internal/executil"
)

var nameReplacer = strings.NewReplacer(":", "-", "/", "-")

// ContainerName derives a container name from an image tag. Engines only
// accept [a-zA-Z0-9_.-] in names, so ':' and '/' become '-'.
func ContainerName(tag string) string {
	return nameReplacer.Replace(tag)
}

// RunArgs returns:
// run -it [--name=NAME] [-v VOLUME]... [-p PORT]... [EXTRA...] IMAGE
func RunArgs(opts RunOptions) []string {
	args := []string{"run", "-it"}
	if opts.Name != "" {
		args = append(args, "--name="+opts.Name)
	}
	for _, v := range opts.Volumes {
		args = append(args, "-v", v)
	}
	for _, p := range opts.Ports {
		args = append(args, "-p", p)
	}
	args = append(args, opts.ExtraArgs...)
	return append(args, opts.Image)
}

// Run starts an interactive container and waits for it to exit.
func (e *Engine) Run(ctx context.Context, opts RunOptions) error {
	if strings.TrimSpace(opts.Image) == "" {
		return fmt.Errorf("run: no image given")
	}
	e.log.Info("run", "image", opts.Image, "name", formatOrNone(opts.Name))
	err := e.runner.Run(ctx, executil.Cmd{
		Name:        e.binary,
		Args:        RunArgs(opts),
		Dir:         e.dir,
		Interactive: true,
	})
	if err != nil {
		return fmt.Errorf("%s run: %w", e.binary, err)
	}
	return nil
}
