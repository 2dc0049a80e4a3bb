// internal/docker/options.go
//
// This layer adapts a runtime.Config and a planned Target into the
// concrete BuildOptions / RunOptions the engine consumes.

package docker

import (
	"pydockerize/internal/runtime"
)

// HostMount is where the host's working directory is mounted in a
// container started by Run.
const HostMount = "/host"

// BuildOptionsFor returns the build options of one target. The build
// context is always the working directory.
func BuildOptionsFor(t Target) BuildOptions {
	return BuildOptions{
		Dockerfile:  t.Filename,
		ContextPath: ".",
		Tag:         t.Tag,
	}
}

// RunOptionsFor returns the run options of one target:
//   - the container is named after the tag
//   - the working directory is mounted at /host
//   - PORT from the environment file is published
func RunOptionsFor(cfg runtime.Config, t Target, extra []string) RunOptions {
	opts := RunOptions{
		Image:     t.Tag,
		Name:      ContainerName(t.Tag),
		ExtraArgs: append([]string(nil), extra...),
	}
	if dir := cfg.WorkDir(); dir != "" {
		opts.Volumes = append(opts.Volumes, dir+":"+HostMount)
	}
	if port, ok := cfg.Env("PORT"); ok && port != "" {
		opts.Ports = append(opts.Ports, port)
	}
	return opts
}
