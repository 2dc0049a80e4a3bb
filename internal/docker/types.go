// internal/docker/types.go
package docker

type BuildOptions struct {
	Dockerfile  string // default: "Dockerfile"
	ContextPath string // default: "."
	Tag         string // optional repo:tag
}

type RunOptions struct {
	Image     string   // tag or image ID to run
	Name      string   // optional container name
	Volumes   []string // host:container
	Ports     []string // as accepted by -p
	ExtraArgs []string // passed through before the image
}

// Target is one base image together with the Dockerfile rendered for it
// and the tag its build receives ("" when untagged).
type Target struct {
	BaseImage string
	Filename  string
	Tag       string
}
