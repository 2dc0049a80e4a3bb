// internal/docker/plan.go
//
// The planner turns a resolved runtime.Config into build targets: which
// Dockerfile each base image uses and which tag its image receives.
//
// Rules:
//   - one base image   → Dockerfile,               <prefix>:latest
//   - several images   → Dockerfile-<base image>,  <prefix>:<suffix>
//     where the suffix is the base image with "python:" → "py" and
//     "-onbuild" dropped (python:2.7-onbuild → py2.7)
//   - no prefix        → images stay untagged
//
// The prefix may not carry its own ":"; prefix and suffix are joined
// with exactly one.

package docker

import (
	"errors"
	"fmt"
	"strings"

	"pydockerize/internal/dockerfile"
	"pydockerize/internal/runtime"
)

// ErrInvalidTag is returned for a tag prefix that already contains ':'.
var ErrInvalidTag = errors.New("invalid tag")

var suffixReplacer = strings.NewReplacer("python:", "py", "-onbuild", "")

// ValidateTagPrefix rejects prefixes that carry their own tag part.
func ValidateTagPrefix(prefix string) error {
	if strings.Contains(prefix, ":") {
		return fmt.Errorf("%w: %q: ':' in tag is not supported, pass the repository name only", ErrInvalidTag, prefix)
	}
	return nil
}

// TagSuffix derives the per-image tag suffix.
func TagSuffix(baseImage string, single bool) string {
	if single {
		return "latest"
	}
	return suffixReplacer.Replace(baseImage)
}

// FullTag joins prefix and suffix, or returns "" without a prefix.
func FullTag(prefix, baseImage string, single bool) string {
	if prefix == "" {
		return ""
	}
	return prefix + ":" + TagSuffix(baseImage, single)
}

// PlanTargets returns one Target per configured base image, in order.
// The tag prefix is validated before anything else happens.
func PlanTargets(cfg runtime.Config) ([]Target, error) {
	if err := ValidateTagPrefix(cfg.Tag()); err != nil {
		return nil, err
	}
	images := cfg.Images()
	if len(images) == 0 {
		return nil, errors.New("PlanTargets: no base images configured")
	}

	single := cfg.Single()
	targets := make([]Target, 0, len(images))
	for _, img := range images {
		targets = append(targets, Target{
			BaseImage: img,
			Filename:  dockerfile.Filename(img, single),
			Tag:       FullTag(cfg.Tag(), img, single),
		})
	}
	return targets, nil
}
