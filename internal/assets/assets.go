package assets

import (
	"embed"
	"fmt"
)

//go:embed Dockerfile.tmpl
var DockerfileContent embed.FS

// DockerfileTemplate loads the embedded Dockerfile.tmpl as a string.
func DockerfileTemplate() (string, error) {
	data, err := DockerfileContent.ReadFile("Dockerfile.tmpl")
	if err != nil {
		return "", fmt.Errorf("read embedded Dockerfile.tmpl: %w", err)
	}
	return string(data), nil
}
