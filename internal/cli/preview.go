package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	"pydockerize/internal/dockerfile"
)

// previewer renders each generated Dockerfile as a highlighted markdown
// code block.
func previewer(w io.Writer) (func(dockerfile.File) error, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return nil, fmt.Errorf("init preview renderer: %w", err)
	}
	return func(f dockerfile.File) error {
		md := fmt.Sprintf("## %s\n\n```dockerfile\n%s```\n", f.Filename, f.Text)
		out, err := renderer.Render(md)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}, nil
}
