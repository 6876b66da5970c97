package ogplatform

import (
	"io/fs"

	"github.com/gitqueue/OG-Platform/pkg/render"
)

// EmbeddedTemplates exposes the built-in blotter form templates so callers
// can reuse or extend them without importing the render package directly.
func EmbeddedTemplates() fs.FS {
	return render.TemplatesFS()
}

// ShellHTML returns the default blotter dialog page forms mount into.
func ShellHTML() string {
	return render.ShellHTML()
}
