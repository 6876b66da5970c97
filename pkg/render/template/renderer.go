package template

import (
	"io"
)

// TemplateRenderer renders named templates or inline template strings. Output
// is returned and, when writers are supplied, copied to each of them.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	GlobalContext(data any) error
}

// Resolver reports whether a named template exists. Engines that can answer
// cheaply implement it so callers can fall back to alternatives.
type Resolver interface {
	HasTemplate(name string) bool
}
