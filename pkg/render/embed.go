package render

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

//go:embed shell.html
var shellHTML string

const (
	// TitleSelector is the element whose text receives the form title.
	TitleSelector = ".OG-blotter-form-title"
	// BlockSelector is the container every blotter form mounts into.
	BlockSelector = ".OG-blotter-form-block"
)

// TemplatesFS exposes the embedded blotter templates with module names as
// file names (e.g. "og.blotter.forms.swaption_tash.tmpl").
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// ShellHTML returns the host page the blotter dialog renders into. It holds
// one title element and one block container.
func ShellHTML() string {
	return shellHTML
}
