package render

import (
	"context"
)

// FormOptions configures a form at construction time. Module names the
// top-level template; Selector is the container the rendered form replaces.
type FormOptions struct {
	Module   string
	Data     map[string]any
	TypeMap  map[string]string
	Selector string
	Extras   map[string]any
}

// Block is one templated sub-section of a form. Blocks render in the order
// they were appended.
type Block struct {
	Module string
	Extras map[string]any
}

// NewBlock constructs a block descriptor. A nil extras map is replaced with an
// empty one so templates can always range over it.
func NewBlock(module string, extras map[string]any) *Block {
	if extras == nil {
		extras = map[string]any{}
	}
	return &Block{Module: module, Extras: extras}
}

// Form is an ordered collection of blocks bound to a render target.
type Form interface {
	// ID identifies the form instance in rendered markup.
	ID() string
	Options() FormOptions
	Append(blocks ...*Block)
	Children() []*Block
	// Dom renders the form and mounts it at Options().Selector.
	Dom(ctx context.Context) error
	// Destroy unmounts a rendered form. Calling it more than once is safe.
	Destroy() error
}

// Target is where a form mounts. *dom.Document satisfies it.
type Target interface {
	Has(selector string) (bool, error)
	ReplaceChildren(selector, fragment string) error
	Clear(selector string) error
}

// Factory constructs forms bound to a target.
type Factory interface {
	NewForm(target Target, options FormOptions) Form
}
