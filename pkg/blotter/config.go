package blotter

// FormConfig is built fresh on every Load.
type FormConfig struct {
	Title string
}

// BlockDescriptor is one renderable sub-section of a form.
type BlockDescriptor struct {
	TemplateRef string
	Extras      map[string]any
}

// FormInstance describes a loaded form: what was rendered and where.
type FormInstance struct {
	ID       string
	Config   FormConfig
	Module   string
	Selector string
	Data     map[string]any
	TypeMap  map[string]string
	Extras   map[string]any
	Blocks   []BlockDescriptor
}

// TemplateRefs lists the block templates in layout order.
func (i FormInstance) TemplateRefs() []string {
	out := make([]string, 0, len(i.Blocks))
	for _, block := range i.Blocks {
		out = append(out, block.TemplateRef)
	}
	return out
}
