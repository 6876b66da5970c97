package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/google/uuid"
	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/gitqueue/OG-Platform/pkg/dom"
	rendertemplate "github.com/gitqueue/OG-Platform/pkg/render/template"
	"github.com/gitqueue/OG-Platform/pkg/render/template/gotemplate"
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templateFS  fs.FS
	templateDir string
	theme       *theme.RendererConfig
	sanitize    bool
	logger      *zap.Logger
}

// WithTemplatesFS supplies templates that shadow the embedded bundle. Modules
// the bundle does not define fall back to the embedded templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
		cfg.templateDir = ""
	}
}

// WithTemplatesDir is WithTemplatesFS for a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		cfg.templateDir = path
		cfg.templateFS = nil
	}
}

// WithTheme applies a resolved theme: partial overrides keyed by block module
// name plus tokens exposed to templates.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithoutSanitizer mounts template output as-is.
func WithoutSanitizer() Option {
	return func(cfg *config) {
		cfg.sanitize = false
	}
}

// WithLogger sets the logger used for render diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// Renderer turns forms into HTML using the template engine and mounts the
// result into a Target. It implements Factory.
type Renderer struct {
	// engines are consulted in order; the embedded bundle is always last.
	engines []rendertemplate.TemplateRenderer
	theme   *theme.RendererConfig
	policy  *bluemonday.Policy
	logger  *zap.Logger
}

var _ Factory = (*Renderer)(nil)

// New constructs a Renderer. Without options it renders the embedded
// blotter templates.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		sanitize: true,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	var engines []rendertemplate.TemplateRenderer
	switch {
	case cfg.templateDir != "":
		engine, err := gotemplate.New(gotemplate.WithDir(cfg.templateDir))
		if err != nil {
			return nil, fmt.Errorf("render: configure templates dir %s: %w", cfg.templateDir, err)
		}
		engines = append(engines, engine)
	case cfg.templateFS != nil:
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("render: configure template renderer: %w", err)
		}
		engines = append(engines, engine)
	}

	embedded, err := gotemplate.New(gotemplate.WithFS(TemplatesFS()))
	if err != nil {
		return nil, fmt.Errorf("render: configure embedded templates: %w", err)
	}
	engines = append(engines, embedded)

	r := &Renderer{
		engines: engines,
		theme:   cfg.theme,
		logger:  cfg.logger,
	}
	if cfg.sanitize {
		r.policy = formSanitizer()
	}
	return r, nil
}

// NewForm constructs an unrendered form bound to target.
func (r *Renderer) NewForm(target Target, options FormOptions) Form {
	if options.Data == nil {
		options.Data = map[string]any{}
	}
	if options.TypeMap == nil {
		options.TypeMap = map[string]string{}
	}
	if options.Extras == nil {
		options.Extras = map[string]any{}
	}
	return &htmlForm{
		id:       uuid.NewString(),
		renderer: r,
		target:   target,
		options:  options,
	}
}

// RenderFragment renders the form's markup without mounting it.
func (r *Renderer) RenderFragment(ctx context.Context, form Form) (string, error) {
	if ctx == nil {
		return "", errors.New("render: context is required")
	}
	if form == nil {
		return "", errors.New("render: form is nil")
	}
	return r.render(ctx, form.ID(), form.Options(), form.Children())
}

func (r *Renderer) render(ctx context.Context, id string, options FormOptions, blocks []*Block) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(options.Module) == "" {
		return "", errors.New("render: form module is required")
	}

	typeMapJSON, err := json.Marshal(options.TypeMap)
	if err != nil {
		return "", fmt.Errorf("render: encode type map: %w", err)
	}
	themeCtx := buildThemeContext(r.theme)
	formCtx := map[string]any{
		"id":     id,
		"module": options.Module,
	}

	rendered := make([]string, 0, len(blocks))
	for idx, block := range blocks {
		if block == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		engine, name := r.lookup(block.Module)
		out, err := engine.RenderTemplate(name, map[string]any{
			"form": formCtx,
			"block": map[string]any{
				"module": block.Module,
				"index":  idx,
				"extras": block.Extras,
			},
			"data":     options.Data,
			"type_map": options.TypeMap,
			"extras":   options.Extras,
			"theme":    themeCtx,
		})
		if err != nil {
			return "", fmt.Errorf("render: block %q: %w", block.Module, err)
		}
		rendered = append(rendered, out)
	}

	engine, name := r.lookup(options.Module)
	out, err := engine.RenderTemplate(name, map[string]any{
		"form":          formCtx,
		"blocks":        rendered,
		"data":          options.Data,
		"type_map":      options.TypeMap,
		"type_map_json": string(typeMapJSON),
		"extras":        options.Extras,
		"theme":         themeCtx,
	})
	if err != nil {
		return "", fmt.Errorf("render: form %q: %w", options.Module, err)
	}

	if r.policy != nil {
		out = r.policy.Sanitize(out)
	}
	return strings.TrimSpace(out), nil
}

// lookup picks the engine and template for module. A theme override wins
// when some engine defines it; otherwise the first engine defining module is
// used. Unresolved names go to the first engine so its error surfaces.
func (r *Renderer) lookup(module string) (rendertemplate.TemplateRenderer, string) {
	candidates := []string{module}
	if r.theme != nil {
		if override := strings.TrimSpace(r.theme.Partials[module]); override != "" {
			candidates = []string{override, module}
		}
	}
	for _, name := range candidates {
		for _, engine := range r.engines {
			resolver, ok := engine.(rendertemplate.Resolver)
			if !ok || resolver.HasTemplate(name) {
				return engine, name
			}
		}
	}
	return r.engines[0], candidates[0]
}

type htmlForm struct {
	mu       sync.Mutex
	id       string
	renderer *Renderer
	target   Target
	options  FormOptions
	children []*Block
	mounted  bool
}

func (f *htmlForm) ID() string { return f.id }

func (f *htmlForm) Options() FormOptions { return f.options }

func (f *htmlForm) Append(blocks ...*Block) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.children = append(f.children, blocks...)
}

func (f *htmlForm) Children() []*Block {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*Block, len(f.children))
	copy(out, f.children)
	return out
}

func (f *htmlForm) Dom(ctx context.Context) error {
	if f.target == nil {
		return errors.New("render: target is nil")
	}
	found, err := f.target.Has(f.options.Selector)
	if err != nil {
		return fmt.Errorf("render: form %q: %w", f.options.Module, err)
	}
	if !found {
		return &dom.TargetMissingError{Selector: f.options.Selector}
	}

	children := f.Children()
	markup, err := f.renderer.render(ctx, f.id, f.options, children)
	if err != nil {
		return err
	}
	if err := f.target.ReplaceChildren(f.options.Selector, markup); err != nil {
		return fmt.Errorf("render: mount form %q: %w", f.options.Module, err)
	}

	f.mu.Lock()
	f.mounted = true
	f.mu.Unlock()

	f.renderer.logger.Debug("form mounted",
		zap.String("form_id", f.id),
		zap.String("module", f.options.Module),
		zap.String("selector", f.options.Selector),
		zap.Int("blocks", len(children)),
	)
	return nil
}

func (f *htmlForm) Destroy() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.mounted {
		return nil
	}
	f.mounted = false

	if err := f.target.Clear(f.options.Selector); err != nil && !errors.Is(err, dom.ErrRenderTargetMissing) {
		return fmt.Errorf("render: unmount form %q: %w", f.options.Module, err)
	}
	f.renderer.logger.Debug("form destroyed", zap.String("form_id", f.id))
	return nil
}
