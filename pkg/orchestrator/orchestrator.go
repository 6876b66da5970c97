package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	theme "github.com/goliatone/go-theme"
	"go.uber.org/zap"

	"github.com/gitqueue/OG-Platform/pkg/blotter"
	"github.com/gitqueue/OG-Platform/pkg/catalog"
	"github.com/gitqueue/OG-Platform/pkg/dom"
	"github.com/gitqueue/OG-Platform/pkg/render"
	"github.com/gitqueue/OG-Platform/pkg/typemap"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog replaces the embedded trade catalog.
func WithCatalog(cat catalog.Catalog) Option {
	return func(o *Orchestrator) {
		o.catalog = cat
		o.catalogSpecified = true
	}
}

// WithRegistry injects a trade registry. When omitted, one is built from the
// catalog.
func WithRegistry(registry *blotter.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithTypeMapDocument supplies the OpenAPI document type maps are derived
// from. Pass nil to render without type maps.
func WithTypeMapDocument(doc *typemap.Document) Option {
	return func(o *Orchestrator) {
		o.types = doc
		o.typesSpecified = true
	}
}

// WithFactory injects the form factory. When set, render options and theme
// settings are ignored.
func WithFactory(factory render.Factory) Option {
	return func(o *Orchestrator) {
		o.factory = factory
	}
}

// WithRenderOptions forwards options to the default renderer.
func WithRenderOptions(options ...render.Option) Option {
	return func(o *Orchestrator) {
		o.renderOptions = append(o.renderOptions, options...)
	}
}

// WithThemeSelector resolves name/variant through selector ahead of rendering
// so the renderer receives partial overrides, tokens and asset URLs.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(o *Orchestrator) {
		o.themeSelector = selector
		o.themeName = name
		o.themeVariant = variant
	}
}

// WithShell replaces the host page forms are mounted into.
func WithShell(markup string) Option {
	return func(o *Orchestrator) {
		o.shell = markup
	}
}

// WithLogger sets the logger passed to loaders and the default renderer.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator renders blotter pages. It applies sensible defaults (embedded
// catalog, securities document and templates) while remaining open to
// dependency injection.
type Orchestrator struct {
	catalog          catalog.Catalog
	catalogSpecified bool
	registry         *blotter.Registry
	types            *typemap.Document
	typesSpecified   bool
	factory          render.Factory
	renderOptions    []render.Option
	themeSelector    theme.ThemeSelector
	themeName        string
	themeVariant     string
	shell            string
	logger           *zap.Logger
	initialiseErr    error
}

// New constructs an Orchestrator applying any provided options. Setup
// failures surface from Generate.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.initialiseErr = o.applyDefaults()
	return o
}

// Request describes one page render.
type Request struct {
	// Trade is a trade type id or registration name.
	Trade string

	// Data seeds the form, e.g. an existing trade being edited.
	Data map[string]any

	// TypeMap overrides the type map derived from the catalog schema.
	TypeMap map[string]string

	// Extras are forwarded to the top-level form template.
	Extras map[string]any
}

// Err reports a setup failure recorded by New.
func (o *Orchestrator) Err() error { return o.initialiseErr }

// Catalog returns the trade catalog in use.
func (o *Orchestrator) Catalog() catalog.Catalog { return o.catalog }

// Trades lists the registered trade types.
func (o *Orchestrator) Trades() []blotter.TradeType {
	if o.registry == nil {
		return nil
	}
	return o.registry.Trades()
}

// Trade resolves a trade type by id or registration name.
func (o *Orchestrator) Trade(key string) (blotter.TradeType, error) {
	if err := o.initialiseErr; err != nil {
		return blotter.TradeType{}, err
	}
	entry, err := o.registry.Get(key)
	if err != nil {
		return blotter.TradeType{}, err
	}
	return entry.Trade, nil
}

// TypeMap derives the type map for trade from its catalog schema. It returns
// nil when no document is configured or the trade names no schema.
func (o *Orchestrator) TypeMap(trade blotter.TradeType) (map[string]string, error) {
	if o.types == nil {
		return nil, nil
	}
	entry, ok := o.catalog.Find(trade.ID)
	if !ok || entry.Schema == "" {
		return nil, nil
	}
	return o.types.TypeMap(entry.Schema)
}

// Generate loads the requested trade form into a fresh host page and returns
// the page HTML.
func (o *Orchestrator) Generate(ctx context.Context, req Request) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	entry, err := o.registry.Get(req.Trade)
	if err != nil {
		return nil, err
	}

	typeMap := req.TypeMap
	if typeMap == nil {
		typeMap, err = o.TypeMap(entry.Trade)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: type map for %s: %w", entry.Trade.Name, err)
		}
	}

	doc, err := dom.ParseString(o.shell)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: parse shell: %w", err)
	}
	host, err := blotter.NewHost(doc)
	if err != nil {
		return nil, err
	}

	loader, err := entry.New(entry.Trade, host, o.factory,
		blotter.WithData(req.Data),
		blotter.WithTypeMap(typeMap),
		blotter.WithExtras(req.Extras),
		blotter.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: construct %s: %w", entry.Trade.Name, err)
	}
	if err := loader.Load(ctx); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := doc.Render(&buf); err != nil {
		return nil, fmt.Errorf("orchestrator: render page: %w", err)
	}
	return buf.Bytes(), nil
}

func (o *Orchestrator) applyDefaults() error {
	if !o.catalogSpecified {
		cat, err := catalog.Default()
		if err != nil {
			return fmt.Errorf("orchestrator: default catalog: %w", err)
		}
		o.catalog = cat
	}
	if o.registry == nil {
		registry, err := blotter.RegistryFromCatalog(o.catalog)
		if err != nil {
			return fmt.Errorf("orchestrator: registry: %w", err)
		}
		o.registry = registry
	}
	if !o.typesSpecified {
		doc, err := typemap.Default(context.Background())
		if err != nil {
			return fmt.Errorf("orchestrator: default securities document: %w", err)
		}
		o.types = doc
	}
	if o.shell == "" {
		o.shell = render.ShellHTML()
	}
	if o.factory == nil {
		options := []render.Option{render.WithLogger(o.logger)}
		if o.themeSelector != nil {
			cfg, err := render.ResolveTheme(o.themeSelector, o.themeName, o.themeVariant, nil)
			if err != nil {
				return fmt.Errorf("orchestrator: theme: %w", err)
			}
			options = append(options, render.WithTheme(cfg))
		}
		options = append(options, o.renderOptions...)
		renderer, err := render.New(options...)
		if err != nil {
			return fmt.Errorf("orchestrator: default renderer: %w", err)
		}
		o.factory = renderer
	}
	return nil
}
