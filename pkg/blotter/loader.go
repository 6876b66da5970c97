package blotter

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/gitqueue/OG-Platform/pkg/render"
)

// Loader is the capability set every trade-type form exposes.
type Loader interface {
	Load(ctx context.Context) error
	Kill() error
}

// Option customises a loader.
type Option func(*options)

type options struct {
	data    map[string]any
	typeMap map[string]string
	extras  map[string]any
	logger  *zap.Logger
}

// WithData seeds the form's data bag, e.g. an existing trade being edited.
func WithData(data map[string]any) Option {
	return func(o *options) {
		o.data = data
	}
}

// WithTypeMap sets the field path to type mapping forwarded to the renderer.
func WithTypeMap(typeMap map[string]string) Option {
	return func(o *options) {
		o.typeMap = typeMap
	}
}

// WithExtras sets renderer extras on the top-level form.
func WithExtras(extras map[string]any) Option {
	return func(o *options) {
		o.extras = extras
	}
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// SwapForm loads any swap-family trade: a trade-specific title and top-level
// template over the shared four-block layout.
type SwapForm struct {
	trade   TradeType
	host    *Host
	factory render.Factory
	opts    options

	mu       sync.Mutex
	instance *FormInstance
	lease    *lease
}

var _ Loader = (*SwapForm)(nil)

// NewSwapForm constructs a loader for trade on host, rendering through factory.
func NewSwapForm(trade TradeType, host *Host, factory render.Factory, opts ...Option) (*SwapForm, error) {
	if err := trade.Validate(); err != nil {
		return nil, err
	}
	if host == nil {
		return nil, errors.New("blotter: host is required")
	}
	if factory == nil {
		return nil, errors.New("blotter: render factory is required")
	}

	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return &SwapForm{trade: trade, host: host, factory: factory, opts: o}, nil
}

// NewSwaption constructs the swaption loader.
func NewSwaption(host *Host, factory render.Factory, opts ...Option) (*SwapForm, error) {
	return NewSwapForm(Swaption, host, factory, opts...)
}

// NewVarianceSwap constructs the variance swap loader.
func NewVarianceSwap(host *Host, factory render.Factory, opts ...Option) (*SwapForm, error) {
	return NewSwapForm(VarianceSwap, host, factory, opts...)
}

// Trade returns the trade type this loader renders.
func (s *SwapForm) Trade() TradeType { return s.trade }

// Load builds the form, renders it into the host container and sets the
// dialog title. Loading an already loaded form reloads it.
func (s *SwapForm) Load(ctx context.Context) error {
	if ctx == nil {
		return errors.New("blotter: context is required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.killLocked(); err != nil {
		return err
	}

	config := FormConfig{Title: s.trade.Title}
	blocks := SwapFamilyBlocks()

	form := s.factory.NewForm(s.host.Document(), render.FormOptions{
		Module:   s.trade.Template,
		Data:     s.opts.data,
		TypeMap:  s.opts.typeMap,
		Selector: s.host.BlockSelector(),
		Extras:   s.opts.extras,
	})
	for _, block := range blocks {
		form.Append(render.NewBlock(block.TemplateRef, block.Extras))
	}

	l, err := s.host.mount(ctx, s.trade, form, config.Title)
	if err != nil {
		s.opts.logger.Warn("form load failed",
			zap.String("trade", s.trade.Name),
			zap.Error(err),
		)
		return fmt.Errorf("blotter: load %s: %w", s.trade.Name, err)
	}

	opts := form.Options()
	s.lease = l
	s.instance = &FormInstance{
		ID:       form.ID(),
		Config:   config,
		Module:   opts.Module,
		Selector: opts.Selector,
		Data:     opts.Data,
		TypeMap:  opts.TypeMap,
		Extras:   opts.Extras,
		Blocks:   blocks,
	}

	s.opts.logger.Info("form loaded",
		zap.String("trade", s.trade.Name),
		zap.String("form_id", form.ID()),
		zap.String("title", config.Title),
	)
	return nil
}

// Kill unmounts the form and clears the title. It is safe to call at any
// time and any number of times; the loader can be loaded again afterwards.
func (s *SwapForm) Kill() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.killLocked()
}

func (s *SwapForm) killLocked() error {
	if s.lease == nil {
		return nil
	}
	l := s.lease
	s.lease = nil
	s.instance = nil

	if err := s.host.release(l); err != nil {
		return fmt.Errorf("blotter: kill %s: %w", s.trade.Name, err)
	}
	s.opts.logger.Info("form killed", zap.String("trade", s.trade.Name))
	return nil
}

// Instance returns a snapshot of the loaded form. The second result is false
// when nothing is loaded or the form was evicted by another loader.
func (s *SwapForm) Instance() (FormInstance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.instance == nil || !s.host.active(s.lease) {
		return FormInstance{}, false
	}
	out := *s.instance
	out.Blocks = append([]BlockDescriptor(nil), s.instance.Blocks...)
	return out, true
}

// Config returns the FormConfig of the loaded form.
func (s *SwapForm) Config() (FormConfig, bool) {
	inst, ok := s.Instance()
	if !ok {
		return FormConfig{}, false
	}
	return inst.Config, true
}
