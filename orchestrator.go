// Package ogplatform is the entry point for rendering trade blotter forms.
package ogplatform

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/gitqueue/OG-Platform/pkg/blotter"
	"github.com/gitqueue/OG-Platform/pkg/orchestrator"
)

// Request aliases orchestrator.Request for callers of the top-level module.
type Request = orchestrator.Request

// TradeType aliases blotter.TradeType.
type TradeType = blotter.TradeType

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GeneratePage loads trade into the default dialog page and returns the page
// HTML. It is the simplest entry point for callers that just want markup.
func GeneratePage(ctx context.Context, trade string, data map[string]any, options ...orchestrator.Option) ([]byte, error) {
	return orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Trade: trade,
		Data:  data,
	})
}

// Trades lists the trade types available with the default catalog.
func Trades(options ...orchestrator.Option) ([]TradeType, error) {
	orch := orchestrator.New(options...)
	if err := orch.Err(); err != nil {
		return nil, err
	}
	return orch.Trades(), nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator so
// theme/variant choices are resolved ahead of rendering.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector, name, variant)
}
