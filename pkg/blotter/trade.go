package blotter

import (
	"errors"
	"strings"
)

// Block template modules shared by every swap-family form, in layout order.
const (
	BlockSwapQuickEntry      = "og.blotter.forms.block.swap_quick_entry_tash"
	BlockSwapDetails         = "og.blotter.forms.block.swap_details_tash"
	BlockSwapDetailsFixed    = "og.blotter.forms.block.swap_details_fixed_tash"
	BlockSwapDetailsFloating = "og.blotter.forms.block.swap_details_floating_tash"
)

// TradeType identifies a blotter form: ID is the short key used by callers,
// Name the registration name, Template the top-level template module.
type TradeType struct {
	ID       string
	Name     string
	Title    string
	Template string
}

var (
	// Swaption is an option on an interest-rate swap.
	Swaption = TradeType{
		ID:       "swaption",
		Name:     "og.blotter.forms.Swaption",
		Title:    "Swaption",
		Template: "og.blotter.forms.swaption_tash",
	}
	// VarianceSwap is a swap on realised variance.
	VarianceSwap = TradeType{
		ID:       "variance_swap",
		Name:     "og.blotter.forms.Variance_swap",
		Title:    "Variance Swap",
		Template: "og.blotter.forms.variance_swap_tash",
	}
)

// Validate reports missing identity fields.
func (t TradeType) Validate() error {
	switch {
	case strings.TrimSpace(t.ID) == "":
		return errors.New("blotter: trade type id is required")
	case strings.TrimSpace(t.Name) == "":
		return errors.New("blotter: trade type name is required")
	case strings.TrimSpace(t.Title) == "":
		return errors.New("blotter: trade type title is required")
	case strings.TrimSpace(t.Template) == "":
		return errors.New("blotter: trade type template is required")
	}
	return nil
}

// SwapFamilyBlocks returns the block layout shared by swap-like forms:
// quick entry, details, fixed leg, floating leg.
func SwapFamilyBlocks() []BlockDescriptor {
	return []BlockDescriptor{
		{TemplateRef: BlockSwapQuickEntry, Extras: map[string]any{}},
		{TemplateRef: BlockSwapDetails, Extras: map[string]any{}},
		{TemplateRef: BlockSwapDetailsFixed, Extras: map[string]any{}},
		{TemplateRef: BlockSwapDetailsFloating, Extras: map[string]any{}},
	}
}
