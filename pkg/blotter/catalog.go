package blotter

import (
	"fmt"

	"github.com/gitqueue/OG-Platform/pkg/catalog"
)

// TradeFromCatalog converts a catalog entry into a swap-family trade type.
func TradeFromCatalog(entry catalog.Trade) TradeType {
	return TradeType{
		ID:       entry.ID,
		Name:     entry.Name,
		Title:    entry.Title,
		Template: entry.Template,
	}
}

// RegisterCatalog registers every catalog trade as a swap-family form.
func (r *Registry) RegisterCatalog(cat catalog.Catalog) error {
	for _, entry := range cat.Trades {
		if err := r.Register(TradeFromCatalog(entry)); err != nil {
			return fmt.Errorf("blotter: register catalog trade %q: %w", entry.ID, err)
		}
	}
	return nil
}

// RegistryFromCatalog builds a registry holding exactly the catalog trades.
func RegistryFromCatalog(cat catalog.Catalog) (*Registry, error) {
	r := NewRegistry()
	if err := r.RegisterCatalog(cat); err != nil {
		return nil, err
	}
	return r, nil
}
