package blotter

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/gitqueue/OG-Platform/pkg/render"
)

// Constructor builds a loader for trade. NewSwapForm is the constructor for
// every swap-family trade.
type Constructor func(trade TradeType, host *Host, factory render.Factory, opts ...Option) (Loader, error)

// Entry pairs a trade type with the constructor that loads it.
type Entry struct {
	Trade TradeType
	New   Constructor
}

func swapConstructor(trade TradeType, host *Host, factory render.Factory, opts ...Option) (Loader, error) {
	return NewSwapForm(trade, host, factory, opts...)
}

// Registry resolves trade types by id or registration name.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	names   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// DefaultRegistry returns a registry holding the swaption and variance swap
// forms.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.MustRegister(Swaption)
	r.MustRegister(VarianceSwap)
	return r
}

// Register adds a swap-family trade type.
func (r *Registry) Register(trade TradeType) error {
	return r.RegisterEntry(Entry{Trade: trade, New: swapConstructor})
}

// RegisterEntry adds a trade type with a custom constructor. Both the id and
// the registration name must be unused.
func (r *Registry) RegisterEntry(entry Entry) error {
	if err := entry.Trade.Validate(); err != nil {
		return err
	}
	if entry.New == nil {
		return fmt.Errorf("blotter: constructor for %q is required", entry.Trade.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, key := range []string{entry.Trade.ID, entry.Trade.Name} {
		if _, exists := r.entries[normalizeKey(key)]; exists {
			return fmt.Errorf("%w: %q", ErrAlreadyRegistered, key)
		}
	}

	stored := entry
	r.entries[normalizeKey(entry.Trade.ID)] = &stored
	r.entries[normalizeKey(entry.Trade.Name)] = &stored
	r.names = append(r.names, entry.Trade.Name)
	sort.Strings(r.names)
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(trade TradeType) {
	if err := r.Register(trade); err != nil {
		panic(err)
	}
}

// Get looks a trade up by id or registration name.
func (r *Registry) Get(key string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[normalizeKey(key)]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownTradeType, key)
	}
	return *entry, nil
}

// Has reports whether key resolves to a trade type.
func (r *Registry) Has(key string) bool {
	_, err := r.Get(key)
	return err == nil
}

// New constructs the loader registered under key.
func (r *Registry) New(key string, host *Host, factory render.Factory, opts ...Option) (Loader, error) {
	entry, err := r.Get(key)
	if err != nil {
		return nil, err
	}
	return entry.New(entry.Trade, host, factory, opts...)
}

// List returns registration names, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.names...)
}

// Trades returns the registered trade types sorted by registration name.
func (r *Registry) Trades() []TradeType {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TradeType, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.entries[normalizeKey(name)].Trade)
	}
	return out
}

// Lookups are case-insensitive: "Swaption" and "swaption" resolve alike.
func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
