// Package catalog reads the YAML list of trade types the blotter offers.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// ErrInvalidCatalog wraps every validation failure.
var ErrInvalidCatalog = errors.New("catalog: invalid catalog")

// Catalog is the decoded document.
type Catalog struct {
	Version int     `yaml:"version"`
	Trades  []Trade `yaml:"trades"`
}

// Trade describes one swap-family form. Schema optionally names the OpenAPI
// component the form's type map is derived from.
type Trade struct {
	ID       string `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Title    string `yaml:"title" json:"title"`
	Template string `yaml:"template" json:"template"`
	Schema   string `yaml:"schema,omitempty" json:"schema,omitempty"`
}

// Default returns the embedded catalog.
func Default() (Catalog, error) {
	return Load(bytes.NewReader(defaultCatalog))
}

// LoadFile reads and validates a catalog from disk.
func LoadFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("catalog: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes and validates a catalog. Unknown keys are rejected.
func Load(r io.Reader) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out Catalog
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, fmt.Errorf("%w: empty document", ErrInvalidCatalog)
		}
		return Catalog{}, fmt.Errorf("catalog: decode: %w", err)
	}
	for i := range out.Trades {
		out.Trades[i] = out.Trades[i].normalized()
	}
	if err := out.Validate(); err != nil {
		return Catalog{}, err
	}
	return out, nil
}

// Validate checks required fields and uniqueness of ids and names.
func (c Catalog) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidCatalog, c.Version)
	}
	if len(c.Trades) == 0 {
		return fmt.Errorf("%w: no trades", ErrInvalidCatalog)
	}

	seen := make(map[string]int, len(c.Trades)*2)
	for i, trade := range c.Trades {
		for field, value := range map[string]string{
			"id":       trade.ID,
			"name":     trade.Name,
			"title":    trade.Title,
			"template": trade.Template,
		} {
			if value == "" {
				return fmt.Errorf("%w: trades[%d]: %s is required", ErrInvalidCatalog, i, field)
			}
		}
		for _, key := range []string{trade.ID, trade.Name} {
			k := strings.ToLower(key)
			if prev, dup := seen[k]; dup && prev != i {
				return fmt.Errorf("%w: trades[%d]: %q already used by trades[%d]", ErrInvalidCatalog, i, key, prev)
			}
			seen[k] = i
		}
	}
	return nil
}

// Find returns the trade with the given id or name.
func (c Catalog) Find(key string) (Trade, bool) {
	key = strings.ToLower(strings.TrimSpace(key))
	for _, trade := range c.Trades {
		if strings.ToLower(trade.ID) == key || strings.ToLower(trade.Name) == key {
			return trade, true
		}
	}
	return Trade{}, false
}

func (t Trade) normalized() Trade {
	t.ID = strings.TrimSpace(t.ID)
	t.Name = strings.TrimSpace(t.Name)
	t.Title = strings.TrimSpace(t.Title)
	t.Template = strings.TrimSpace(t.Template)
	t.Schema = strings.TrimSpace(t.Schema)
	return t
}
