package dom

import (
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

func compile(selector string) (cascadia.Selector, error) {
	raw := strings.TrimSpace(selector)
	if raw == "" {
		return nil, fmt.Errorf("%w: empty selector", ErrInvalidSelector)
	}
	sel, err := cascadia.Compile(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSelector, selector, err)
	}
	return sel, nil
}

// query compiles selector and returns the matching elements. Callers hold
// d.mu.
func (d *Document) query(selector string) ([]*html.Node, error) {
	sel, err := compile(selector)
	if err != nil {
		return nil, err
	}
	nodes := cascadia.QueryAll(d.root, sel)
	if len(nodes) == 0 {
		return nil, &TargetMissingError{Selector: selector}
	}
	return nodes, nil
}
