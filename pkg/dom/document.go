package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"golang.org/x/net/html"
)

// Document is a parsed HTML page that forms mount into. All mutations are
// serialised so a document can be shared by loaders on different goroutines.
type Document struct {
	mu   sync.RWMutex
	root *html.Node
}

// Parse reads an HTML page into a Document.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("dom: reader is nil")
	}
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Has reports whether the selector matches at least one element. A selector
// that does not compile returns an error wrapping ErrInvalidSelector.
func (d *Document) Has(selector string) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	_, err := d.query(selector)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrRenderTargetMissing):
		return false, nil
	default:
		return false, err
	}
}

// SetText replaces the children of every matching element with a single text
// node. The value is stored verbatim and escaped only when rendered.
func (d *Document) SetText(selector, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	nodes, err := d.query(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		removeChildren(n)
		n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return nil
}

// ReplaceChildren parses fragment in the context of each matching element and
// swaps it in for the element's current children.
func (d *Document) ReplaceChildren(selector, fragment string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	nodes, err := d.query(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		children, err := html.ParseFragment(strings.NewReader(fragment), n)
		if err != nil {
			return fmt.Errorf("dom: parse fragment for %q: %w", selector, err)
		}
		removeChildren(n)
		for _, child := range children {
			n.AppendChild(child)
		}
	}
	return nil
}

// Clear removes the children of every matching element.
func (d *Document) Clear(selector string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	nodes, err := d.query(selector)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		removeChildren(n)
	}
	return nil
}

// Text returns the text content of the first matching element.
func (d *Document) Text(selector string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, err := d.first(selector)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	collectText(n, &b)
	return b.String(), nil
}

// InnerHTML renders the children of the first matching element.
func (d *Document) InnerHTML(selector string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, err := d.first(selector)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if err := html.Render(&buf, child); err != nil {
			return "", fmt.Errorf("dom: render %q: %w", selector, err)
		}
	}
	return buf.String(), nil
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("dom: render: %w", err)
	}
	return nil
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// first returns the first match. Callers hold d.mu.
func (d *Document) first(selector string) (*html.Node, error) {
	nodes, err := d.query(selector)
	if err != nil {
		return nil, err
	}
	return nodes[0], nil
}

func removeChildren(n *html.Node) {
	for child := n.FirstChild; child != nil; {
		next := child.NextSibling
		n.RemoveChild(child)
		child = next
	}
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, b)
	}
}
