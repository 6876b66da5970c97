package blotter

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gitqueue/OG-Platform/pkg/dom"
	"github.com/gitqueue/OG-Platform/pkg/render"
)

// HostOption configures a Host.
type HostOption func(*Host)

// WithTitleSelector overrides the element that receives the form title.
func WithTitleSelector(selector string) HostOption {
	return func(h *Host) {
		if s := strings.TrimSpace(selector); s != "" {
			h.titleSelector = s
		}
	}
}

// WithBlockSelector overrides the container the form mounts into.
func WithBlockSelector(selector string) HostOption {
	return func(h *Host) {
		if s := strings.TrimSpace(selector); s != "" {
			h.blockSelector = s
		}
	}
}

// Host is the dialog a blotter form mounts into: a document plus the title
// and container selectors. A host carries at most one mounted form; mounting
// another evicts the current one.
type Host struct {
	doc           *dom.Document
	titleSelector string
	blockSelector string

	mu      sync.Mutex
	current *lease
}

type lease struct {
	trade   TradeType
	form    render.Form
	revoked bool
}

// NewHost binds a host to doc using the default blotter selectors unless
// overridden.
func NewHost(doc *dom.Document, options ...HostOption) (*Host, error) {
	if doc == nil {
		return nil, errors.New("blotter: host document is nil")
	}
	h := &Host{
		doc:           doc,
		titleSelector: render.TitleSelector,
		blockSelector: render.BlockSelector,
	}
	for _, opt := range options {
		if opt != nil {
			opt(h)
		}
	}
	return h, nil
}

// Document returns the host document.
func (h *Host) Document() *dom.Document { return h.doc }

// TitleSelector returns the title element selector.
func (h *Host) TitleSelector() string { return h.titleSelector }

// BlockSelector returns the form container selector.
func (h *Host) BlockSelector() string { return h.blockSelector }

// Mounted reports the trade type currently mounted, if any.
func (h *Host) Mounted() (TradeType, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.current == nil {
		return TradeType{}, false
	}
	return h.current.trade, true
}

// mount renders form into the container and then writes the title. Both
// targets are checked before anything is touched.
func (h *Host) mount(ctx context.Context, trade TradeType, form render.Form, title string) (*lease, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, selector := range []string{h.titleSelector, h.blockSelector} {
		found, err := h.doc.Has(selector)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, &dom.TargetMissingError{Selector: selector}
		}
	}

	if h.current != nil {
		if err := h.releaseLocked(h.current); err != nil {
			return nil, fmt.Errorf("blotter: evict %s: %w", h.current.trade.Name, err)
		}
	}

	if err := form.Dom(ctx); err != nil {
		return nil, err
	}
	if err := h.doc.SetText(h.titleSelector, title); err != nil {
		_ = form.Destroy()
		return nil, err
	}

	l := &lease{trade: trade, form: form}
	h.current = l
	return l, nil
}

// active reports whether l is still the mounted lease.
func (h *Host) active(l *lease) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return l != nil && !l.revoked && h.current == l
}

// release unmounts the form held by l. Revoked or stale leases are ignored.
func (h *Host) release(l *lease) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.releaseLocked(l)
}

func (h *Host) releaseLocked(l *lease) error {
	if l == nil || l.revoked {
		return nil
	}
	l.revoked = true
	if h.current != l {
		return nil
	}
	h.current = nil

	err := l.form.Destroy()
	if titleErr := h.doc.SetText(h.titleSelector, ""); titleErr != nil && !errors.Is(titleErr, dom.ErrRenderTargetMissing) {
		err = errors.Join(err, titleErr)
	}
	return err
}
