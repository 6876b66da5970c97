package testsupport

import (
	"context"
	"sync"

	"github.com/gitqueue/OG-Platform/pkg/render"
)

// FormCall records one form construction made through a RecordingFactory.
type FormCall struct {
	Options render.FormOptions
	Form    *RecordedForm
}

// RecordingFactory is a render.Factory that keeps every constructed form so
// tests can assert on what a loader built. When Next is set, Dom and Destroy
// calls are forwarded to a form built by Next.
type RecordingFactory struct {
	Next render.Factory
	// DomErr, when set, is returned by every Dom call.
	DomErr error

	mu    sync.Mutex
	calls []FormCall
}

var _ render.Factory = (*RecordingFactory)(nil)

// NewForm records the construction and returns a RecordedForm.
func (f *RecordingFactory) NewForm(target render.Target, options render.FormOptions) render.Form {
	form := &RecordedForm{options: options, domErr: f.DomErr}
	if f.Next != nil {
		form.next = f.Next.NewForm(target, options)
	}

	f.mu.Lock()
	f.calls = append(f.calls, FormCall{Options: options, Form: form})
	f.mu.Unlock()
	return form
}

// Calls returns the recorded constructions in order.
func (f *RecordingFactory) Calls() []FormCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]FormCall, len(f.calls))
	copy(out, f.calls)
	return out
}

// RecordedForm captures block appends and lifecycle calls.
type RecordedForm struct {
	mu        sync.Mutex
	options   render.FormOptions
	children  []*render.Block
	next      render.Form
	domErr    error
	DomCalls  int
	Destroyed int
}

func (f *RecordedForm) ID() string {
	if f.next != nil {
		return f.next.ID()
	}
	return "recorded"
}

func (f *RecordedForm) Options() render.FormOptions { return f.options }

func (f *RecordedForm) Append(blocks ...*render.Block) {
	f.mu.Lock()
	f.children = append(f.children, blocks...)
	f.mu.Unlock()
	if f.next != nil {
		f.next.Append(blocks...)
	}
}

func (f *RecordedForm) Children() []*render.Block {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*render.Block, len(f.children))
	copy(out, f.children)
	return out
}

// Modules lists the appended block modules in order.
func (f *RecordedForm) Modules() []string {
	children := f.Children()
	out := make([]string, 0, len(children))
	for _, child := range children {
		out = append(out, child.Module)
	}
	return out
}

func (f *RecordedForm) Dom(ctx context.Context) error {
	f.mu.Lock()
	f.DomCalls++
	f.mu.Unlock()
	if f.domErr != nil {
		return f.domErr
	}
	if f.next != nil {
		return f.next.Dom(ctx)
	}
	return nil
}

func (f *RecordedForm) Destroy() error {
	f.mu.Lock()
	f.Destroyed++
	f.mu.Unlock()
	if f.next != nil {
		return f.next.Destroy()
	}
	return nil
}
