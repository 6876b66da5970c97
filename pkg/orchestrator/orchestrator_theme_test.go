package orchestrator

import (
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"

	"github.com/gitqueue/OG-Platform/pkg/testsupport"
)

type stubSelector struct {
	selection *theme.Selection
	err       error
	calls     [][2]string
}

func (s *stubSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, [2]string{name, variant})
	return s.selection, s.err
}

func TestOrchestrator_ThemePartialReplacesTopLevelTemplate(t *testing.T) {
	manifest := &theme.Manifest{
		Name:    "acme",
		Version: "1.0.0",
		Templates: map[string]string{
			"og.blotter.forms.swaption_tash": "og.blotter.forms.variance_swap_tash",
		},
	}
	selector := &stubSelector{selection: &theme.Selection{Theme: "acme", Variant: "dark", Manifest: manifest}}

	orch := New(WithThemeSelector(selector, "acme", "dark"))
	if err := orch.Err(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if len(selector.calls) != 1 || selector.calls[0] != [2]string{"acme", "dark"} {
		t.Fatalf("unexpected selector calls: %+v", selector.calls)
	}

	page, err := orch.Generate(testsupport.Context(), Request{Trade: "swaption"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(page)
	if !strings.Contains(html, "OG-blotter-variance-swap") {
		t.Fatalf("expected themed template in page:\n%s", html)
	}
	if !strings.Contains(html, `data-module="og.blotter.forms.swaption_tash"`) {
		t.Fatalf("expected module name to be kept:\n%s", html)
	}
}

func TestOrchestrator_ThemeSelectionErrorSurfaces(t *testing.T) {
	selector := &stubSelector{err: errors.New("no such theme")}

	orch := New(WithThemeSelector(selector, "missing", ""))
	if orch.Err() == nil {
		t.Fatalf("expected setup error")
	}
	if _, err := orch.Generate(testsupport.Context(), Request{Trade: "swaption"}); err == nil {
		t.Fatalf("expected generate to surface setup error")
	}
}
