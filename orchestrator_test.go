package ogplatform_test

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	ogplatform "github.com/gitqueue/OG-Platform"
)

func TestGeneratePage(t *testing.T) {
	page, err := ogplatform.GeneratePage(context.Background(), "swaption", map[string]any{
		"security": map[string]any{"currency": "EUR"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	html := string(page)
	if !strings.Contains(html, `<h2 class="OG-blotter-form-title">Swaption</h2>`) {
		t.Fatalf("expected title in page:\n%s", html)
	}
	if !strings.Contains(html, `value="EUR"`) {
		t.Fatalf("expected currency prefilled:\n%s", html)
	}
}

func TestTrades(t *testing.T) {
	trades, err := ogplatform.Trades()
	if err != nil {
		t.Fatalf("trades: %v", err)
	}
	if len(trades) != 2 || trades[0].Title != "Swaption" || trades[1].Title != "Variance Swap" {
		t.Fatalf("unexpected trades %+v", trades)
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	for _, name := range []string{
		"og.blotter.forms.swaption_tash.tmpl",
		"og.blotter.forms.variance_swap_tash.tmpl",
		"og.blotter.forms.block.swap_quick_entry_tash.tmpl",
	} {
		if _, err := fs.Stat(ogplatform.EmbeddedTemplates(), name); err != nil {
			t.Fatalf("expected embedded template %s: %v", name, err)
		}
	}
	if !strings.Contains(ogplatform.ShellHTML(), "OG-blotter-form-block") {
		t.Fatalf("expected shell to carry the form container")
	}
}
