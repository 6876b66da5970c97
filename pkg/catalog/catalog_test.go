package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gitqueue/OG-Platform/pkg/catalog"
)

func TestDefault(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	want := []catalog.Trade{
		{
			ID:       "swaption",
			Name:     "og.blotter.forms.Swaption",
			Title:    "Swaption",
			Template: "og.blotter.forms.swaption_tash",
			Schema:   "SwaptionSecurity",
		},
		{
			ID:       "variance_swap",
			Name:     "og.blotter.forms.Variance_swap",
			Title:    "Variance Swap",
			Template: "og.blotter.forms.variance_swap_tash",
			Schema:   "VarianceSwapSecurity",
		},
	}
	if diff := cmp.Diff(want, cat.Trades); diff != "" {
		t.Fatalf("default trades mismatch (-want +got):\n%s", diff)
	}
}

func TestFind(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	for _, key := range []string{"swaption", "og.blotter.forms.Swaption", " SWAPTION "} {
		trade, ok := cat.Find(key)
		if !ok || trade.ID != "swaption" {
			t.Fatalf("Find(%q) = %+v, %v", key, trade, ok)
		}
	}
	if _, ok := cat.Find("fx_forward"); ok {
		t.Fatalf("expected fx_forward to be absent")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := `version: 1
trades:
  - id: cap_floor
    name: og.blotter.forms.Cap_floor
    title: "  Cap / Floor  "
    template: og.blotter.forms.cap_floor_tash
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	cat, err := catalog.LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(cat.Trades) != 1 || cat.Trades[0].Title != "Cap / Floor" {
		t.Fatalf("unexpected trades: %+v", cat.Trades)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"version":        "version: 2\ntrades:\n  - {id: a, name: b, title: c, template: d}\n",
		"no trades":      "version: 1\ntrades: []\n",
		"missing title":  "version: 1\ntrades:\n  - {id: a, name: b, template: d}\n",
		"duplicate id":   "version: 1\ntrades:\n  - {id: a, name: b, title: c, template: d}\n  - {id: A, name: e, title: f, template: g}\n",
		"id equals name": "version: 1\ntrades:\n  - {id: a, name: b, title: c, template: d}\n  - {id: b, name: e, title: f, template: g}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Load(strings.NewReader(doc))
			if !errors.Is(err, catalog.ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestLoad_UnknownField(t *testing.T) {
	doc := "version: 1\ntrades:\n  - {id: a, name: b, title: c, template: d, colour: red}\n"
	if _, err := catalog.Load(strings.NewReader(doc)); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
}
