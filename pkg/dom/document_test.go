package dom_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gitqueue/OG-Platform/pkg/dom"
)

const page = `<!DOCTYPE html>
<html><head><title>blotter</title></head>
<body>
  <div class="OG-blotter-form">
    <h2 class="OG-blotter-form-title">old title</h2>
    <div class="OG-blotter-form-block" id="main"><p>placeholder</p></div>
  </div>
  <div class="sidebar"><span class="note">keep</span></div>
</body></html>`

func mustParse(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestDocument_SetTextStoresValueVerbatim(t *testing.T) {
	doc := mustParse(t)

	const title = `Swaption <b>&amp;</b> "co"`
	if err := doc.SetText(".OG-blotter-form-title", title); err != nil {
		t.Fatalf("set text: %v", err)
	}

	got, err := doc.Text(".OG-blotter-form-title")
	if err != nil {
		t.Fatalf("text: %v", err)
	}
	if got != title {
		t.Fatalf("title mismatch\nwant: %q\n got: %q", title, got)
	}

	inner, err := doc.InnerHTML(".OG-blotter-form-title")
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	if strings.Contains(inner, "<b>") {
		t.Fatalf("expected title markup to be escaped, got %q", inner)
	}
}

func TestDocument_ReplaceChildren(t *testing.T) {
	doc := mustParse(t)

	if err := doc.ReplaceChildren(".OG-blotter-form-block", `<form><fieldset class="a"></fieldset><fieldset class="b"></fieldset></form>`); err != nil {
		t.Fatalf("replace children: %v", err)
	}

	inner, err := doc.InnerHTML("div#main")
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	want := `<form><fieldset class="a"></fieldset><fieldset class="b"></fieldset></form>`
	if inner != want {
		t.Fatalf("inner mismatch\nwant: %q\n got: %q", want, inner)
	}
	if strings.Contains(doc.String(), "placeholder") {
		t.Fatalf("expected previous children to be removed")
	}
	if found, err := doc.Has(".sidebar .note"); err != nil || !found {
		t.Fatalf("expected unrelated nodes to survive (found=%v, err=%v)", found, err)
	}
}

func TestDocument_Clear(t *testing.T) {
	doc := mustParse(t)

	if err := doc.Clear(".OG-blotter-form-block"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	inner, err := doc.InnerHTML(".OG-blotter-form-block")
	if err != nil {
		t.Fatalf("inner html: %v", err)
	}
	if inner != "" {
		t.Fatalf("expected empty container, got %q", inner)
	}
}

func TestDocument_MissingTarget(t *testing.T) {
	doc := mustParse(t)

	err := doc.SetText(".OG-missing", "x")
	if !errors.Is(err, dom.ErrRenderTargetMissing) {
		t.Fatalf("expected ErrRenderTargetMissing, got %v", err)
	}
	var missing *dom.TargetMissingError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *TargetMissingError, got %T", err)
	}
	if missing.Selector != ".OG-missing" {
		t.Fatalf("unexpected selector %q", missing.Selector)
	}

	if err := doc.ReplaceChildren(".OG-missing", "<p></p>"); !errors.Is(err, dom.ErrRenderTargetMissing) {
		t.Fatalf("replace: expected ErrRenderTargetMissing, got %v", err)
	}
	if _, err := doc.Text(".OG-missing"); !errors.Is(err, dom.ErrRenderTargetMissing) {
		t.Fatalf("text: expected ErrRenderTargetMissing, got %v", err)
	}
}

func TestDocument_SelectorMatching(t *testing.T) {
	doc := mustParse(t)

	cases := []struct {
		selector string
		want     bool
	}{
		{".OG-blotter-form-block", true},
		{"div.OG-blotter-form-block", true},
		{"span.OG-blotter-form-block", false},
		{"#main", true},
		{".OG-blotter-form #main", true},
		{".sidebar #main", false},
		{"h2", true},
		{".OG-blotter-form-title.other", false},
		{".OG-blotter-form > .OG-blotter-form-block", true},
		{"body > .OG-blotter-form-block", false},
		{"div[class~=OG-blotter-form-block]", true},
		{"h2:first-of-type", true},
		{"h2 + div#main", true},
		{".OG-missing, .note", true},
	}
	for _, tc := range cases {
		got, err := doc.Has(tc.selector)
		if err != nil {
			t.Errorf("Has(%q): %v", tc.selector, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Has(%q) = %v, want %v", tc.selector, got, tc.want)
		}
	}
}

func TestDocument_InvalidSelector(t *testing.T) {
	doc := mustParse(t)

	for _, raw := range []string{"", "  ", "div >", "a[href", ".", "#"} {
		if err := doc.SetText(raw, "x"); !errors.Is(err, dom.ErrInvalidSelector) {
			t.Errorf("SetText(%q): expected ErrInvalidSelector, got %v", raw, err)
		}
		found, err := doc.Has(raw)
		if !errors.Is(err, dom.ErrInvalidSelector) {
			t.Errorf("Has(%q): expected ErrInvalidSelector, got %v", raw, err)
		}
		if errors.Is(err, dom.ErrRenderTargetMissing) || found {
			t.Errorf("Has(%q): invalid selector reported as a match or a missing target", raw)
		}
	}
}
