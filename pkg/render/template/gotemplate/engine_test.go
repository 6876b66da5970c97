package gotemplate_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/gitqueue/OG-Platform/pkg/render/template/gotemplate"
	"github.com/gitqueue/OG-Platform/pkg/testsupport"
)

func templatesFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.tmpl":      {Data: []byte(`Hello {{ name }}!`)},
		"use-global.tmpl": {Data: []byte(`env={{ settings.env }}`)},
		"use-trim.tmpl":   {Data: []byte(`[{{ value|trim }}]`)},
		"blocks/a.tmpl":   {Data: []byte(`<p>{{ block.module }}</p>`)},
	}
}

func newEngine(t *testing.T, options ...gotemplate.Option) *gotemplate.Engine {
	t.Helper()

	engine, err := gotemplate.New(append([]gotemplate.Option{gotemplate.WithFS(templatesFS())}, options...)...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	const want = "Hello Ada!"
	if result != want {
		t.Fatalf("result mismatch\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("writer mismatch\nwant: %q\n got: %q", want, written)
	}
}

func TestEngine_RenderTemplateWithExtensionAndNestedPath(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("blocks/a.tmpl", map[string]any{
		"block": map[string]any{"module": "og.blotter.forms.block.swap_details_tash"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "<p>og.blotter.forms.block.swap_details_tash</p>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t, gotemplate.WithGlobalData(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}))

	got, err := engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=staging" {
		t.Fatalf("unexpected output %q", got)
	}

	if err := engine.GlobalContext(map[string]any{"settings": map[string]any{"env": "prod"}}); err != nil {
		t.Fatalf("global context: %v", err)
	}
	got, err = engine.RenderTemplate("use-global", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "env=prod" {
		t.Fatalf("unexpected output after update %q", got)
	}
}

func TestEngine_RenderStringAndStructData(t *testing.T) {
	engine := newEngine(t)

	type payload struct {
		Title string `json:"title"`
	}
	got, err := engine.RenderString(`<h2>{{ title }}</h2>`, payload{Title: "Swaption"})
	if err != nil {
		t.Fatalf("render string: %v", err)
	}
	if got != "<h2>Swaption</h2>" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_TrimFilter(t *testing.T) {
	engine := newEngine(t)

	got, err := engine.RenderTemplate("use-trim", map[string]any{"value": "  spaced  "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "[spaced]" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestEngine_HasTemplate(t *testing.T) {
	engine := newEngine(t)

	if !engine.HasTemplate("hello") || !engine.HasTemplate("hello.tmpl") {
		t.Fatalf("expected hello template to exist")
	}
	if engine.HasTemplate("missing") {
		t.Fatalf("expected missing template to be absent")
	}
}

func TestEngine_WithDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greet.tmpl"), []byte("hi {{ name }}"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	engine, err := gotemplate.New(gotemplate.WithDir(dir))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if !engine.HasTemplate("greet") {
		t.Fatalf("expected greet template in %s", dir)
	}
	got, err := engine.RenderTemplate("greet", map[string]any{"name": "desk"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got != "hi desk" {
		t.Fatalf("unexpected output %q", got)
	}

	if _, err := gotemplate.New(gotemplate.WithDir("  ")); err == nil {
		t.Fatalf("expected blank dir to leave the engine without templates")
	}
}

func TestEngine_Errors(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without template fs")
	}

	engine := newEngine(t)
	_, err := engine.RenderTemplate("missing", nil)
	if err == nil || !strings.Contains(err.Error(), "missing.tmpl") {
		t.Fatalf("expected load error naming template, got %v", err)
	}
}
