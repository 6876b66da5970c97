// Package testsupport holds helpers shared by the blotter test suites.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/gitqueue/OG-Platform/pkg/dom"
	"github.com/gitqueue/OG-Platform/pkg/render"
)

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustShellDocument parses the embedded blotter host page.
func MustShellDocument(t *testing.T) *dom.Document {
	t.Helper()
	return MustDocument(t, render.ShellHTML())
}

// MustDocument parses markup into a document, failing the test on error.
func MustDocument(t *testing.T, markup string) *dom.Document {
	t.Helper()

	doc, err := dom.ParseString(markup)
	if err != nil {
		t.Fatalf("parse document: %v", err)
	}
	return doc
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, fn func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := fn(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}
	return out, buf.String()
}

// IndexOrder asserts that every needle occurs in haystack, in the given order.
func IndexOrder(t *testing.T, haystack string, needles ...string) {
	t.Helper()

	offset := 0
	for _, needle := range needles {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			t.Fatalf("expected %q after offset %d in:\n%s", needle, offset, haystack)
		}
		offset += idx + len(needle)
	}
}
