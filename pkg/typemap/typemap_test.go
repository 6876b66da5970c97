package typemap_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gitqueue/OG-Platform/pkg/catalog"
	"github.com/gitqueue/OG-Platform/pkg/typemap"
)

const inlineDoc = `
openapi: 3.0.3
info:
  title: inline
  version: 1.0.0
paths: {}
components:
  schemas:
    Base:
      type: object
      properties:
        id:
          type: string
    Node:
      type: object
      properties:
        label:
          type: string
        parent:
          $ref: '#/components/schemas/Node'
    Trade:
      allOf:
        - $ref: '#/components/schemas/Base'
        - type: object
          properties:
            notional:
              type: number
              format: double
            tags:
              type: array
              items:
                type: string
            legs:
              type: array
              items:
                type: object
                properties:
                  rate:
                    type: number
            expiry:
              type: string
              format: date
`

func loadInline(t *testing.T) *typemap.Document {
	t.Helper()
	doc, err := typemap.Load(context.Background(), []byte(inlineDoc))
	if err != nil {
		t.Fatalf("load inline document: %v", err)
	}
	return doc
}

func TestTypeMap_Flatten(t *testing.T) {
	doc := loadInline(t)

	got, err := doc.TypeMap("Trade")
	if err != nil {
		t.Fatalf("type map: %v", err)
	}
	want := map[string]string{
		"id":          "string",
		"notional":    "number:double",
		"tags[]":      "string",
		"legs[].rate": "number",
		"expiry":      "string:date",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("type map mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeMap_RecursiveReference(t *testing.T) {
	doc := loadInline(t)

	got, err := doc.TypeMap("Node")
	if err != nil {
		t.Fatalf("type map: %v", err)
	}
	want := map[string]string{
		"label":  "string",
		"parent": "object",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("type map mismatch (-want +got):\n%s", diff)
	}
}

func TestTypeMap_SchemaNotFound(t *testing.T) {
	doc := loadInline(t)

	if _, err := doc.TypeMap("Missing"); !errors.Is(err, typemap.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound, got %v", err)
	}
	var nilDoc *typemap.Document
	if _, err := nilDoc.TypeMap("Trade"); !errors.Is(err, typemap.ErrSchemaNotFound) {
		t.Fatalf("expected ErrSchemaNotFound from nil document, got %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := typemap.Load(context.Background(), nil); err == nil {
		t.Fatalf("expected empty payload to fail")
	}
	if _, err := typemap.Load(context.Background(), []byte("openapi: [")); err == nil {
		t.Fatalf("expected malformed payload to fail")
	}
	if _, err := typemap.LoadFile(context.Background(), "does-not-exist.yaml"); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}

func TestDefault_CoversCatalogSchemas(t *testing.T) {
	doc, err := typemap.Default(context.Background())
	if err != nil {
		t.Fatalf("default document: %v", err)
	}
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}

	for _, trade := range cat.Trades {
		types, err := doc.TypeMap(trade.Schema)
		if err != nil {
			t.Fatalf("%s: %v", trade.ID, err)
		}
		if got := types["trade.counterparty"]; got != "string" {
			t.Fatalf("%s: trade.counterparty = %q, want string", trade.ID, got)
		}
		if got := types["security.fixedLeg.notional.amount"]; got != "number:double" {
			t.Fatalf("%s: fixed leg notional = %q, want number:double", trade.ID, got)
		}
		if got := types["security.tradeDate"]; got != "string:date" {
			t.Fatalf("%s: security.tradeDate = %q, want string:date", trade.ID, got)
		}
	}

	swaption, err := doc.TypeMap("SwaptionSecurity")
	if err != nil {
		t.Fatalf("swaption: %v", err)
	}
	if got := swaption["security.expiry"]; got != "string:date" {
		t.Fatalf("security.expiry = %q", got)
	}
	if _, ok := swaption["security.strike"]; ok {
		t.Fatalf("swaption should not carry variance fields: %v", swaption)
	}

	wantSchemas := []string{
		"FixedLeg", "FloatingLeg", "Notional", "QuickEntry", "SwapDetails",
		"SwaptionSecurity", "TradeDetails", "VarianceSwapSecurity",
	}
	if diff := cmp.Diff(wantSchemas, doc.Schemas()); diff != "" {
		t.Fatalf("schemas mismatch (-want +got):\n%s", diff)
	}
}
