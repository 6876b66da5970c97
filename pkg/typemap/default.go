package typemap

import (
	"context"
	_ "embed"
)

//go:embed securities.yaml
var defaultSecurities []byte

// Default loads the embedded securities document backing the built-in
// swaption and variance swap catalog entries.
func Default(ctx context.Context) (*Document, error) {
	return Load(ctx, defaultSecurities)
}
