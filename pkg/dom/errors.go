package dom

import (
	"errors"
	"fmt"
)

// ErrRenderTargetMissing reports that a selector matched nothing in the
// document, so there is nowhere to mount or write.
var ErrRenderTargetMissing = errors.New("dom: render target missing")

// ErrInvalidSelector is returned when a selector cannot be compiled.
var ErrInvalidSelector = errors.New("dom: invalid selector")

// TargetMissingError carries the selector that failed to match. It matches
// ErrRenderTargetMissing under errors.Is.
type TargetMissingError struct {
	Selector string
}

func (e *TargetMissingError) Error() string {
	return fmt.Sprintf("dom: render target %q missing", e.Selector)
}

// Is lets errors.Is(err, ErrRenderTargetMissing) succeed.
func (e *TargetMissingError) Is(target error) bool {
	return target == ErrRenderTargetMissing
}
