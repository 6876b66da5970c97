// Package template defines the template seam the blotter form renderer draws
// on. Implementations live in subpackages (see gotemplate).
package template
