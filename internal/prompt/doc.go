// Package prompt drives the interactive pieces of the blotter CLI: choosing a
// trade type and collecting values to prefill the rendered form.
package prompt
