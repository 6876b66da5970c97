// Package render is the generic blotter form renderer. A Form is constructed
// with a top-level template module and a target selector, collects Blocks in
// order and, on Dom, renders each block template, wraps them in the form
// template, sanitises the result and mounts it into a Target such as a
// *dom.Document.
//
// Templates are resolved by module name: the block
// "og.blotter.forms.block.swap_details_tash" renders
// "og.blotter.forms.block.swap_details_tash.tmpl" unless the active theme maps
// the module to another partial.
package render
