// Package blotter builds the trade-entry forms of the blotter dialog.
//
// Each trade type is a loader with two operations: Load assembles a title and
// an ordered list of blocks, hands them to a render.Factory and mounts the
// result on a Host; Kill tears the mounted form down again. Swaption and
// variance swap share the swap-family block layout and differ only in title
// and top-level template.
//
// Loaders are resolved through an explicit Registry rather than a global
// module table:
//
//	reg := blotter.DefaultRegistry()
//	loader, err := reg.New("swaption", host, renderer)
//	if err != nil {
//		return err
//	}
//	if err := loader.Load(ctx); err != nil {
//		return err
//	}
//	defer loader.Kill()
package blotter
