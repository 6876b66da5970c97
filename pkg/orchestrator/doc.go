// Package orchestrator wires the catalog → registry → type map → renderer
// pipeline behind a single Generate call that returns a complete blotter page
// with the requested trade form mounted.
package orchestrator
