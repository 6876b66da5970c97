package blotter

import "errors"

var (
	// ErrUnknownTradeType is returned when a registry lookup misses.
	ErrUnknownTradeType = errors.New("blotter: unknown trade type")
	// ErrAlreadyRegistered is returned when a trade id or name is reused.
	ErrAlreadyRegistered = errors.New("blotter: trade type already registered")
)
