// Package core: sentinel error kinds shared by the whole engine.
// The error taxonomy is a closed set of three kinds. Callers attach context
// by wrapping with fmt.Errorf("pkg: detail: %w", core.ErrInvalidData) so that
// errors.Is keeps matching the kind at any distance.

package core

import "errors"

var (
	// ErrInvalidData marks a contract violation at an API boundary:
	// non-finite numerics where finiteness is required, reversed or
	// degenerate ranges, invalid OHLC bars, out-of-order realtime updates,
	// non-positive widths/spacings, unknown pane ids, duplicate plugin ids.
	// The engine state is unchanged when this is returned.
	ErrInvalidData = errors.New("core: invalid data")

	// ErrUnsupported marks an operation that is meaningful but not allowed
	// under the current configuration, e.g. switching the price scale to
	// Log mode while the domain includes non-positive values.
	ErrUnsupported = errors.New("core: unsupported operation")

	// ErrBackendFailure marks a failure reported by a renderer adapter.
	ErrBackendFailure = errors.New("core: renderer backend failure")
)
