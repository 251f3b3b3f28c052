package timeline

import "errors"

var (
	// ErrInvalidWindow indicates a view window whose end precedes its start.
	ErrInvalidWindow = errors.New("view window end precedes start")

	// ErrDegenerateWindow indicates a zero-duration view window reached the
	// projector, which would otherwise divide by zero.
	ErrDegenerateWindow = errors.New("view window has zero duration")

	// ErrNoData indicates there were no intervals to derive a window from and
	// no explicit window was supplied.
	ErrNoData = errors.New("no intervals and no explicit view window")
)
