package health

import "errors"

var (
	// ErrCheckTimeout indicates a check did not finish inside the
	// aggregator's time budget.
	ErrCheckTimeout = errors.New("health: check timed out")

	// ErrUnknownComponent indicates no checker is registered under the
	// requested name.
	ErrUnknownComponent = errors.New("health: unknown component")
)
