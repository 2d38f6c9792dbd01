package ekf

import "errors"

var (
	errNotInitialized = errors.New("filter is not initialized, call SetInitialState first")
	errNonPositiveDt  = errors.New("dt must be positive")
)
