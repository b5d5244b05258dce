package analytics

import "errors"

var ErrInvalidTimeframe = errors.New("invalid timeframe")
