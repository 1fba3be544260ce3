package calibration

import "github.com/pkg/errors"

// ErrInvalidConfiguration indicates the configuration cannot produce a
// printable grid. The wrapped message names the offending field.
var ErrInvalidConfiguration = errors.New("invalid configuration")
