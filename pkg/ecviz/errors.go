package ecviz

import "github.com/pkg/errors"

// Configuration errors returned by Config.Validate and Compute. Returned
// errors wrap one of these values; test with errors.Is.
var (
	ErrInvalidModulus    = errors.New("invalid modulus")
	ErrSingularCurve     = errors.New("singular curve")
	ErrInvalidIterations = errors.New("invalid iteration count")
	ErrInvalidMode       = errors.New("invalid step mode")
	ErrBaseNotOnCurve    = errors.New("base point is not on the curve")
)
