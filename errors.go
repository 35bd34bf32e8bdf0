package sigsim

import "github.com/pkg/errors"

// Error kinds reported by this package. Returned errors wrap one of these
// sentinels with context; test for them with errors.Is.
var (
	// ErrOutOfRange reports a vector index (or width) outside the declared
	// length.
	ErrOutOfRange = errors.New("index out of range")

	// ErrBadWiring reports an element constructed with signal counts or
	// flags incompatible with its arity.
	ErrBadWiring = errors.New("bad element wiring")

	// ErrUnsettled reports that a circuit kept changing past the engine's
	// dispatch budget. See Engine.Settle.
	ErrUnsettled = errors.New("circuit did not settle")
)
