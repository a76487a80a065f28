package eval

import (
	"fmt"
	"runtime"

	"github.com/zeebo/errs"

	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/kernel"
)

// Error is the error class for this package.
var Error = errs.Class("eval")

var (
	ErrOverflow     = Error.New("overflow")
	ErrDivideByZero = Error.New("divide by zero")
	ErrUnsupported  = Error.New("unsupported")
)

// Policy selects how overflow is handled.
type Policy int

const (
	// OverflowError checks every step and reports ErrOverflow when the
	// result does not fit the output precision.
	OverflowError Policy = iota

	// OverflowWrap performs raw two's complement arithmetic with no checks.
	OverflowWrap
)

func (p Policy) String() string {
	switch p {
	case OverflowError:
		return "error"
	case OverflowWrap:
		return "wrap"
	}

	return fmt.Sprintf("Policy(%d)", int(p))
}

// ParsePolicy parses "error" or "wrap".
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "error":
		return OverflowError, nil
	case "wrap":
		return OverflowWrap, nil
	}

	return 0, Error.New("unknown overflow policy %q", name)
}

// Path identifies how a result was computed.
type Path int

const (
	// PathFast stored the combined integers directly.
	PathFast Path = iota

	// PathReduce rescaled the combined integers to the output scale.
	PathReduce

	// PathWide evaluated a 32 or 64 bit operation in the 128 bit tier.
	PathWide

	// PathLarge retried a 128 bit operation in the 256 bit intermediate.
	PathLarge
)

func (p Path) String() string {
	switch p {
	case PathFast:
		return "fast"
	case PathReduce:
		return "reduce"
	case PathWide:
		return "wide"
	case PathLarge:
		return "large"
	}

	return fmt.Sprintf("Path(%d)", int(p))
}

// Observer receives the outcome of every evaluation. Implementations must be
// safe for concurrent use.
type Observer interface {
	ObservePath(op dectype.Op, tier kernel.Tier, path Path)
	ObserveError(op dectype.Op, tier kernel.Tier, err error)
}

// Config controls evaluation.
type Config struct {
	Overflow Policy

	// Round selects half away from zero rounding when scale is reduced.
	// Otherwise the result is truncated.
	Round bool

	// BatchSize is the number of rows evaluated per batch chunk.
	BatchSize int

	// Parallelism bounds the number of chunks evaluated concurrently.
	Parallelism int

	// BatchAbort turns the first row error into a batch error.
	BatchAbort bool

	Observer Observer
}

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Overflow:    OverflowError,
		Round:       true,
		BatchSize:   1024,
		Parallelism: runtime.GOMAXPROCS(0),
	}
}

func (c Config) observe(op dectype.Op, tier kernel.Tier, path Path, err error) {
	if c.Observer == nil {
		return
	}

	if err != nil {
		c.Observer.ObserveError(op, tier, err)
		return
	}

	c.Observer.ObservePath(op, tier, path)
}
