package kernel

import "fmt"

// Tier identifies the storage width of a decimal.
type Tier int

const (
	Tier32 Tier = iota
	Tier64
	Tier128
)

// TierFor returns the narrowest tier able to hold precision digits.
func TierFor(precision int32) Tier {
	switch {
	case precision <= 9:
		return Tier32
	case precision <= 18:
		return Tier64
	}

	return Tier128
}

func (t Tier) String() string {
	switch t {
	case Tier32:
		return "decimal32"
	case Tier64:
		return "decimal64"
	case Tier128:
		return "decimal128"
	}

	return fmt.Sprintf("Tier(%d)", int(t))
}

// MaxPrecision returns the largest precision stored in the tier.
func (t Tier) MaxPrecision() int32 {
	switch t {
	case Tier32:
		return 9
	case Tier64:
		return 18
	}

	return 38
}

// Threshold is the output precision from which the tier can no longer use
// the fast path.
func (t Tier) Threshold() int32 {
	switch t {
	case Tier32:
		return 10
	case Tier64:
		return 19
	}

	return 38
}
