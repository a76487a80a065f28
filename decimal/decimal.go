package decimal

import (
	"fmt"

	"github.com/apache/arrow/go/v11/arrow/decimal128"
	"github.com/zeebo/errs"
	"golang.org/x/exp/constraints"

	"github.com/calebcase/decarith/kernel"
)

// Error is the error class for this package.
var Error = errs.Class("decimal")

var (
	ErrInvalidFormat = Error.New("invalid decimal format")
	ErrOverflow      = Error.New("overflow")
	ErrDivideByZero  = Error.New("divide by zero")
	ErrInvalidLength = Error.New("invalid byte length")
)

// Value is a 128 bit unscaled decimal.
type Value struct {
	n decimal128.Num
}

// Zero is the zero value.
var Zero = Value{}

func FromInt64(v int64) Value { return Value{n: decimal128.FromI64(v)} }
func FromNum(n decimal128.Num) Value { return Value{n: n} }
func (v Value) Num() decimal128.Num { return v.n }
func (v Value) Sign() int { return v.n.Sign() }
func (v Value) Cmp(o Value) int { return kernel.Int128.Cmp(v.n, o.n) }
func (v Value) Negate() Value { return Value{n: v.n.Negate()} }
func (v Value) FitsInPrecision(p int32) bool { return kernel.Int128.Fits(v.n, p) }

// Rescale converts v from scale from to scale to. Raising the scale reports
// ErrOverflow when the result does not fit 128 bits; lowering it truncates.
func (v Value) Rescale(from, to int32) (Value, error) {
	if to >= from {
		n, ok := kernel.Int128.IncreaseScale(v.n, to-from)
		if !ok {
			return v, fmt.Errorf("%w: rescale %d to %d", ErrOverflow, from, to)
		}

		return Value{n: n}, nil
	}

	return Value{n: kernel.Int128.ReduceScale(v.n, from-to)}, nil
}

// Divide returns the truncated quotient and the remainder, which has the sign
// of v.
func (v Value) Divide(divisor Value) (q, r Value, err error) {
	if divisor.n == (decimal128.Num{}) {
		return q, r, ErrDivideByZero
	}

	ops := kernel.Int128.Ops()
	if v.n == ops.Min() && divisor.n == decimal128.FromI64(-1) {
		return q, r, fmt.Errorf("%w: divide", ErrOverflow)
	}

	qn, rn := ops.QuoRem(v.n, divisor.n)

	return Value{n: qn}, Value{n: rn}, nil
}

// ToInteger narrows v to T.
func ToInteger[T constraints.Signed](v Value) (T, error) {
	i, ok := kernel.Narrow64(v.n)
	if !ok || int64(T(i)) != i {
		return 0, fmt.Errorf("%w: %s does not fit %T", ErrOverflow, v, T(0))
	}

	return T(i), nil
}
