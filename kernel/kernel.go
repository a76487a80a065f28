package kernel

import (
	"github.com/apache/arrow/go/v11/arrow/decimal128"
	"github.com/apache/arrow/go/v11/arrow/decimal256"
	"github.com/zeebo/errs"
)

// Error is the error class for this package.
var Error = errs.Class("kernel")

// ErrOverflow is returned when a checked operation does not fit the tier.
var ErrOverflow = Error.New("overflow")

// Kernel implements scaled integer arithmetic for one tier.
type Kernel[T comparable] struct {
	ops      Ops[T]
	maxScale int32

	// table[i] = 10^i and half[i] = 10^i / 2 for 0 <= i <= maxScale.
	table []T
	half  []T

	zero     T
	one      T
	minusOne T
	min      T
}

var (
	Int32  = newKernel[int32](int32Ops{}, 9)
	Int64  = newKernel[int64](int64Ops{}, 18)
	Int128 = newKernel[decimal128.Num](int128Ops{}, 38)

	// Int256 holds intermediates of the 128 bit tier. Its table reaches
	// 10^76, the largest power of ten below 2^255.
	Int256 = newKernel[decimal256.Num](int256Ops{}, 76)
)

func newKernel[T comparable](ops Ops[T], maxScale int32) *Kernel[T] {
	k := &Kernel[T]{
		ops:      ops,
		maxScale: maxScale,
		table:    make([]T, maxScale+1),
		half:     make([]T, maxScale+1),
		zero:     ops.FromInt64(0),
		one:      ops.FromInt64(1),
		minusOne: ops.FromInt64(-1),
		min:      ops.Min(),
	}

	ten := ops.FromInt64(10)
	two := ops.FromInt64(2)

	k.table[0] = k.one
	for i := 1; i <= int(maxScale); i++ {
		k.table[i] = ops.Mul(k.table[i-1], ten)
		k.half[i], _ = ops.QuoRem(k.table[i], two)
	}

	return k
}

// Ops returns the raw (wrapping) operations of the tier.
func (k *Kernel[T]) Ops() Ops[T] { return k.ops }

// Bits returns the width of the tier.
func (k *Kernel[T]) Bits() int { return k.ops.Bits() }

// MaxScale returns the largest scale present in the multiplier table.
func (k *Kernel[T]) MaxScale() int32 { return k.maxScale }

// FromInt64 converts v to the tier type.
func (k *Kernel[T]) FromInt64(v int64) T { return k.ops.FromInt64(v) }

// ScaleMultiplier returns 10^scale, or -1 when scale is outside the table.
func (k *Kernel[T]) ScaleMultiplier(scale int32) T {
	if scale < 0 || scale > k.maxScale {
		return k.minusOne
	}

	return k.table[scale]
}

// MulChecked returns a*b and whether the product fit.
func (k *Kernel[T]) MulChecked(a, b T) (T, bool) {
	if a == k.zero || b == k.zero {
		return k.zero, true
	}

	// Division cannot detect these: Min / -1 wraps back to Min.
	if (a == k.minusOne && b == k.min) || (b == k.minusOne && a == k.min) {
		return k.min, false
	}

	p := k.ops.Mul(a, b)
	q, _ := k.ops.QuoRem(p, a)

	return p, q == b
}

// SafeMultiply returns a*b. Unless mayOverflow is set the product is
// verified and ErrOverflow is returned when it wrapped.
func (k *Kernel[T]) SafeMultiply(a, b T, mayOverflow bool) (T, error) {
	if mayOverflow {
		return k.ops.Mul(a, b), nil
	}

	p, ok := k.MulChecked(a, b)
	if !ok {
		return p, ErrOverflow
	}

	return p, nil
}

// MultiplyByScale returns v * 10^scale.
func (k *Kernel[T]) MultiplyByScale(v T, scale int32, mayOverflow bool) (T, error) {
	if scale < 0 || scale > k.maxScale {
		if mayOverflow {
			return k.IncreaseScaleWrap(v, scale), nil
		}

		if v == k.zero {
			return v, nil
		}

		return v, ErrOverflow
	}

	return k.SafeMultiply(v, k.table[scale], mayOverflow)
}

// AddChecked returns a+b and whether the sum fit.
func (k *Kernel[T]) AddChecked(a, b T) (T, bool) {
	s := k.ops.Add(a, b)

	an, bn, sn := k.ops.Sign(a) < 0, k.ops.Sign(b) < 0, k.ops.Sign(s) < 0

	return s, !(an == bn && sn != an)
}

// SubChecked returns a-b and whether the difference fit.
func (k *Kernel[T]) SubChecked(a, b T) (T, bool) {
	d := k.ops.Sub(a, b)

	an, bn, dn := k.ops.Sign(a) < 0, k.ops.Sign(b) < 0, k.ops.Sign(d) < 0

	return d, !(an != bn && dn != an)
}

// NegChecked returns -a and whether it fit.
func (k *Kernel[T]) NegChecked(a T) (T, bool) {
	return k.ops.Neg(a), a != k.min
}

// Abs returns |a|. Abs of the minimum value wraps to itself.
func (k *Kernel[T]) Abs(a T) T {
	if k.ops.Sign(a) < 0 {
		return k.ops.Neg(a)
	}

	return a
}

// Cmp returns -1, 0 or +1.
func (k *Kernel[T]) Cmp(a, b T) int { return k.ops.Cmp(a, b) }

// Sign returns -1 for negative values and +1 otherwise (including zero).
func (k *Kernel[T]) Sign(v T) T {
	if k.ops.Sign(v) < 0 {
		return k.minusOne
	}

	return k.one
}

// CountLeadingZeros returns the number of leading zero bits of v.
func (k *Kernel[T]) CountLeadingZeros(v T) int { return k.ops.LeadingZeros(v) }

// IncreaseScale returns v * 10^delta and whether it fit. A delta of zero or
// less returns v.
func (k *Kernel[T]) IncreaseScale(v T, delta int32) (T, bool) {
	if delta <= 0 || v == k.zero {
		return v, true
	}

	if delta > k.maxScale {
		return v, false
	}

	return k.MulChecked(v, k.table[delta])
}

// IncreaseScaleWrap returns v * 10^delta without overflow checks.
func (k *Kernel[T]) IncreaseScaleWrap(v T, delta int32) T {
	for delta > k.maxScale {
		v = k.ops.Mul(v, k.table[k.maxScale])
		delta -= k.maxScale
	}

	if delta <= 0 {
		return v
	}

	return k.ops.Mul(v, k.table[delta])
}

// ReduceScale returns v / 10^delta, truncated toward zero.
func (k *Kernel[T]) ReduceScale(v T, delta int32) T {
	return k.ScaleDownAndRound(v, delta, false)
}

// ScaleDownAndRound divides v by 10^delta. With round set a remainder of at
// least half the divisor moves the quotient one away from zero.
//
// A delta of zero or less returns v unchanged. A delta beyond the table
// divides in steps of the largest multiplier; truncation composes and only
// the digit at position delta-1 decides the rounding.
func (k *Kernel[T]) ScaleDownAndRound(v T, delta int32, round bool) T {
	if delta <= 0 {
		return v
	}

	for delta > k.maxScale {
		v, _ = k.ops.QuoRem(v, k.table[k.maxScale])
		delta -= k.maxScale
	}

	q, r := k.ops.QuoRem(v, k.table[delta])
	if round && k.ops.Cmp(k.Abs(r), k.half[delta]) >= 0 {
		q = k.ops.Add(q, k.Sign(v))
	}

	return q
}

// Fits reports whether |v| < 10^precision. Every value fits a precision
// beyond the table.
func (k *Kernel[T]) Fits(v T, precision int32) bool {
	if precision > k.maxScale {
		return true
	}

	if precision <= 0 {
		return v == k.zero
	}

	m := k.table[precision]

	return k.ops.Cmp(v, m) < 0 && k.ops.Cmp(v, k.ops.Neg(m)) > 0
}
