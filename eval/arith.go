package eval

import (
	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/kernel"
)

type status int

const (
	statusOK status = iota
	statusOverflow
	statusDivideByZero
)

// arith evaluates one operator in one tier. With checked unset every step
// wraps and statusOverflow is never reported.
type arith[T comparable] struct {
	k         *kernel.Kernel[T]
	checked   bool
	round     bool
	threshold int32
}

func (a arith[T]) raise(v T, delta int32) (T, bool) {
	if !a.checked {
		return a.k.IncreaseScaleWrap(v, delta), true
	}

	return a.k.IncreaseScale(v, delta)
}

func (a arith[T]) add(x, y T) (T, bool) {
	if !a.checked {
		return a.k.Ops().Add(x, y), true
	}

	return a.k.AddChecked(x, y)
}

func (a arith[T]) sub(x, y T) (T, bool) {
	if !a.checked {
		return a.k.Ops().Sub(x, y), true
	}

	return a.k.SubChecked(x, y)
}

func (a arith[T]) mul(x, y T) (T, bool) {
	if !a.checked {
		return a.k.Ops().Mul(x, y), true
	}

	return a.k.MulChecked(x, y)
}

// adjust moves v from scale to the output scale. A result already at the
// output scale with a precision below the tier threshold is stored as is.
func (a arith[T]) adjust(v T, scale int32, out dectype.Type) (T, Path, status) {
	if out.Scale == scale {
		if out.Precision < a.threshold {
			return v, PathFast, statusOK
		}

		return v, PathReduce, statusOK
	}

	if out.Scale < scale {
		return a.k.ScaleDownAndRound(v, scale-out.Scale, a.round), PathReduce, statusOK
	}

	v, ok := a.raise(v, out.Scale-scale)
	if !ok {
		return v, PathReduce, statusOverflow
	}

	return v, PathReduce, statusOK
}

func (a arith[T]) apply(op dectype.Op, x, y Full[T], out dectype.Type) (v T, path Path, st status) {
	switch op {
	case dectype.Add, dectype.Subtract:
		return a.addSub(op == dectype.Subtract, x, y, out)
	case dectype.Multiply:
		return a.multiply(x, y, out)
	case dectype.Divide:
		return a.divide(x, y, out)
	case dectype.Modulo:
		return a.modulo(x, y, out)
	}

	panic("unreachable")
}

func (a arith[T]) addSub(subtract bool, x, y Full[T], out dectype.Type) (v T, path Path, st status) {
	higher := max(x.Scale, y.Scale)

	xv, ok := a.raise(x.Value, higher-x.Scale)
	if !ok {
		return v, path, statusOverflow
	}

	yv, ok := a.raise(y.Value, higher-y.Scale)
	if !ok {
		return v, path, statusOverflow
	}

	if subtract {
		v, ok = a.sub(xv, yv)
	} else {
		v, ok = a.add(xv, yv)
	}
	if !ok {
		return v, path, statusOverflow
	}

	return a.adjust(v, higher, out)
}

func (a arith[T]) multiply(x, y Full[T], out dectype.Type) (v T, path Path, st status) {
	v, ok := a.mul(x.Value, y.Value)
	if !ok {
		return v, path, statusOverflow
	}

	return a.adjust(v, x.Scale+y.Scale, out)
}

// divide computes round(x * 10^(out.scale + y.scale - x.scale) / y).
func (a arith[T]) divide(x, y Full[T], out dectype.Type) (v T, path Path, st status) {
	ops := a.k.Ops()
	zero := ops.FromInt64(0)

	if y.Value == zero {
		return v, path, statusDivideByZero
	}

	num, den := x.Value, y.Value
	delta := out.Scale + y.Scale - x.Scale

	path = PathReduce
	if delta == 0 && out.Precision < a.threshold {
		path = PathFast
	}

	var ok bool
	if delta >= 0 {
		num, ok = a.raise(num, delta)
	} else {
		den, ok = a.raise(den, -delta)
	}
	if !ok {
		return v, path, statusOverflow
	}

	if a.checked && num == ops.Min() && den == ops.FromInt64(-1) {
		return v, path, statusOverflow
	}

	q, r := ops.QuoRem(num, den)

	if a.round && r != zero {
		// 2|r| >= |den| without doubling r.
		ar := a.k.Abs(r)
		if a.k.Cmp(ar, ops.Sub(a.k.Abs(den), ar)) >= 0 {
			if (ops.Sign(num) < 0) != (ops.Sign(den) < 0) {
				q = ops.Sub(q, ops.FromInt64(1))
			} else {
				q = ops.Add(q, ops.FromInt64(1))
			}
		}
	}

	return q, path, statusOK
}

// modulo returns the truncated remainder, which has the sign of x.
func (a arith[T]) modulo(x, y Full[T], out dectype.Type) (v T, path Path, st status) {
	if y.Value == a.k.Ops().FromInt64(0) {
		return v, path, statusDivideByZero
	}

	higher := max(x.Scale, y.Scale)

	xv, ok := a.raise(x.Value, higher-x.Scale)
	if !ok {
		return v, path, statusOverflow
	}

	yv, ok := a.raise(y.Value, higher-y.Scale)
	if !ok {
		return v, path, statusOverflow
	}

	if yv == a.k.Ops().FromInt64(0) {
		// y wrapped to zero while raising.
		return v, path, statusDivideByZero
	}

	_, r := a.k.Ops().QuoRem(xv, yv)

	return a.adjust(r, higher, out)
}
