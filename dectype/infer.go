package dectype

import "fmt"

// InferResultType returns the type of op applied to two operands.
func InferResultType(op Op, types ...Type) (Type, error) {
	if len(types) != 2 {
		return Type{}, fmt.Errorf("%w: %s takes 2 operands, got %d", ErrArity, op, len(types))
	}

	for _, t := range types {
		if err := Validate(t); err != nil {
			return Type{}, err
		}
	}

	p1, s1 := types[0].Precision, types[0].Scale
	p2, s2 := types[1].Precision, types[1].Scale

	var p, s int32

	switch op {
	case Add, Subtract:
		s = max(s1, s2)
		p = max(p1-s1, p2-s2) + s + 1
	case Multiply:
		s = s1 + s2
		p = p1 + p2 + 1
	case Divide:
		s = max(MinAdjustedScale, s1+p2+1)
		p = p1 - s1 + s2 + s
	case Modulo:
		s = max(s1, s2)
		p = min(p1-s1, p2-s2) + s
	default:
		return Type{}, Error.New("unknown operator %s", op)
	}

	return Adjust(p, s), nil
}

// Adjust caps precision at MaxPrecision, trading away scale down to
// min(scale, MinAdjustedScale).
func Adjust(precision, scale int32) Type {
	if precision > MaxPrecision {
		minScale := min(scale, MinAdjustedScale)
		delta := precision - MaxPrecision

		precision = MaxPrecision
		scale = max(scale-delta, minScale)
	}

	return Type{Precision: max(precision, 1), Scale: scale}
}

// ResultTypeFunc binds op for callers that infer many nodes of one kind.
func ResultTypeFunc(op Op) func(types ...Type) (Type, error) {
	return func(types ...Type) (Type, error) {
		return InferResultType(op, types...)
	}
}
