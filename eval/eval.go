package eval

import (
	"fmt"

	"github.com/apache/arrow/go/v11/arrow/decimal128"
	"github.com/apache/arrow/go/v11/arrow/decimal256"

	"github.com/calebcase/decarith/decimal"
	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/kernel"
)

// Full pairs a tier value with its precision and scale.
type Full[T comparable] struct {
	Value     T
	Precision int32
	Scale     int32
}

type (
	Decimal32Full  = Full[int32]
	Decimal64Full  = Full[int64]
	Decimal128Full = Full[decimal128.Num]
)

// Type returns the precision and scale of f.
func (f Full[T]) Type() dectype.Type {
	return dectype.Type{Precision: f.Precision, Scale: f.Scale}
}

func statusErr(st status) error {
	switch st {
	case statusOverflow:
		return ErrOverflow
	case statusDivideByZero:
		return ErrDivideByZero
	}

	return nil
}

func to256(f Decimal128Full) Full[decimal256.Num] {
	return Full[decimal256.Num]{Value: kernel.To256(f.Value), Precision: f.Precision, Scale: f.Scale}
}

// eval128 evaluates op in the 128 bit tier, retrying in the 256 bit
// intermediate when a checked step overflows.
func eval128(op dectype.Op, x, y Decimal128Full, out dectype.Type, cfg Config) (decimal128.Num, Path, error) {
	checked := cfg.Overflow == OverflowError

	a := arith[decimal128.Num]{
		k:         kernel.Int128,
		checked:   checked,
		round:     cfg.Round,
		threshold: kernel.Tier128.Threshold(),
	}

	v, path, st := a.apply(op, x, y, out)

	switch st {
	case statusOK:
		if checked && !kernel.Int128.Fits(v, out.Precision) {
			return v, path, ErrOverflow
		}

		return v, path, nil
	case statusDivideByZero:
		return v, path, ErrDivideByZero
	}

	large := arith[decimal256.Num]{
		k:       kernel.Int256,
		checked: true,
		round:   cfg.Round,
	}

	w, _, st := large.apply(op, to256(x), to256(y), out)
	if st != statusOK {
		return v, PathLarge, statusErr(st)
	}

	if !kernel.Int256.Fits(w, out.Precision) {
		return v, PathLarge, ErrOverflow
	}

	v, ok := kernel.From256(w)
	if !ok {
		return v, PathLarge, ErrOverflow
	}

	return v, PathLarge, nil
}

// narrowTier is a 32 or 64 bit tier with its conversions to and from the
// 128 bit tier.
type narrowTier[T comparable] struct {
	k          *kernel.Kernel[T]
	tier       kernel.Tier
	widen      func(T) decimal128.Num
	narrow     func(decimal128.Num) (T, bool)
	narrowWrap func(decimal128.Num) T
}

var (
	tier32 = narrowTier[int32]{
		k:          kernel.Int32,
		tier:       kernel.Tier32,
		widen:      kernel.Widen32,
		narrow:     kernel.Narrow32,
		narrowWrap: kernel.Narrow32Wrap,
	}

	tier64 = narrowTier[int64]{
		k:          kernel.Int64,
		tier:       kernel.Tier64,
		widen:      kernel.Widen64,
		narrow:     kernel.Narrow64,
		narrowWrap: kernel.Narrow64Wrap,
	}
)

func (n narrowTier[T]) wide(f Full[T]) Decimal128Full {
	return Decimal128Full{Value: n.widen(f.Value), Precision: f.Precision, Scale: f.Scale}
}

// eval computes op natively while the output precision is below the tier
// threshold and the tier does not overflow. Otherwise it evaluates in the
// 128 bit tier and narrows the result back.
func (n narrowTier[T]) eval(op dectype.Op, x, y Full[T], out dectype.Type, cfg Config) (v T, path Path, err error) {
	checked := cfg.Overflow == OverflowError
	threshold := n.tier.Threshold()

	if out.Precision < threshold {
		a := arith[T]{
			k:         n.k,
			checked:   checked,
			round:     cfg.Round,
			threshold: threshold,
		}

		v, path, st := a.apply(op, x, y, out)
		switch st {
		case statusOK:
			if checked && !n.k.Fits(v, out.Precision) {
				return v, path, ErrOverflow
			}

			return v, path, nil
		case statusDivideByZero:
			return v, path, ErrDivideByZero
		}
	}

	w, _, err := eval128(op, n.wide(x), n.wide(y), out, cfg)
	if err != nil {
		return v, PathWide, err
	}

	if !checked {
		return n.narrowWrap(w), PathWide, nil
	}

	v, ok := n.narrow(w)
	if !ok {
		return v, PathWide, ErrOverflow
	}

	return v, PathWide, nil
}

func run32(op dectype.Op, x, y, out *Decimal32Full, cfg Config) error {
	v, path, err := tier32.eval(op, *x, *y, out.Type(), cfg)
	cfg.observe(op, kernel.Tier32, path, err)
	if err != nil {
		return err
	}

	out.Value = v

	return nil
}

func run64(op dectype.Op, x, y, out *Decimal64Full, cfg Config) error {
	v, path, err := tier64.eval(op, *x, *y, out.Type(), cfg)
	cfg.observe(op, kernel.Tier64, path, err)
	if err != nil {
		return err
	}

	out.Value = v

	return nil
}

func run128(op dectype.Op, x, y, out *Decimal128Full, cfg Config) error {
	v, path, err := eval128(op, *x, *y, out.Type(), cfg)
	cfg.observe(op, kernel.Tier128, path, err)
	if err != nil {
		return err
	}

	out.Value = v

	return nil
}

// The fixed layout entry points read x and y and store the result in
// out.Value. The output precision and scale are taken from out.

func AddDecimal32(x, y, out *Decimal32Full, cfg Config) error {
	return run32(dectype.Add, x, y, out, cfg)
}

func AddDecimal64(x, y, out *Decimal64Full, cfg Config) error {
	return run64(dectype.Add, x, y, out, cfg)
}

func AddDecimal128(x, y, out *Decimal128Full, cfg Config) error {
	return run128(dectype.Add, x, y, out, cfg)
}

func SubtractDecimal32(x, y, out *Decimal32Full, cfg Config) error {
	return run32(dectype.Subtract, x, y, out, cfg)
}

func SubtractDecimal64(x, y, out *Decimal64Full, cfg Config) error {
	return run64(dectype.Subtract, x, y, out, cfg)
}

func SubtractDecimal128(x, y, out *Decimal128Full, cfg Config) error {
	return run128(dectype.Subtract, x, y, out, cfg)
}

func MultiplyDecimal32(x, y, out *Decimal32Full, cfg Config) error {
	return run32(dectype.Multiply, x, y, out, cfg)
}

func MultiplyDecimal64(x, y, out *Decimal64Full, cfg Config) error {
	return run64(dectype.Multiply, x, y, out, cfg)
}

func MultiplyDecimal128(x, y, out *Decimal128Full, cfg Config) error {
	return run128(dectype.Multiply, x, y, out, cfg)
}

func DivideDecimal32(x, y, out *Decimal32Full, cfg Config) error {
	return run32(dectype.Divide, x, y, out, cfg)
}

func DivideDecimal64(x, y, out *Decimal64Full, cfg Config) error {
	return run64(dectype.Divide, x, y, out, cfg)
}

func DivideDecimal128(x, y, out *Decimal128Full, cfg Config) error {
	return run128(dectype.Divide, x, y, out, cfg)
}

func ModDecimal32(x, y, out *Decimal32Full, cfg Config) error {
	return run32(dectype.Modulo, x, y, out, cfg)
}

func ModDecimal64(x, y, out *Decimal64Full, cfg Config) error {
	return run64(dectype.Modulo, x, y, out, cfg)
}

func ModDecimal128(x, y, out *Decimal128Full, cfg Config) error {
	return run128(dectype.Modulo, x, y, out, cfg)
}

// Evaluate applies op to two 128 bit operands and returns the result at the
// out type.
func Evaluate(op dectype.Op, operands []Decimal128Full, out dectype.Type, cfg Config) (v decimal.Value, err error) {
	if len(operands) != 2 {
		return v, fmt.Errorf("%w: %s takes 2 operands, got %d", dectype.ErrArity, op, len(operands))
	}

	for _, t := range []dectype.Type{operands[0].Type(), operands[1].Type(), out} {
		if err := dectype.Validate(t); err != nil {
			return v, err
		}
	}

	if int(op) < 0 || int(op) >= len(dectype.Ops) {
		return v, fmt.Errorf("%w: %s", ErrUnsupported, op)
	}

	if cfg.Overflow == OverflowError {
		for _, o := range operands {
			if x := decimal.FromNum(o.Value); !x.FitsInPrecision(o.Precision) {
				return v, fmt.Errorf("%w: operand %s exceeds %s", ErrOverflow, x.ToString(o.Scale), o.Type())
			}
		}
	}

	res := Decimal128Full{Precision: out.Precision, Scale: out.Scale}

	err = run128(op, &operands[0], &operands[1], &res, cfg)
	if err != nil {
		return v, err
	}

	return decimal.FromNum(res.Value), nil
}
