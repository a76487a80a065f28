package eval

import (
	"context"
	"fmt"
	"runtime"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/zeebo/errs"
	"golang.org/x/sync/errgroup"

	"github.com/calebcase/decarith/decimal"
	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/kernel"
)

type rowFunc func(x, y decimal.Value) (decimal.Value, error)

// Plan is an operator bound to its operand types, output type and tier. It
// is immutable and safe for concurrent use.
type Plan struct {
	Op    dectype.Op
	Left  dectype.Type
	Right dectype.Type
	Out   dectype.Type
	Tier  kernel.Tier

	cfg Config
	row rowFunc
}

// NewPlan validates the operand types, infers the output type and binds the
// registered function for the narrowest tier holding all three.
func NewPlan(op dectype.Op, left, right dectype.Type, cfg Config) (p *Plan, err error) {
	defer Error.WrapP(&err)

	sig, err := DefaultRegistry.LookupSignature(op.String(), left, right)
	if err != nil {
		return nil, err
	}

	return newPlan(sig, cfg)
}

// NewPlanWithOutput is like NewPlan but uses out instead of the inferred
// output type.
func NewPlanWithOutput(op dectype.Op, left, right, out dectype.Type, cfg Config) (p *Plan, err error) {
	defer Error.WrapP(&err)

	if err := dectype.Validate(out); err != nil {
		return nil, err
	}

	sig, err := DefaultRegistry.LookupSignature(op.String(), left, right)
	if err != nil {
		return nil, err
	}

	sig.Out = out
	sig.Tier = tierFor(out, left, right)

	return newPlan(sig, cfg)
}

func newPlan(sig *Signature, cfg Config) (*Plan, error) {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultConfig().BatchSize
	}

	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.GOMAXPROCS(0)
	}

	p := &Plan{
		Op:    sig.Function.Op,
		Left:  sig.Args[0],
		Right: sig.Args[1],
		Out:   sig.Out,
		Tier:  sig.Tier,
		cfg:   cfg,
	}

	switch p.Tier {
	case kernel.Tier32:
		p.row = bindNarrow(sig.Function.Decimal32, p)
	case kernel.Tier64:
		p.row = bindNarrow(sig.Function.Decimal64, p)
	default:
		p.row = bind128(sig.Function.Decimal128, p)
	}

	return p, nil
}

func (p *Plan) String() string {
	return fmt.Sprintf("%s(%s, %s) %s [%s]", p.Op, p.Left, p.Right, p.Out, p.Tier)
}

func (p *Plan) checkOperands(x, y decimal.Value) error {
	if p.cfg.Overflow != OverflowError {
		return nil
	}

	if !x.FitsInPrecision(p.Left.Precision) {
		return fmt.Errorf("%w: operand %s exceeds %s", ErrOverflow, x.ToString(p.Left.Scale), p.Left)
	}

	if !y.FitsInPrecision(p.Right.Precision) {
		return fmt.Errorf("%w: operand %s exceeds %s", ErrOverflow, y.ToString(p.Right.Scale), p.Right)
	}

	return nil
}

func bindNarrow[T int32 | int64](f func(x, y, out *Full[T], cfg Config) error, p *Plan) rowFunc {
	return func(x, y decimal.Value) (v decimal.Value, err error) {
		if err := p.checkOperands(x, y); err != nil {
			return v, err
		}

		xv, err := decimal.ToInteger[T](x)
		if err != nil {
			return v, fmt.Errorf("%w: %v", ErrOverflow, err)
		}

		yv, err := decimal.ToInteger[T](y)
		if err != nil {
			return v, fmt.Errorf("%w: %v", ErrOverflow, err)
		}

		a := Full[T]{Value: xv, Precision: p.Left.Precision, Scale: p.Left.Scale}
		b := Full[T]{Value: yv, Precision: p.Right.Precision, Scale: p.Right.Scale}
		res := Full[T]{Precision: p.Out.Precision, Scale: p.Out.Scale}

		if err := f(&a, &b, &res, p.cfg); err != nil {
			return v, err
		}

		return decimal.FromInt64(int64(res.Value)), nil
	}
}

func bind128(f func(x, y, out *Decimal128Full, cfg Config) error, p *Plan) rowFunc {
	return func(x, y decimal.Value) (v decimal.Value, err error) {
		if err := p.checkOperands(x, y); err != nil {
			return v, err
		}

		a := Decimal128Full{Value: x.Num(), Precision: p.Left.Precision, Scale: p.Left.Scale}
		b := Decimal128Full{Value: y.Num(), Precision: p.Right.Precision, Scale: p.Right.Scale}
		res := Decimal128Full{Precision: p.Out.Precision, Scale: p.Out.Scale}

		if err := f(&a, &b, &res, p.cfg); err != nil {
			return v, err
		}

		return decimal.FromNum(res.Value), nil
	}
}

// Eval evaluates one row. x and y are unscaled at the plan's operand scales
// and the result is unscaled at the output scale.
func (p *Plan) Eval(x, y decimal.Value) (decimal.Value, error) {
	return p.row(x, y)
}

// Batch is the result of a batch evaluation.
type Batch struct {
	Type   dectype.Type
	Values []decimal.Value

	// Valid is false for null rows, whether the input was null or the row
	// failed.
	Valid []bool

	// Err combines the errors of every failed row.
	Err error
}

// NullCount returns the number of rows without a value.
func (b *Batch) NullCount() (n int) {
	for _, ok := range b.Valid {
		if !ok {
			n++
		}
	}

	return n
}

// Arrow builds an arrow array of the batch.
func (b *Batch) Arrow(mem memory.Allocator) *array.Decimal128 {
	bld := array.NewDecimal128Builder(mem, b.Type.Arrow())
	defer bld.Release()

	bld.Reserve(len(b.Values))

	for i, v := range b.Values {
		if b.Valid[i] {
			bld.Append(v.Num())
		} else {
			bld.AppendNull()
		}
	}

	return bld.NewDecimal128Array()
}

// EvalBatch evaluates xs[i] op ys[i] for every row, in chunks of BatchSize
// with up to Parallelism chunks at once.
func (p *Plan) EvalBatch(ctx context.Context, xs, ys []decimal.Value) (*Batch, error) {
	if len(xs) != len(ys) {
		return nil, Error.New("operand lengths differ: %d != %d", len(xs), len(ys))
	}

	return p.run(ctx, len(xs), func(i int) (x, y decimal.Value, ok bool) {
		return xs[i], ys[i], true
	})
}

// EvalArrow evaluates two arrow columns. A null in either operand produces a
// null row.
func (p *Plan) EvalArrow(ctx context.Context, xs, ys *array.Decimal128) (*Batch, error) {
	if xs.Len() != ys.Len() {
		return nil, Error.New("operand lengths differ: %d != %d", xs.Len(), ys.Len())
	}

	if err := p.checkArrowType(xs.DataType(), p.Left); err != nil {
		return nil, err
	}

	if err := p.checkArrowType(ys.DataType(), p.Right); err != nil {
		return nil, err
	}

	return p.run(ctx, xs.Len(), func(i int) (x, y decimal.Value, ok bool) {
		if xs.IsNull(i) || ys.IsNull(i) {
			return x, y, false
		}

		return decimal.FromNum(xs.Value(i)), decimal.FromNum(ys.Value(i)), true
	})
}

func (p *Plan) checkArrowType(dt arrow.DataType, want dectype.Type) error {
	d, ok := dt.(*arrow.Decimal128Type)
	if !ok || dectype.FromArrow(d) != want {
		return Error.Wrap(fmt.Errorf("%w: column %s, want %s", ErrUnsupported, dt, want))
	}

	return nil
}

func (p *Plan) run(ctx context.Context, n int, row func(i int) (x, y decimal.Value, ok bool)) (*Batch, error) {
	b := &Batch{
		Type:   p.Out,
		Values: make([]decimal.Value, n),
		Valid:  make([]bool, n),
	}

	// Each row owns its slot so chunks never share a write.
	rowErrs := make([]error, n)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Parallelism)

	for lo := 0; lo < n; lo += p.cfg.BatchSize {
		lo := lo
		hi := min(lo+p.cfg.BatchSize, n)

		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			for i := lo; i < hi; i++ {
				x, y, ok := row(i)
				if !ok {
					continue
				}

				v, err := p.row(x, y)
				if err != nil {
					rowErrs[i] = fmt.Errorf("row %d: %w", i, err)

					if p.cfg.BatchAbort {
						return rowErrs[i]
					}

					continue
				}

				b.Values[i] = v
				b.Valid[i] = true
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Error.Wrap(err)
	}

	b.Err = errs.Combine(rowErrs...)

	return b, nil
}
