package eval_test

import (
	"context"
	"testing"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/apache/arrow/go/v11/arrow/array"
	"github.com/apache/arrow/go/v11/arrow/memory"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/decarith/decimal"
	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/eval"
	"github.com/calebcase/decarith/kernel"
)

func values(texts ...string) []decimal.Value {
	vs := make([]decimal.Value, len(texts))
	for i, text := range texts {
		vs[i] = decimal.MustFromString(text)
	}

	return vs
}

func TestNewPlan(t *testing.T) {
	p, err := eval.NewPlan(dectype.Add, dectype.MustParseType("5,2"), dectype.MustParseType("5,2"), eval.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, dectype.MustParseType("6,2"), p.Out)
	require.Equal(t, kernel.Tier32, p.Tier)
	require.Equal(t, "add(decimal(5,2), decimal(5,2)) decimal(6,2) [decimal32]", p.String())

	v, err := p.Eval(decimal.FromInt64(125), decimal.FromInt64(250))
	require.NoError(t, err)
	require.Equal(t, "375", v.String())

	p, err = eval.NewPlan(dectype.Multiply, dectype.MustParseType("10,2"), dectype.MustParseType("10,2"), eval.Config{})
	require.NoError(t, err)
	require.Equal(t, kernel.Tier128, p.Tier)

	v, err = p.Eval(decimal.FromInt64(-9_999_999_999), decimal.FromInt64(9_999_999_999))
	require.NoError(t, err)
	require.Equal(t, "-99999999980000000001", v.String())

	_, err = eval.NewPlan(dectype.Add, dectype.Type{Precision: 39, Scale: 0}, dectype.MustParseType("5,2"), eval.DefaultConfig())
	require.ErrorIs(t, err, dectype.ErrInvalidType)

	_, err = eval.NewPlanWithOutput(dectype.Add, dectype.MustParseType("5,2"), dectype.MustParseType("5,2"), dectype.Type{Precision: 3, Scale: 4}, eval.DefaultConfig())
	require.ErrorIs(t, err, dectype.ErrInvalidType)
}

func TestPlanWithOutput(t *testing.T) {
	p, err := eval.NewPlanWithOutput(dectype.Multiply, dectype.MustParseType("5,2"), dectype.MustParseType("5,2"), dectype.MustParseType("3,2"), eval.DefaultConfig())
	require.NoError(t, err)
	require.Equal(t, kernel.Tier32, p.Tier)

	// 1.00 * 1.25 = 1.25
	v, err := p.Eval(decimal.FromInt64(100), decimal.FromInt64(125))
	require.NoError(t, err)
	require.Equal(t, "125", v.String())

	// 1.05 * 1.05 = 1.1025
	v, err = p.Eval(decimal.FromInt64(105), decimal.FromInt64(105))
	require.NoError(t, err)
	require.Equal(t, "110", v.String())

	// 9.99 * 9.99 does not fit decimal(3,2).
	_, err = p.Eval(decimal.FromInt64(999), decimal.FromInt64(999))
	require.ErrorIs(t, err, eval.ErrOverflow)

	// Operands are held to their declared precision.
	_, err = p.Eval(decimal.FromInt64(100_000), decimal.FromInt64(1))
	require.ErrorIs(t, err, eval.ErrOverflow)

	wrap := eval.DefaultConfig()
	wrap.Overflow = eval.OverflowWrap

	p, err = eval.NewPlanWithOutput(dectype.Multiply, dectype.MustParseType("5,2"), dectype.MustParseType("5,2"), dectype.MustParseType("3,2"), wrap)
	require.NoError(t, err)

	_, err = p.Eval(decimal.FromInt64(100_000), decimal.FromInt64(1))
	require.NoError(t, err)
}

func TestEvalBatch(t *testing.T) {
	ctx := context.Background()

	cfg := eval.DefaultConfig()
	cfg.BatchSize = 2
	cfg.Parallelism = 3

	p, err := eval.NewPlan(dectype.Divide, dectype.MustParseType("5,2"), dectype.MustParseType("5,2"), cfg)
	require.NoError(t, err)
	require.Equal(t, dectype.MustParseType("13,8"), p.Out)

	xs := values("100", "-100", "200", "1", "300")
	ys := values("300", "300", "0", "8", "0")

	b, err := p.EvalBatch(ctx, xs, ys)
	require.NoError(t, err)
	require.Equal(t, p.Out, b.Type)
	require.Equal(t, []bool{true, true, false, true, false}, b.Valid)
	require.Equal(t, 2, b.NullCount())
	require.Equal(t, "33333333", b.Values[0].String())
	require.Equal(t, "-33333333", b.Values[1].String())
	require.Equal(t, "12500000", b.Values[3].String())

	require.Error(t, b.Err)
	require.Contains(t, b.Err.Error(), "row 2")
	require.Contains(t, b.Err.Error(), "row 4")

	b, err = p.EvalBatch(ctx, xs[:2], ys[:2])
	require.NoError(t, err)
	require.NoError(t, b.Err)
	require.Zero(t, b.NullCount())

	_, err = p.EvalBatch(ctx, xs, ys[:1])
	require.Error(t, err)

	t.Run("abort", func(t *testing.T) {
		cfg := cfg
		cfg.BatchAbort = true

		p, err := eval.NewPlan(dectype.Divide, dectype.MustParseType("5,2"), dectype.MustParseType("5,2"), cfg)
		require.NoError(t, err)

		b, err := p.EvalBatch(ctx, xs, ys)
		require.ErrorIs(t, err, eval.ErrDivideByZero)
		require.Nil(t, b)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := p.EvalBatch(ctx, xs, ys)
		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("many chunks", func(t *testing.T) {
		cfg := eval.DefaultConfig()
		cfg.BatchSize = 7
		cfg.Parallelism = 4

		p, err := eval.NewPlan(dectype.Add, dectype.MustParseType("18,0"), dectype.MustParseType("18,0"), cfg)
		require.NoError(t, err)

		n := 1000
		xs := make([]decimal.Value, n)
		ys := make([]decimal.Value, n)
		for i := range xs {
			xs[i] = decimal.FromInt64(int64(i))
			ys[i] = decimal.FromInt64(int64(i * 2))
		}

		b, err := p.EvalBatch(ctx, xs, ys)
		require.NoError(t, err)
		require.NoError(t, b.Err)

		for i, v := range b.Values {
			require.Equal(t, decimal.FromInt64(int64(i*3)), v)
		}
	})
}

func TestEvalArrow(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	left := dectype.MustParseType("10,2")
	right := dectype.MustParseType("10,3")

	build := func(typ dectype.Type, vs []int64, valid []bool) *array.Decimal128 {
		bld := array.NewDecimal128Builder(mem, typ.Arrow())
		defer bld.Release()

		for i, v := range vs {
			if !valid[i] {
				bld.AppendNull()
				continue
			}

			bld.Append(decimal.FromInt64(v).Num())
		}

		return bld.NewDecimal128Array()
	}

	xs := build(left, []int64{125, 0, 999, 1}, []bool{true, false, true, true})
	defer xs.Release()

	ys := build(right, []int64{5, 1, -999, 1}, []bool{true, true, true, false})
	defer ys.Release()

	p, err := eval.NewPlan(dectype.Add, left, right, eval.DefaultConfig())
	require.NoError(t, err)

	b, err := p.EvalArrow(context.Background(), xs, ys)
	require.NoError(t, err)
	require.NoError(t, b.Err)
	require.Equal(t, []bool{true, false, true, false}, b.Valid)
	require.Equal(t, "1255", b.Values[0].String())
	require.Equal(t, "8991", b.Values[2].String())

	out := b.Arrow(mem)
	defer out.Release()

	require.Equal(t, p.Out, dectype.FromArrow(out.DataType().(*arrow.Decimal128Type)))
	require.Equal(t, 4, out.Len())
	require.Equal(t, 2, out.NullN())
	require.Equal(t, decimal.FromInt64(1255).Num(), out.Value(0))

	_, err = p.EvalArrow(context.Background(), ys, xs)
	require.ErrorIs(t, err, eval.ErrUnsupported)

	short := build(left, []int64{1}, []bool{true})
	defer short.Release()

	_, err = p.EvalArrow(context.Background(), short, ys)
	require.Error(t, err)
}
