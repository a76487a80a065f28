package decimal_test

import (
	"errors"
	"math"
	"testing"

	"github.com/calebcase/oops"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"

	"github.com/calebcase/decarith/decimal"
)

func TestFromString(t *testing.T) {
	type TC struct {
		Text      string
		Value     string
		Precision int32
		Scale     int32
		Err       error
		Mark      error
	}

	tcs := []TC{
		{Text: "1.50", Value: "150", Precision: 3, Scale: 2, Mark: oops.New("unexpected")},
		{Text: "-0.001", Value: "-1", Precision: 3, Scale: 3, Mark: oops.New("unexpected")},
		{Text: "12e2", Value: "1200", Precision: 4, Scale: 0, Mark: oops.New("unexpected")},
		{Text: "1.5e-3", Value: "15", Precision: 4, Scale: 4, Mark: oops.New("unexpected")},
		{Text: "0", Value: "0", Precision: 1, Scale: 0, Mark: oops.New("unexpected")},
		{Text: " 42 ", Value: "42", Precision: 2, Scale: 0, Mark: oops.New("unexpected")},
		{Text: "-123.4500", Value: "-1234500", Precision: 7, Scale: 4, Mark: oops.New("unexpected")},
		{
			Text:      "99999999999999999999999999999999999999",
			Value:     "99999999999999999999999999999999999999",
			Precision: 38,
			Scale:     0,
			Mark:      oops.New("unexpected"),
		},
		{
			Text:      "-0.00000000000000000000000000000000000001",
			Value:     "-1",
			Precision: 38,
			Scale:     38,
			Mark:      oops.New("unexpected"),
		},
		{Text: "999999999999999999999999999999999999999", Err: decimal.ErrOverflow, Mark: oops.New("unexpected")},
		{Text: "1e-39", Err: decimal.ErrOverflow, Mark: oops.New("unexpected")},
		{Text: "1e39", Err: decimal.ErrOverflow, Mark: oops.New("unexpected")},
		{Text: "abc", Err: decimal.ErrInvalidFormat, Mark: oops.New("unexpected")},
		{Text: "", Err: decimal.ErrInvalidFormat, Mark: oops.New("unexpected")},
		{Text: "1.2.3", Err: decimal.ErrInvalidFormat, Mark: oops.New("unexpected")},
	}

	for i, tc := range tcs {
		t.Logf("%d: %s\n", i, spew.Sdump(tc))

		v, p, s, err := decimal.FromString(tc.Text)
		if tc.Err != nil {
			require.True(t, errors.Is(err, tc.Err), tc.Mark)
			require.Contains(t, err.Error(), tc.Text, tc.Mark)
			continue
		}

		require.NoError(t, err, tc.Mark)
		require.Equal(t, tc.Value, v.String(), tc.Mark)
		require.Equal(t, tc.Precision, p, tc.Mark)
		require.Equal(t, tc.Scale, s, tc.Mark)
	}
}

func TestToString(t *testing.T) {
	require.Equal(t, "-0.001", decimal.FromInt64(-1).ToString(3))
	require.Equal(t, "1.50", decimal.FromInt64(150).ToString(2))
	require.Equal(t, "5", decimal.FromInt64(5).ToString(0))
	require.Equal(t, "0.00", decimal.Zero.ToString(2))
	require.Equal(t, "-1.000000", decimal.MustFromString("-1000000").ToString(6))

	t.Run("roundtrip", func(t *testing.T) {
		values := []string{
			"0",
			"1",
			"-1",
			"123456789",
			"-99999999999999999999999999999999999999",
			"99999999999999999999999999999999999999",
		}

		for _, text := range values {
			v := decimal.MustFromString(text)

			for scale := int32(0); scale <= 38; scale++ {
				out := v.ToString(scale)

				back, _, s, err := decimal.FromString(out)
				require.NoError(t, err, out)
				require.Equal(t, v, back, out)
				require.Equal(t, scale, s, out)
			}
		}
	})
}

func TestRescale(t *testing.T) {
	v := decimal.MustFromString("-12345")

	up, err := v.Rescale(2, 5)
	require.NoError(t, err)
	require.Equal(t, "-12345000", up.String())

	down, err := up.Rescale(5, 2)
	require.NoError(t, err)
	require.Equal(t, v, down)

	trunc, err := v.Rescale(3, 1)
	require.NoError(t, err)
	require.Equal(t, "-123", trunc.String())

	_, err = decimal.MustFromString("10000000000000000000000000000000000000").Rescale(0, 2)
	require.ErrorIs(t, err, decimal.ErrOverflow)

	t.Run("property", func(t *testing.T) {
		for _, text := range []string{"0", "7", "-7", "123456789012345678", "-99999999999999999999"} {
			v := decimal.MustFromString(text)

			for s1 := int32(0); s1 <= 10; s1++ {
				for s2 := s1; s2 <= 18; s2++ {
					up, err := v.Rescale(s1, s2)
					require.NoError(t, err)

					back, err := up.Rescale(s2, s1)
					require.NoError(t, err)
					require.Equal(t, v, back, "%s %d %d", text, s1, s2)
				}
			}
		}
	})
}

func TestDivide(t *testing.T) {
	q, r, err := decimal.FromInt64(7).Divide(decimal.FromInt64(-2))
	require.NoError(t, err)
	require.Equal(t, "-3", q.String())
	require.Equal(t, "1", r.String())

	q, r, err = decimal.FromInt64(-7).Divide(decimal.FromInt64(2))
	require.NoError(t, err)
	require.Equal(t, "-3", q.String())
	require.Equal(t, "-1", r.String())

	big := decimal.MustFromString("-99999999999999999999999999999999999999")
	q, r, err = big.Divide(decimal.MustFromString("10000000000000000000"))
	require.NoError(t, err)
	require.Equal(t, "-9999999999999999999", q.String())
	require.Equal(t, "-9999999999999999999", r.String())

	_, _, err = decimal.FromInt64(1).Divide(decimal.Zero)
	require.ErrorIs(t, err, decimal.ErrDivideByZero)

	lowest := make([]byte, decimal.Size)
	lowest[0] = 0x80

	min, err := decimal.FromBigEndian(lowest, decimal.Size)
	require.NoError(t, err)

	q, r, err = min.Divide(decimal.FromInt64(1))
	require.NoError(t, err)
	require.Equal(t, "-170141183460469231731687303715884105728", q.String())
	require.Equal(t, "0", r.String())

	q, r, err = min.Divide(decimal.FromInt64(7))
	require.NoError(t, err)
	require.Equal(t, "-24305883351495604533098186245126300818", q.String())
	require.Equal(t, "-2", r.String())

	_, _, err = min.Divide(decimal.FromInt64(-1))
	require.ErrorIs(t, err, decimal.ErrOverflow)
}

func TestToInteger(t *testing.T) {
	i8, err := decimal.ToInteger[int8](decimal.FromInt64(-128))
	require.NoError(t, err)
	require.Equal(t, int8(-128), i8)

	_, err = decimal.ToInteger[int8](decimal.FromInt64(128))
	require.ErrorIs(t, err, decimal.ErrOverflow)

	i64, err := decimal.ToInteger[int64](decimal.FromInt64(math.MinInt64))
	require.NoError(t, err)
	require.Equal(t, int64(math.MinInt64), i64)

	_, err = decimal.ToInteger[int64](decimal.MustFromString("9223372036854775808"))
	require.ErrorIs(t, err, decimal.ErrOverflow)

	i32, err := decimal.ToInteger[int32](decimal.FromInt64(-2147483648))
	require.NoError(t, err)
	require.Equal(t, int32(math.MinInt32), i32)
}

func TestHelpers(t *testing.T) {
	a := decimal.MustFromString("-5")
	b := decimal.MustFromString("3")

	require.Equal(t, -1, a.Cmp(b))
	require.Equal(t, 1, b.Cmp(a))
	require.Equal(t, 0, a.Cmp(a))
	require.Equal(t, -1, a.Sign())
	require.Equal(t, 0, decimal.Zero.Sign())
	require.Equal(t, "5", a.Negate().String())
	require.Equal(t, a, decimal.FromNum(a.Num()))

	require.True(t, decimal.MustFromString("999").FitsInPrecision(3))
	require.False(t, decimal.MustFromString("-1000").FitsInPrecision(3))

	require.Panics(t, func() { decimal.MustFromString("nope") })
}
