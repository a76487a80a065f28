package kernel

import (
	"math"

	"github.com/apache/arrow/go/v11/arrow/decimal128"
	"github.com/apache/arrow/go/v11/arrow/decimal256"
)

func Widen32(v int32) decimal128.Num { return decimal128.FromI64(int64(v)) }
func Widen64(v int64) decimal128.Num { return decimal128.FromI64(v) }

// Narrow64 returns v as an int64 and whether it fit.
func Narrow64(v decimal128.Num) (int64, bool) {
	return fitsInt64(v)
}

// Narrow32 returns v as an int32 and whether it fit.
func Narrow32(v decimal128.Num) (int32, bool) {
	i, ok := fitsInt64(v)
	if !ok || i < math.MinInt32 || i > math.MaxInt32 {
		return int32(i), false
	}

	return int32(i), true
}

// Narrow64Wrap keeps the low 64 bits of v.
func Narrow64Wrap(v decimal128.Num) int64 { return int64(v.LowBits()) }

// Narrow32Wrap keeps the low 32 bits of v.
func Narrow32Wrap(v decimal128.Num) int32 { return int32(v.LowBits()) }

// To256 sign extends v.
func To256(v decimal128.Num) decimal256.Num {
	x := uint64(v.HighBits() >> 63)

	return decimal256.New(x, x, uint64(v.HighBits()), v.LowBits())
}

// From256 returns v as a 128 bit value and whether it fit.
func From256(v decimal256.Num) (decimal128.Num, bool) {
	b := toBig256(v)
	if b.Cmp(low128) < 0 || b.Cmp(max128) > 0 {
		return decimal128.Num{}, false
	}

	return wrap128(b), true
}
