package kernel

import (
	"math"
	"math/big"
	"math/bits"

	"github.com/apache/arrow/go/v11/arrow/decimal128"
	"github.com/apache/arrow/go/v11/arrow/decimal256"
)

// Ops is the set of fixed width two's complement operations of a tier. Every
// operation wraps on overflow.
type Ops[T comparable] interface {
	// Bits returns the width of the integer.
	Bits() int

	// FromInt64 converts v, wrapping if it does not fit.
	FromInt64(v int64) T

	// Min returns the most negative value.
	Min() T

	Add(a, b T) T
	Sub(a, b T) T
	Mul(a, b T) T
	Neg(a T) T

	// QuoRem returns the truncated quotient and remainder of a / b. The
	// remainder has the sign of a. b must not be zero. Min / -1 wraps to
	// Min.
	QuoRem(a, b T) (q, r T)

	// Sign returns -1, 0 or +1.
	Sign(a T) int

	// Cmp returns -1, 0 or +1.
	Cmp(a, b T) int

	// LeadingZeros returns the number of leading zero bits of the two's
	// complement representation.
	LeadingZeros(a T) int
}

type int32Ops struct{}

func (int32Ops) Bits() int { return 32 }
func (int32Ops) FromInt64(v int64) int32 { return int32(v) }
func (int32Ops) Min() int32 { return math.MinInt32 }
func (int32Ops) Add(a, b int32) int32 { return a + b }
func (int32Ops) Sub(a, b int32) int32 { return a - b }
func (int32Ops) Mul(a, b int32) int32 { return a * b }
func (int32Ops) Neg(a int32) int32 { return -a }
func (int32Ops) LeadingZeros(a int32) int { return bits.LeadingZeros32(uint32(a)) }
func (int32Ops) QuoRem(a, b int32) (q, r int32) { return a / b, a % b }

func (int32Ops) Sign(a int32) int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	}
	return 0
}

func (int32Ops) Cmp(a, b int32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

type int64Ops struct{}

func (int64Ops) Bits() int { return 64 }
func (int64Ops) FromInt64(v int64) int64 { return v }
func (int64Ops) Min() int64 { return math.MinInt64 }
func (int64Ops) Add(a, b int64) int64 { return a + b }
func (int64Ops) Sub(a, b int64) int64 { return a - b }
func (int64Ops) Mul(a, b int64) int64 { return a * b }
func (int64Ops) Neg(a int64) int64 { return -a }
func (int64Ops) LeadingZeros(a int64) int { return bits.LeadingZeros64(uint64(a)) }
func (int64Ops) QuoRem(a, b int64) (q, r int64) { return a / b, a % b }

func (int64Ops) Sign(a int64) int {
	switch {
	case a < 0:
		return -1
	case a > 0:
		return 1
	}
	return 0
}

func (int64Ops) Cmp(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

type int128Ops struct{}

var min128 = decimal128.New(math.MinInt64, 0)

func (int128Ops) Bits() int { return 128 }
func (int128Ops) FromInt64(v int64) decimal128.Num { return decimal128.FromI64(v) }
func (int128Ops) Min() decimal128.Num { return min128 }
func (int128Ops) Add(a, b decimal128.Num) decimal128.Num { return a.Add(b) }
func (int128Ops) Sub(a, b decimal128.Num) decimal128.Num { return a.Sub(b) }
func (int128Ops) Neg(a decimal128.Num) decimal128.Num { return a.Negate() }
func (int128Ops) Sign(a decimal128.Num) int { return a.Sign() }

// Mul keeps the low 128 bits of the product. The low half of a two's
// complement product does not depend on the signs of the operands.
func (int128Ops) Mul(a, b decimal128.Num) decimal128.Num {
	hi, lo := bits.Mul64(a.LowBits(), b.LowBits())
	hi += uint64(a.HighBits())*b.LowBits() + a.LowBits()*uint64(b.HighBits())
	return decimal128.New(int64(hi), lo)
}

func (int128Ops) QuoRem(a, b decimal128.Num) (q, r decimal128.Num) {
	if a == min128 && b == decimal128.FromI64(-1) {
		return min128, decimal128.Num{}
	}

	// Both operands fit a machine word in the common case.
	if ai, ok := fitsInt64(a); ok {
		if bi, ok := fitsInt64(b); ok && !(ai == math.MinInt64 && bi == -1) {
			return decimal128.FromI64(ai / bi), decimal128.FromI64(ai % bi)
		}
	}

	bq, br := new(big.Int).QuoRem(ToBig(a), ToBig(b), new(big.Int))

	return wrap128(bq), wrap128(br)
}

func (int128Ops) Cmp(a, b decimal128.Num) int {
	switch {
	case a.HighBits() < b.HighBits():
		return -1
	case a.HighBits() > b.HighBits():
		return 1
	case a.LowBits() < b.LowBits():
		return -1
	case a.LowBits() > b.LowBits():
		return 1
	}
	return 0
}

func (int128Ops) LeadingZeros(a decimal128.Num) int {
	if hi := uint64(a.HighBits()); hi != 0 {
		return bits.LeadingZeros64(hi)
	}

	return 64 + bits.LeadingZeros64(a.LowBits())
}

// ToBig converts n to a big.Int. Unlike Num.BigInt it is exact for the
// minimum value.
func ToBig(n decimal128.Num) *big.Int {
	b := big.NewInt(n.HighBits())
	b.Lsh(b, 64)

	return b.Add(b, new(big.Int).SetUint64(n.LowBits()))
}

// fitsInt64 returns the value as an int64 if the high word is only a sign
// extension of the low word.
func fitsInt64(n decimal128.Num) (int64, bool) {
	lo := int64(n.LowBits())

	return lo, n.HighBits() == lo>>63
}

// int256Ops goes through math/big. The 256 bit tier is only used on the rare
// path where a 128 bit intermediate wrapped.
type int256Ops struct{}

var (
	mask64 = new(big.Int).SetUint64(math.MaxUint64)
	max128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	low128 = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))
	min256 = decimal256.New(1<<63, 0, 0, 0)
)

// words returns the low n 64 bit words of the two's complement form of b,
// least significant first.
func words(b *big.Int, n int) []uint64 {
	w := make([]uint64, n)
	m := new(big.Int).Set(b)
	for i := range w {
		w[i] = new(big.Int).And(m, mask64).Uint64()
		m.Rsh(m, 64)
	}

	return w
}

// wrap128 reduces b modulo 2^128 into [-2^127, 2^127).
func wrap128(b *big.Int) decimal128.Num {
	w := words(b, 2)

	return decimal128.New(int64(w[1]), w[0])
}

// wrap256 reduces b modulo 2^256 into [-2^255, 2^255).
func wrap256(b *big.Int) decimal256.Num {
	w := words(b, 4)

	return decimal256.New(w[3], w[2], w[1], w[0])
}

// toBig256 is the 256 bit counterpart of ToBig.
func toBig256(n decimal256.Num) *big.Int {
	w := n.Array()

	b := big.NewInt(int64(w[3]))
	for i := 2; i >= 0; i-- {
		b.Lsh(b, 64)
		b.Add(b, new(big.Int).SetUint64(w[i]))
	}

	return b
}

func (int256Ops) Bits() int { return 256 }
func (int256Ops) Min() decimal256.Num { return min256 }
func (int256Ops) Sign(a decimal256.Num) int { return a.Sign() }

func (int256Ops) FromInt64(v int64) decimal256.Num {
	x := uint64(v >> 63)
	return decimal256.New(x, x, x, uint64(v))
}

func (int256Ops) Add(a, b decimal256.Num) decimal256.Num {
	x := toBig256(a)
	return wrap256(x.Add(x, toBig256(b)))
}

func (int256Ops) Sub(a, b decimal256.Num) decimal256.Num {
	x := toBig256(a)
	return wrap256(x.Sub(x, toBig256(b)))
}

func (int256Ops) Mul(a, b decimal256.Num) decimal256.Num {
	x := toBig256(a)
	return wrap256(x.Mul(x, toBig256(b)))
}

func (int256Ops) Neg(a decimal256.Num) decimal256.Num {
	x := toBig256(a)
	return wrap256(x.Neg(x))
}

func (int256Ops) QuoRem(a, b decimal256.Num) (q, r decimal256.Num) {
	bq, br := new(big.Int).QuoRem(toBig256(a), toBig256(b), new(big.Int))

	return wrap256(bq), wrap256(br)
}

func (int256Ops) Cmp(a, b decimal256.Num) int {
	return toBig256(a).Cmp(toBig256(b))
}

func (int256Ops) LeadingZeros(a decimal256.Num) int {
	x := toBig256(a)
	if x.Sign() < 0 {
		return 0
	}

	return 256 - x.BitLen()
}
