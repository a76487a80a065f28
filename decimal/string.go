package decimal

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/apache/arrow/go/v11/arrow/decimal128"
	shopspring "github.com/shopspring/decimal"

	"github.com/calebcase/decarith/kernel"
)

const maxDigits = 38

var bigTen = big.NewInt(10)

// FromString parses text and returns the value with the precision and scale
// it was written with.
func FromString(text string) (v Value, precision, scale int32, err error) {
	d, err := shopspring.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return v, 0, 0, fmt.Errorf("%w: %q", ErrInvalidFormat, text)
	}

	coef := d.Coefficient()
	exp := d.Exponent()

	if exp > 0 {
		if coef.Sign() != 0 && exp > maxDigits {
			return v, 0, 0, fmt.Errorf("%w: %q", ErrOverflow, text)
		}

		coef.Mul(coef, new(big.Int).Exp(bigTen, big.NewInt(int64(exp)), nil))
		exp = 0
	}

	scale = -exp
	if scale > maxDigits {
		return v, 0, 0, fmt.Errorf("%w: %q has scale %d", ErrOverflow, text, scale)
	}

	digits := int32(len(new(big.Int).Abs(coef).String()))
	if digits > maxDigits {
		return v, 0, 0, fmt.Errorf("%w: %q has %d digits", ErrOverflow, text, digits)
	}

	precision = max(digits, scale, 1)

	return Value{n: decimal128.FromBigInt(coef)}, precision, scale, nil
}

// MustFromString is like FromString but panics on error.
func MustFromString(text string) Value {
	v, _, _, err := FromString(text)
	if err != nil {
		panic(err)
	}

	return v
}

// ToString formats v with exactly scale fractional digits.
func (v Value) ToString(scale int32) string {
	d := shopspring.NewFromBigInt(v.BigInt(), -scale)
	if scale <= 0 {
		return d.String()
	}

	return d.StringFixed(scale)
}

// String returns the unscaled integer.
func (v Value) String() string {
	return v.BigInt().String()
}

// BigInt returns v as a big.Int.
func (v Value) BigInt() *big.Int {
	return kernel.ToBig(v.n)
}
