// Package dectype describes decimal types and the precision and scale of
// arithmetic results.
//
// A type is a pair (precision, scale): precision is the total number of
// significant digits and scale the number of those digits after the decimal
// point.
//
//  decimal(5,2) holds -999.99 .. 999.99
//
// Results wider than MaxPrecision are adjusted: the precision is capped and
// scale is given up first, but never below MinAdjustedScale (or the unadjusted
// scale if that is smaller).
package dectype

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/apache/arrow/go/v11/arrow"
	"github.com/zeebo/errs"
)

const (
	MaxPrecision          = 38
	MaxScale              = MaxPrecision
	MinAdjustedScale      = 6
	MaxDecimal32Precision = 9
	MaxDecimal64Precision = 18
)

// Error is the error class for this package.
var Error = errs.Class("dectype")

var (
	ErrInvalidType = Error.New("invalid decimal type")
	ErrArity       = Error.New("wrong number of operands")
	ErrUnsupported = Error.New("unsupported type")
)

// Type is a decimal precision and scale.
type Type struct {
	Precision int32
	Scale     int32
}

// New returns a validated type.
func New(precision, scale int32) (Type, error) {
	t := Type{Precision: precision, Scale: scale}

	return t, Validate(t)
}

// Validate checks 1 <= precision <= 38 and 0 <= scale <= precision.
func Validate(t Type) error {
	if t.Precision < 1 || t.Precision > MaxPrecision {
		return fmt.Errorf("%w: precision %d outside [1,%d]", ErrInvalidType, t.Precision, MaxPrecision)
	}

	if t.Scale < 0 || t.Scale > t.Precision {
		return fmt.Errorf("%w: scale %d outside [0,%d]", ErrInvalidType, t.Scale, t.Precision)
	}

	return nil
}

func (t Type) String() string {
	return fmt.Sprintf("decimal(%d,%d)", t.Precision, t.Scale)
}

// ParseType parses "p,s", "decimal(p,s)" or "p" (scale 0).
func ParseType(text string) (t Type, err error) {
	s := strings.TrimSpace(text)
	s = strings.TrimPrefix(s, "decimal")
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")

	ps, ss, found := strings.Cut(s, ",")

	p, err := strconv.ParseInt(strings.TrimSpace(ps), 10, 32)
	if err != nil {
		return t, fmt.Errorf("%w: %q", ErrInvalidType, text)
	}

	var sc int64
	if found {
		sc, err = strconv.ParseInt(strings.TrimSpace(ss), 10, 32)
		if err != nil {
			return t, fmt.Errorf("%w: %q", ErrInvalidType, text)
		}
	}

	return New(int32(p), int32(sc))
}

// MustParseType is like ParseType but panics on error.
func MustParseType(text string) Type {
	t, err := ParseType(text)
	if err != nil {
		panic(err)
	}

	return t
}

// Arrow returns the equivalent arrow data type.
func (t Type) Arrow() *arrow.Decimal128Type {
	return &arrow.Decimal128Type{Precision: t.Precision, Scale: t.Scale}
}

// FromArrow converts an arrow decimal type.
func FromArrow(dt *arrow.Decimal128Type) Type {
	return Type{Precision: dt.Precision, Scale: dt.Scale}
}
