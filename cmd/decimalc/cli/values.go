package cli

import (
	"fmt"

	"github.com/calebcase/decarith/decimal"
	"github.com/calebcase/decarith/dectype"
)

// literal parses text and rescales it to t. Text with more fractional
// digits than t allows is rejected rather than rounded.
func literal(text string, t dectype.Type) (v decimal.Value, err error) {
	v, _, scale, err := decimal.FromString(text)
	if err != nil {
		return v, err
	}

	if scale > t.Scale {
		return v, fmt.Errorf("%w: %q has more than %d fractional digits", decimal.ErrInvalidFormat, text, t.Scale)
	}

	v, err = v.Rescale(scale, t.Scale)
	if err != nil {
		return v, err
	}

	if !v.FitsInPrecision(t.Precision) {
		return v, fmt.Errorf("%w: %q does not fit %s", decimal.ErrOverflow, text, t)
	}

	return v, nil
}
