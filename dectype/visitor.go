package dectype

import (
	"fmt"

	"github.com/apache/arrow/go/v11/arrow"
)

// TypeVisitor is the hook an expression type checker calls for every type
// it encounters. Decimal types go to VisitDecimal, all others to
// VisitDefault with the type name.
type TypeVisitor interface {
	VisitDecimal(t Type) error
	VisitDefault(name string) error
}

// Accept dispatches dt to v.
func Accept(v TypeVisitor, dt arrow.DataType) error {
	if d, ok := dt.(*arrow.Decimal128Type); ok {
		return v.VisitDecimal(FromArrow(d))
	}

	return v.VisitDefault(dt.Name())
}

// Validator accepts valid decimal types. Other types are accepted when
// Supported reports them; a nil Supported rejects every non-decimal type.
type Validator struct {
	Supported func(name string) bool
}

var _ TypeVisitor = Validator{}

func (v Validator) VisitDecimal(t Type) error {
	return Validate(t)
}

func (v Validator) VisitDefault(name string) error {
	if v.Supported != nil && v.Supported(name) {
		return nil
	}

	return fmt.Errorf("%w: %s", ErrUnsupported, name)
}
