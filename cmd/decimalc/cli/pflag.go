package cli

import (
	"github.com/spf13/pflag"

	"github.com/calebcase/decarith/decimal"
	"github.com/calebcase/decarith/dectype"
)

// TypeFlag adds the pflag.Value interface to a dectype.Type. The zero value
// is unset.
type TypeFlag struct {
	value dectype.Type
	set   bool
}

var _ pflag.Value = (*TypeFlag)(nil)

// Set is part of the pflag.Value interface.
func (f *TypeFlag) Set(arg string) error {
	t, err := dectype.ParseType(arg)
	if err != nil {
		return err
	}

	f.value, f.set = t, true

	return nil
}

// String is part of the pflag.Value interface.
func (f *TypeFlag) String() string {
	if !f.set {
		return ""
	}

	return f.value.String()
}

// Type is part of the pflag.Value interface.
func (f *TypeFlag) Type() string {
	return "p,s"
}

// Get returns the parsed type and whether the flag was given.
func (f *TypeFlag) Get() (dectype.Type, bool) {
	return f.value, f.set
}

// OrderFlag adds the pflag.Value interface to a decimal.ByteOrder.
type OrderFlag decimal.ByteOrder

var _ pflag.Value = (*OrderFlag)(nil)

// Set is part of the pflag.Value interface.
func (f *OrderFlag) Set(arg string) error {
	switch arg {
	case "le", "little":
		*f = OrderFlag(decimal.LittleEndian)
	case "be", "big":
		*f = OrderFlag(decimal.BigEndian)
	default:
		return Error.New("unknown byte order %q", arg)
	}

	return nil
}

// String is part of the pflag.Value interface.
func (f *OrderFlag) String() string {
	if decimal.ByteOrder(*f) == decimal.BigEndian {
		return "be"
	}

	return "le"
}

// Type is part of the pflag.Value interface.
func (f *OrderFlag) Type() string {
	return "le|be"
}
