package dectype

import "fmt"

// Op is an arithmetic operator.
type Op int

const (
	Add Op = iota
	Subtract
	Multiply
	Divide
	Modulo
)

// Ops lists every operator.
var Ops = []Op{Add, Subtract, Multiply, Divide, Modulo}

var opNames = [...]string{
	Add:      "add",
	Subtract: "subtract",
	Multiply: "multiply",
	Divide:   "divide",
	Modulo:   "mod",
}

// String returns the function name of the operator.
func (o Op) String() string {
	if o < 0 || int(o) >= len(opNames) {
		return fmt.Sprintf("Op(%d)", int(o))
	}

	return opNames[o]
}

// ParseOp returns the operator with the given function name.
func ParseOp(name string) (Op, error) {
	for i, n := range opNames {
		if n == name {
			return Op(i), nil
		}
	}

	return 0, Error.New("unknown operator %q", name)
}
