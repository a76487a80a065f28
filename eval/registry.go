package eval

import (
	"fmt"
	"sort"
	"sync"

	"github.com/calebcase/decarith/dectype"
	"github.com/calebcase/decarith/kernel"
)

// Function is a registered arithmetic function with one implementation per
// tier.
type Function struct {
	Name string
	Op   dectype.Op

	Decimal32  func(x, y, out *Decimal32Full, cfg Config) error
	Decimal64  func(x, y, out *Decimal64Full, cfg Config) error
	Decimal128 func(x, y, out *Decimal128Full, cfg Config) error
}

// Registry maps function names to implementations.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]*Function
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: map[string]*Function{},
	}
}

// DefaultRegistry holds add, subtract, multiply, divide and mod.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()

	fns := []*Function{
		{Op: dectype.Add, Decimal32: AddDecimal32, Decimal64: AddDecimal64, Decimal128: AddDecimal128},
		{Op: dectype.Subtract, Decimal32: SubtractDecimal32, Decimal64: SubtractDecimal64, Decimal128: SubtractDecimal128},
		{Op: dectype.Multiply, Decimal32: MultiplyDecimal32, Decimal64: MultiplyDecimal64, Decimal128: MultiplyDecimal128},
		{Op: dectype.Divide, Decimal32: DivideDecimal32, Decimal64: DivideDecimal64, Decimal128: DivideDecimal128},
		{Op: dectype.Modulo, Decimal32: ModDecimal32, Decimal64: ModDecimal64, Decimal128: ModDecimal128},
	}

	for _, fn := range fns {
		fn.Name = fn.Op.String()

		if err := r.Register(fn); err != nil {
			panic(err)
		}
	}

	return r
}

// Register adds fn. Names must be unique.
func (r *Registry) Register(fn *Function) error {
	if fn.Decimal32 == nil || fn.Decimal64 == nil || fn.Decimal128 == nil {
		return Error.New("function %q is missing a tier", fn.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.funcs[fn.Name]; ok {
		return Error.New("function %q already registered", fn.Name)
	}

	r.funcs[fn.Name] = fn

	return nil
}

// Lookup returns the function registered under name.
func (r *Registry) Lookup(name string) (*Function, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, ok := r.funcs[name]

	return fn, ok
}

// Names returns the registered names in order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Signature is a resolved function call.
type Signature struct {
	Function *Function
	Args     []dectype.Type
	Out      dectype.Type

	// Tier is the narrowest tier holding every argument and the result.
	Tier kernel.Tier
}

// LookupSignature resolves name over decimal arguments, inferring the
// result type.
func (r *Registry) LookupSignature(name string, args ...dectype.Type) (*Signature, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: function %q", ErrUnsupported, name)
	}

	out, err := dectype.InferResultType(fn.Op, args...)
	if err != nil {
		return nil, err
	}

	return &Signature{
		Function: fn,
		Args:     args,
		Out:      out,
		Tier:     tierFor(out, args...),
	}, nil
}

func tierFor(out dectype.Type, args ...dectype.Type) kernel.Tier {
	p := out.Precision
	for _, a := range args {
		p = max(p, a.Precision)
	}

	return kernel.TierFor(p)
}
