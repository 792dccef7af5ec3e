package lispy

// value types

// Value is a runtime value. The set of implementations is closed: every
// variant is declared in this package.
type Value interface {
	value()
}

type Boolean bool
type Integer int64
type Float float64
type Complex complex128
type String string

type Symbol struct {
	Name string
}

type List []Value

type PrimitiveFn func(interp *Interpreter, args []Value) (Value, error)

// Primitive is a procedure implemented in Go. MaxArgs < 0 means the
// primitive accepts any number of arguments from MinArgs up.
type Primitive struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      PrimitiveFn
}

// Closure is a procedure created by lambda. When Rest is set, arguments
// beyond len(Params) are bound to it as a list.
type Closure struct {
	Name   string
	Params []*Symbol
	Rest   *Symbol
	Body   Value
	Env    *Env
}

type eofValue struct{}
type unspecifiedValue struct{}

var (
	// EndOfInput is returned by Reader.Read once the input is exhausted.
	EndOfInput Value = eofValue{}

	// Unspecified is the result of forms evaluated only for effect.
	Unspecified Value = unspecifiedValue{}
)

func (Boolean) value()          {}
func (Integer) value()          {}
func (Float) value()            {}
func (Complex) value()          {}
func (String) value()           {}
func (*Symbol) value()          {}
func (List) value()             {}
func (*Primitive) value()       {}
func (*Closure) value()         {}
func (eofValue) value()         {}
func (unspecifiedValue) value() {}

// Boolean

var True = Boolean(true)
var False = Boolean(false)

// IsTruthy reports whether v counts as true in a conditional. Only #f is
// false; 0, the empty list and the empty string are all true.
func IsTruthy(v Value) bool {
	b, ok := v.(Boolean)
	return !ok || bool(b)
}

// sentinels

func IsEndOfInput(v Value) bool {
	_, ok := v.(eofValue)
	return ok
}

func IsUnspecified(v Value) bool {
	_, ok := v.(unspecifiedValue)
	return ok
}

// procedures

func IsProcedure(v Value) bool {
	switch v.(type) {
	case *Primitive, *Closure:
		return true
	default:
		return false
	}
}

func (p *Primitive) checkArity(n int) error {
	if n < p.MinArgs || (p.MaxArgs >= 0 && n > p.MaxArgs) {
		return &ArityError{Name: p.Name, Min: p.MinArgs, Max: p.MaxArgs, Got: n}
	}
	return nil
}

func (c *Closure) displayName() string {
	if c.Name == "" {
		return "#<procedure>"
	}
	return c.Name
}

// equality

// Eq is identity comparison: symbols, procedures and lists compare by
// reference, other atoms by value within the same variant.
func Eq(a, b Value) bool {
	switch x := a.(type) {
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		return len(x) == 0 || &x[0] == &y[0]
	default:
		if _, ok := b.(List); ok {
			return false
		}
		return a == b
	}
}

// Equal is structural equality. Lists compare element-wise, symbols by
// name, numbers by value within the same variant.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case List:
		y, ok := b.(List)
		if !ok || len(x) != len(y) {
			return false
		}
		for i := range x {
			if !Equal(x[i], y[i]) {
				return false
			}
		}
		return true
	case *Symbol:
		y, ok := b.(*Symbol)
		return ok && x.Name == y.Name
	default:
		return Eq(a, b)
	}
}
