package lispy

import "math"

var (
	posInf = math.Inf(1)
	negInf = math.Inf(-1)
	nan    = math.NaN()
)

// numeric rank: Integer < Float < Complex

const (
	rankInteger = iota
	rankFloat
	rankComplex
)

func numRank(v Value) (int, bool) {
	switch v.(type) {
	case Integer:
		return rankInteger, true
	case Float:
		return rankFloat, true
	case Complex:
		return rankComplex, true
	default:
		return 0, false
	}
}

func IsNumber(v Value) bool {
	_, ok := numRank(v)
	return ok
}

func AsFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case Integer:
		return float64(n), true
	case Float:
		return float64(n), true
	default:
		return 0, false
	}
}

func AsComplex(v Value) (complex128, bool) {
	switch n := v.(type) {
	case Integer:
		return complex(float64(n), 0), true
	case Float:
		return complex(float64(n), 0), true
	case Complex:
		return complex128(n), true
	default:
		return 0, false
	}
}

// normComplex drops a zero imaginary part produced by arithmetic.
func normComplex(c complex128) Value {
	if imag(c) == 0 {
		return Float(real(c))
	}
	return Complex(c)
}

type arith struct {
	name string
	i    func(a, b int64) (Value, error)
	f    func(a, b float64) (Value, error)
	c    func(a, b complex128) (Value, error)
}

func (op *arith) apply(a, b Value) (Value, error) {
	ra, ok := numRank(a)
	if !ok {
		return nil, runtimeErrorf("%s expects numbers, got %s", op.name, Repr(a))
	}
	rb, ok := numRank(b)
	if !ok {
		return nil, runtimeErrorf("%s expects numbers, got %s", op.name, Repr(b))
	}
	switch max(ra, rb) {
	case rankInteger:
		return op.i(int64(a.(Integer)), int64(b.(Integer)))
	case rankFloat:
		x, _ := AsFloat(a)
		y, _ := AsFloat(b)
		return op.f(x, y)
	default:
		x, _ := AsComplex(a)
		y, _ := AsComplex(b)
		return op.c(x, y)
	}
}

func (op *arith) fold(args []Value) (Value, error) {
	acc := args[0]
	for _, arg := range args[1:] {
		var err error
		if acc, err = op.apply(acc, arg); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

var opAdd = &arith{
	name: "+",
	i:    func(a, b int64) (Value, error) { return Integer(a + b), nil },
	f:    func(a, b float64) (Value, error) { return Float(a + b), nil },
	c:    func(a, b complex128) (Value, error) { return normComplex(a + b), nil },
}

var opSub = &arith{
	name: "-",
	i:    func(a, b int64) (Value, error) { return Integer(a - b), nil },
	f:    func(a, b float64) (Value, error) { return Float(a - b), nil },
	c:    func(a, b complex128) (Value, error) { return normComplex(a - b), nil },
}

var opMul = &arith{
	name: "*",
	i:    func(a, b int64) (Value, error) { return Integer(a * b), nil },
	f:    func(a, b float64) (Value, error) { return Float(a * b), nil },
	c:    func(a, b complex128) (Value, error) { return normComplex(a * b), nil },
}

// Integer division stays exact when the divisor divides evenly and falls
// back to Float otherwise.
var opDiv = &arith{
	name: "/",
	i: func(a, b int64) (Value, error) {
		if b == 0 {
			return nil, runtimeErrorf("integer division by zero")
		}
		if a%b == 0 {
			return Integer(a / b), nil
		}
		return Float(float64(a) / float64(b)), nil
	},
	f: func(a, b float64) (Value, error) {
		if b == 0 {
			return nil, runtimeErrorf("float division by zero")
		}
		return Float(a / b), nil
	},
	c: func(a, b complex128) (Value, error) {
		if b == 0 {
			return nil, runtimeErrorf("complex division by zero")
		}
		return normComplex(a / b), nil
	},
}

// compareNumbers returns -1, 0 or 1. Complex numbers only support equality,
// reported through ordered=false.
func compareNumbers(name string, a, b Value) (cmp int, ordered bool, err error) {
	ra, ok := numRank(a)
	if !ok {
		return 0, false, runtimeErrorf("%s expects numbers, got %s", name, Repr(a))
	}
	rb, ok := numRank(b)
	if !ok {
		return 0, false, runtimeErrorf("%s expects numbers, got %s", name, Repr(b))
	}
	switch max(ra, rb) {
	case rankInteger:
		x, y := a.(Integer), b.(Integer)
		switch {
		case x < y:
			return -1, true, nil
		case x > y:
			return 1, true, nil
		}
		return 0, true, nil
	case rankFloat:
		x, _ := AsFloat(a)
		y, _ := AsFloat(b)
		switch {
		case x < y:
			return -1, true, nil
		case x > y:
			return 1, true, nil
		case x == y:
			return 0, true, nil
		}
		// NaN is unordered and unequal to everything
		return 1, false, nil
	default:
		x, _ := AsComplex(a)
		y, _ := AsComplex(b)
		if x == y {
			return 0, false, nil
		}
		return 1, false, nil
	}
}

// realOrComplex applies f to real arguments, switching to cf for complex
// arguments or when domain says the real result is undefined.
func realOrComplex(name string, v Value, f func(float64) float64, cf func(complex128) complex128, domain func(float64) bool) (Value, error) {
	if x, ok := AsFloat(v); ok {
		if domain == nil || domain(x) {
			return Float(f(x)), nil
		}
		return normComplex(cf(complex(x, 0))), nil
	}
	if c, ok := v.(Complex); ok {
		return normComplex(cf(complex128(c))), nil
	}
	return nil, runtimeErrorf("%s expects a number, got %s", name, Repr(v))
}

func nonNegative(x float64) bool {
	return x >= 0 || math.IsNaN(x)
}
