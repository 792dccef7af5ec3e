package lispy

import (
	"math"
	"math/cmplx"
)

func mathFn(name string, f func(float64) float64, cf func(complex128) complex128, domain func(float64) bool) PrimitiveFn {
	return func(interp *Interpreter, args []Value) (Value, error) {
		return realOrComplex(name, args[0], f, cf, domain)
	}
}

func inUnitRange(x float64) bool {
	return (x >= -1 && x <= 1) || math.IsNaN(x)
}

// rounding keeps integers as they are

func roundingFn(name string, f func(float64) float64) PrimitiveFn {
	return func(interp *Interpreter, args []Value) (Value, error) {
		switch n := args[0].(type) {
		case Integer:
			return n, nil
		case Float:
			return Float(f(float64(n))), nil
		default:
			return nil, runtimeErrorf("%s expects a real number, got %s", name, Repr(args[0]))
		}
	}
}

func evalAbs(interp *Interpreter, args []Value) (Value, error) {
	switch n := args[0].(type) {
	case Integer:
		if n == math.MinInt64 {
			return Float(-float64(n)), nil
		}
		if n < 0 {
			return -n, nil
		}
		return n, nil
	case Float:
		return Float(math.Abs(float64(n))), nil
	default:
		return nil, runtimeErrorf("abs expects a real number, got %s", Repr(args[0]))
	}
}

// (atan y) or (atan y x)
func evalAtan(interp *Interpreter, args []Value) (Value, error) {
	if len(args) == 1 {
		return realOrComplex("atan", args[0], math.Atan, cmplx.Atan, nil)
	}
	y, ok := AsFloat(args[0])
	if !ok {
		return nil, runtimeErrorf("atan expects real numbers, got %s", Repr(args[0]))
	}
	x, ok := AsFloat(args[1])
	if !ok {
		return nil, runtimeErrorf("atan expects real numbers, got %s", Repr(args[1]))
	}
	return Float(math.Atan2(y, x)), nil
}

// expt stays exact for an integer base and a non-negative integer exponent,
// computed by repeated squaring.
func evalExpt(interp *Interpreter, args []Value) (Value, error) {
	if base, ok := args[0].(Integer); ok {
		if exp, ok := args[1].(Integer); ok && exp >= 0 {
			result := Integer(1)
			for ; exp > 0; exp >>= 1 {
				if exp&1 == 1 {
					result *= base
				}
				base *= base
			}
			return result, nil
		}
	}
	x, xok := AsFloat(args[0])
	y, yok := AsFloat(args[1])
	if xok && yok && (x >= 0 || y == math.Trunc(y)) {
		return Float(math.Pow(x, y)), nil
	}
	cx, ok := AsComplex(args[0])
	if !ok {
		return nil, runtimeErrorf("expt expects numbers, got %s", Repr(args[0]))
	}
	cy, ok := AsComplex(args[1])
	if !ok {
		return nil, runtimeErrorf("expt expects numbers, got %s", Repr(args[1]))
	}
	return normComplex(cmplx.Pow(cx, cy)), nil
}

func evalMakeRectangular(interp *Interpreter, args []Value) (Value, error) {
	re, ok := AsFloat(args[0])
	if !ok {
		return nil, runtimeErrorf("make-rectangular expects real numbers, got %s", Repr(args[0]))
	}
	im, ok := AsFloat(args[1])
	if !ok {
		return nil, runtimeErrorf("make-rectangular expects real numbers, got %s", Repr(args[1]))
	}
	return Complex(complex(re, im)), nil
}

func evalRealPart(interp *Interpreter, args []Value) (Value, error) {
	switch n := args[0].(type) {
	case Integer, Float:
		return n, nil
	case Complex:
		return Float(real(n)), nil
	default:
		return nil, runtimeErrorf("real-part expects a number, got %s", Repr(args[0]))
	}
}

func evalImagPart(interp *Interpreter, args []Value) (Value, error) {
	switch n := args[0].(type) {
	case Integer:
		return Integer(0), nil
	case Float:
		return Float(0), nil
	case Complex:
		return Float(imag(n)), nil
	default:
		return nil, runtimeErrorf("imag-part expects a number, got %s", Repr(args[0]))
	}
}

func evalMagnitude(interp *Interpreter, args []Value) (Value, error) {
	if c, ok := args[0].(Complex); ok {
		return Float(cmplx.Abs(complex128(c))), nil
	}
	return evalAbs(interp, args)
}

func init() {
	RegisterModule("math", func(interp *Interpreter) error {
		interp.defineValue("pi", Float(math.Pi))
		interp.defineValue("e", Float(math.E))
		interp.definePrimitive("sin", 1, 1, mathFn("sin", math.Sin, cmplx.Sin, nil))
		interp.definePrimitive("cos", 1, 1, mathFn("cos", math.Cos, cmplx.Cos, nil))
		interp.definePrimitive("tan", 1, 1, mathFn("tan", math.Tan, cmplx.Tan, nil))
		interp.definePrimitive("asin", 1, 1, mathFn("asin", math.Asin, cmplx.Asin, inUnitRange))
		interp.definePrimitive("acos", 1, 1, mathFn("acos", math.Acos, cmplx.Acos, inUnitRange))
		interp.definePrimitive("atan", 1, 2, evalAtan)
		interp.definePrimitive("sqrt", 1, 1, mathFn("sqrt", math.Sqrt, cmplx.Sqrt, nonNegative))
		interp.definePrimitive("exp", 1, 1, mathFn("exp", math.Exp, cmplx.Exp, nil))
		interp.definePrimitive("log", 1, 1, mathFn("log", math.Log, cmplx.Log, nonNegative))
		interp.definePrimitive("expt", 2, 2, evalExpt)
		interp.definePrimitive("abs", 1, 1, evalAbs)
		interp.definePrimitive("round", 1, 1, roundingFn("round", math.RoundToEven))
		interp.definePrimitive("floor", 1, 1, roundingFn("floor", math.Floor))
		interp.definePrimitive("ceiling", 1, 1, roundingFn("ceiling", math.Ceil))
		interp.definePrimitive("truncate", 1, 1, roundingFn("truncate", math.Trunc))
		interp.definePrimitive("make-rectangular", 2, 2, evalMakeRectangular)
		interp.definePrimitive("real-part", 1, 1, evalRealPart)
		interp.definePrimitive("imag-part", 1, 1, evalImagPart)
		interp.definePrimitive("magnitude", 1, 1, evalMagnitude)
		return nil
	})
}
