package lispy

import (
	"fmt"
	"math"
	"strings"
)

func evalAdd(interp *Interpreter, args []Value) (Value, error) {
	if len(args) == 0 {
		return Integer(0), nil
	}
	return opAdd.fold(args)
}

func evalSub(interp *Interpreter, args []Value) (Value, error) {
	if len(args) == 1 {
		return opSub.apply(Integer(0), args[0])
	}
	return opSub.fold(args)
}

func evalMul(interp *Interpreter, args []Value) (Value, error) {
	if len(args) == 0 {
		return Integer(1), nil
	}
	return opMul.fold(args)
}

func evalDiv(interp *Interpreter, args []Value) (Value, error) {
	if len(args) == 1 {
		return opDiv.apply(Integer(1), args[0])
	}
	return opDiv.fold(args)
}

func integerArgs(name string, args []Value) ([]int64, error) {
	ints := make([]int64, len(args))
	for i, arg := range args {
		n, ok := arg.(Integer)
		if !ok {
			return nil, runtimeErrorf("%s expects integers, got %s", name, Repr(arg))
		}
		ints[i] = int64(n)
	}
	return ints, nil
}

func evalQuotient(interp *Interpreter, args []Value) (Value, error) {
	ints, err := integerArgs("quotient", args)
	if err != nil {
		return nil, err
	}
	if ints[1] == 0 {
		return nil, runtimeErrorf("integer division by zero")
	}
	return Integer(ints[0] / ints[1]), nil
}

func evalRemainder(interp *Interpreter, args []Value) (Value, error) {
	ints, err := integerArgs("remainder", args)
	if err != nil {
		return nil, err
	}
	if ints[1] == 0 {
		return nil, runtimeErrorf("integer division by zero")
	}
	return Integer(ints[0] % ints[1]), nil
}

// modulo takes the sign of the divisor, remainder that of the dividend.
func evalModulo(interp *Interpreter, args []Value) (Value, error) {
	ints, err := integerArgs("modulo", args)
	if err != nil {
		return nil, err
	}
	if ints[1] == 0 {
		return nil, runtimeErrorf("integer division by zero")
	}
	m := ints[0] % ints[1]
	if m != 0 && (m < 0) != (ints[1] < 0) {
		m += ints[1]
	}
	return Integer(m), nil
}

// comparisons

// numberArgs checks every argument before any comparison short-circuits.
func numberArgs(name string, args []Value, ordered bool) error {
	for _, arg := range args {
		if !IsNumber(arg) {
			return runtimeErrorf("%s expects numbers, got %s", name, Repr(arg))
		}
		if _, ok := arg.(Complex); ok && ordered {
			return runtimeErrorf("%s cannot order complex number %s", name, Repr(arg))
		}
	}
	return nil
}

func compareChain(name string, args []Value, accept func(cmp int) bool) (Value, error) {
	if err := numberArgs(name, args, true); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(args); i++ {
		cmp, ordered, err := compareNumbers(name, args[i], args[i+1])
		if err != nil {
			return nil, err
		}
		if !ordered || !accept(cmp) {
			return False, nil
		}
	}
	return True, nil
}

func evalNumEq(interp *Interpreter, args []Value) (Value, error) {
	if err := numberArgs("=", args, false); err != nil {
		return nil, err
	}
	for i := 0; i+1 < len(args); i++ {
		cmp, _, err := compareNumbers("=", args[i], args[i+1])
		if err != nil {
			return nil, err
		}
		if cmp != 0 {
			return False, nil
		}
	}
	return True, nil
}

func evalLess(interp *Interpreter, args []Value) (Value, error) {
	return compareChain("<", args, func(cmp int) bool { return cmp < 0 })
}

func evalGreater(interp *Interpreter, args []Value) (Value, error) {
	return compareChain(">", args, func(cmp int) bool { return cmp > 0 })
}

func evalLessEq(interp *Interpreter, args []Value) (Value, error) {
	return compareChain("<=", args, func(cmp int) bool { return cmp <= 0 })
}

func evalGreaterEq(interp *Interpreter, args []Value) (Value, error) {
	return compareChain(">=", args, func(cmp int) bool { return cmp >= 0 })
}

func evalMin(interp *Interpreter, args []Value) (Value, error) {
	return extremum("min", args, func(cmp int) bool { return cmp < 0 })
}

func evalMax(interp *Interpreter, args []Value) (Value, error) {
	return extremum("max", args, func(cmp int) bool { return cmp > 0 })
}

func extremum(name string, args []Value, better func(cmp int) bool) (Value, error) {
	best := args[0]
	if !IsNumber(best) {
		return nil, runtimeErrorf("%s expects numbers, got %s", name, Repr(best))
	}
	for _, arg := range args[1:] {
		cmp, ordered, err := compareNumbers(name, arg, best)
		if err != nil {
			return nil, err
		}
		if !ordered {
			return nil, runtimeErrorf("%s cannot order %s and %s", name, Repr(arg), Repr(best))
		}
		if better(cmp) {
			best = arg
		}
	}
	return best, nil
}

// logic and type predicates

func evalNot(interp *Interpreter, args []Value) (Value, error) {
	return Boolean(!IsTruthy(args[0])), nil
}

func evalEq(interp *Interpreter, args []Value) (Value, error) {
	return Boolean(Eq(args[0], args[1])), nil
}

func evalEqual(interp *Interpreter, args []Value) (Value, error) {
	return Boolean(Equal(args[0], args[1])), nil
}

func predicate(test func(v Value) bool) PrimitiveFn {
	return func(interp *Interpreter, args []Value) (Value, error) {
		return Boolean(test(args[0])), nil
	}
}

func isInteger(v Value) bool {
	switch n := v.(type) {
	case Integer:
		return true
	case Float:
		f := float64(n)
		return !math.IsInf(f, 0) && f == math.Trunc(f)
	default:
		return false
	}
}

func isSymbol(v Value) bool {
	_, ok := v.(*Symbol)
	return ok
}

func isString(v Value) bool {
	_, ok := v.(String)
	return ok
}

func isBoolean(v Value) bool {
	_, ok := v.(Boolean)
	return ok
}

func isList(v Value) bool {
	_, ok := v.(List)
	return ok
}

func isNull(v Value) bool {
	l, ok := v.(List)
	return ok && len(l) == 0
}

// lists

func listArg(name string, v Value) (List, error) {
	l, ok := v.(List)
	if !ok {
		return nil, runtimeErrorf("%s expects a list, got %s", name, Repr(v))
	}
	return l, nil
}

func evalCar(interp *Interpreter, args []Value) (Value, error) {
	l, err := listArg("car", args[0])
	if err != nil {
		return nil, err
	}
	if len(l) == 0 {
		return nil, runtimeErrorf("car of empty list")
	}
	return l[0], nil
}

func evalCdr(interp *Interpreter, args []Value) (Value, error) {
	l, err := listArg("cdr", args[0])
	if err != nil {
		return nil, err
	}
	if len(l) == 0 {
		return nil, runtimeErrorf("cdr of empty list")
	}
	return l[1:], nil
}

// evalCons prepends to a list. There are no dotted pairs: consing onto a
// non-list yields a two-element list.
func evalCons(interp *Interpreter, args []Value) (Value, error) {
	if tail, ok := args[1].(List); ok {
		return append(List{args[0]}, tail...), nil
	}
	return List{args[0], args[1]}, nil
}

func evalList(interp *Interpreter, args []Value) (Value, error) {
	return append(List{}, args...), nil
}

func evalLength(interp *Interpreter, args []Value) (Value, error) {
	switch v := args[0].(type) {
	case List:
		return Integer(len(v)), nil
	case String:
		return Integer(len([]rune(string(v)))), nil
	default:
		return nil, runtimeErrorf("length expects a list or a string, got %s", Repr(v))
	}
}

func evalAppend(interp *Interpreter, args []Value) (Value, error) {
	result := List{}
	for _, arg := range args {
		l, err := listArg("append", arg)
		if err != nil {
			return nil, err
		}
		result = append(result, l...)
	}
	return result, nil
}

// (apply proc arg... list)
func evalApply(interp *Interpreter, args []Value) (Value, error) {
	last, err := listArg("apply", args[len(args)-1])
	if err != nil {
		return nil, err
	}
	callArgs := append(append([]Value{}, args[1:len(args)-1]...), last...)
	return interp.Apply(args[0], callArgs)
}

// (map proc list...) stops at the shortest list.
func evalMap(interp *Interpreter, args []Value) (Value, error) {
	lists := make([]List, len(args)-1)
	n := -1
	for i, arg := range args[1:] {
		l, err := listArg("map", arg)
		if err != nil {
			return nil, err
		}
		lists[i] = l
		if n < 0 || len(l) < n {
			n = len(l)
		}
	}
	result := make(List, n)
	for i := range n {
		callArgs := make([]Value, len(lists))
		for j, l := range lists {
			callArgs[j] = l[i]
		}
		v, err := interp.Apply(args[0], callArgs)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

// strings and symbols

func evalStringAppend(interp *Interpreter, args []Value) (Value, error) {
	var sb strings.Builder
	for _, arg := range args {
		s, ok := arg.(String)
		if !ok {
			return nil, runtimeErrorf("string-append expects strings, got %s", Repr(arg))
		}
		sb.WriteString(string(s))
	}
	return String(sb.String()), nil
}

func evalNumberToString(interp *Interpreter, args []Value) (Value, error) {
	if !IsNumber(args[0]) {
		return nil, runtimeErrorf("number->string expects a number, got %s", Repr(args[0]))
	}
	return String(Repr(args[0])), nil
}

func evalSymbolToString(interp *Interpreter, args []Value) (Value, error) {
	sym, ok := args[0].(*Symbol)
	if !ok {
		return nil, runtimeErrorf("symbol->string expects a symbol, got %s", Repr(args[0]))
	}
	return String(sym.Name), nil
}

func evalStringToSymbol(interp *Interpreter, args []Value) (Value, error) {
	s, ok := args[0].(String)
	if !ok {
		return nil, runtimeErrorf("string->symbol expects a string, got %s", Repr(args[0]))
	}
	return interp.Symbols.Intern(string(s)), nil
}

// output

func evalDisplay(interp *Interpreter, args []Value) (Value, error) {
	if _, err := fmt.Fprint(interp.out, Str(args[0])); err != nil {
		return nil, runtimeErrorf("display: %v", err)
	}
	return Unspecified, nil
}

func evalNewline(interp *Interpreter, args []Value) (Value, error) {
	if _, err := fmt.Fprintln(interp.out); err != nil {
		return nil, runtimeErrorf("newline: %v", err)
	}
	return Unspecified, nil
}

func evalRepr(interp *Interpreter, args []Value) (Value, error) {
	return String(Repr(args[0])), nil
}

func init() {
	RegisterModule("core", func(interp *Interpreter) error {
		interp.definePrimitive("+", 0, -1, evalAdd)
		interp.definePrimitive("-", 1, -1, evalSub)
		interp.definePrimitive("*", 0, -1, evalMul)
		interp.definePrimitive("/", 1, -1, evalDiv)
		interp.definePrimitive("quotient", 2, 2, evalQuotient)
		interp.definePrimitive("remainder", 2, 2, evalRemainder)
		interp.definePrimitive("modulo", 2, 2, evalModulo)
		interp.definePrimitive("=", 1, -1, evalNumEq)
		interp.definePrimitive("<", 1, -1, evalLess)
		interp.definePrimitive(">", 1, -1, evalGreater)
		interp.definePrimitive("<=", 1, -1, evalLessEq)
		interp.definePrimitive(">=", 1, -1, evalGreaterEq)
		interp.definePrimitive("min", 1, -1, evalMin)
		interp.definePrimitive("max", 1, -1, evalMax)
		interp.definePrimitive("not", 1, 1, evalNot)
		interp.definePrimitive("eq?", 2, 2, evalEq)
		interp.definePrimitive("equal?", 2, 2, evalEqual)
		interp.definePrimitive("number?", 1, 1, predicate(IsNumber))
		interp.definePrimitive("integer?", 1, 1, predicate(isInteger))
		interp.definePrimitive("symbol?", 1, 1, predicate(isSymbol))
		interp.definePrimitive("string?", 1, 1, predicate(isString))
		interp.definePrimitive("boolean?", 1, 1, predicate(isBoolean))
		interp.definePrimitive("procedure?", 1, 1, predicate(IsProcedure))
		interp.definePrimitive("list?", 1, 1, predicate(isList))
		interp.definePrimitive("null?", 1, 1, predicate(isNull))
		interp.definePrimitive("car", 1, 1, evalCar)
		interp.definePrimitive("cdr", 1, 1, evalCdr)
		interp.definePrimitive("cons", 2, 2, evalCons)
		interp.definePrimitive("list", 0, -1, evalList)
		interp.definePrimitive("length", 1, 1, evalLength)
		interp.definePrimitive("append", 0, -1, evalAppend)
		interp.definePrimitive("apply", 2, -1, evalApply)
		interp.definePrimitive("map", 2, -1, evalMap)
		interp.definePrimitive("string-append", 0, -1, evalStringAppend)
		interp.definePrimitive("number->string", 1, 1, evalNumberToString)
		interp.definePrimitive("symbol->string", 1, 1, evalSymbolToString)
		interp.definePrimitive("string->symbol", 1, 1, evalStringToSymbol)
		interp.definePrimitive("display", 1, 1, evalDisplay)
		interp.definePrimitive("newline", 0, 0, evalNewline)
		interp.definePrimitive("repr", 1, 1, evalRepr)
		return nil
	})
}
