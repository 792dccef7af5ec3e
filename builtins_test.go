package lispy

import (
	"bytes"
	"errors"
	"testing"
)

func TestArithmetic(t *testing.T) {
	runEvalTests(t, []evalTest{
		{"(+)", "0"},
		{"(+ 1 2 3)", "6"},
		{"(+ 1 2.0)", "3.0"},
		{"(+ 1 1+1i)", "2+1i"},
		{"(- 5)", "-5"},
		{"(- 10 1 2)", "7"},
		{"(- 1+1i 0+1i)", "1.0"},
		{"(*)", "1"},
		{"(* 2 3 4)", "24"},
		{"(* 2 0.5)", "1.0"},
		{"(/ 6 3)", "2"},
		{"(/ 7 2)", "3.5"},
		{"(/ 2)", "0.5"},
		{"(/ 1.0 4)", "0.25"},
		{"(quotient 7 2)", "3"},
		{"(quotient -7 2)", "-3"},
		{"(remainder -7 2)", "-1"},
		{"(modulo -7 2)", "1"},
		{"(modulo 7 -2)", "-1"},
	})
}

func TestArithmeticErrors(t *testing.T) {
	interp := newTestInterp(t)
	for _, src := range []string{
		"(/ 1 0)",
		"(/ 1.0 0)",
		"(quotient 1 0)",
		"(modulo 1 0)",
		"(+ 1 'a)",
		`(* "2" 3)`,
		"(quotient 7.0 2)",
	} {
		err := evalErr(t, interp, src)
		var runtimeErr *RuntimeError
		if !errors.As(err, &runtimeErr) {
			t.Errorf("%s: expected RuntimeError, got %v", src, err)
		}
	}
}

func TestComparisons(t *testing.T) {
	runEvalTests(t, []evalTest{
		{"(< 1 2 3)", "#t"},
		{"(< 1 3 2)", "#f"},
		{"(> 3 2 1)", "#t"},
		{"(<= 1 1 2)", "#t"},
		{"(>= 2 3)", "#f"},
		{"(= 1 1.0)", "#t"},
		{"(= 1 2)", "#f"},
		{"(= 1+1i 1+1i)", "#t"},
		{"(< 1 +nan.0)", "#f"},
		{"(min 3 1 2)", "1"},
		{"(max 1 2.5)", "2.5"},
	})
	interp := newTestInterp(t)
	var runtimeErr *RuntimeError
	for _, src := range []string{"(< 1+1i 2)", "(< 2 1 'a)", "(> 1 2 1+1i)", "(= 1 2 \"x\")", "(< 'a)", "(min 1 'a)"} {
		if err := evalErr(t, interp, src); !errors.As(err, &runtimeErr) {
			t.Errorf("%s: expected RuntimeError, got %v", src, err)
		}
	}
}

func TestPredicates(t *testing.T) {
	runEvalTests(t, []evalTest{
		{"(not #f)", "#t"},
		{"(not 0)", "#f"},
		{"(eq? 'a 'a)", "#t"},
		{"(eq? '(1) '(1))", "#f"},
		{"(begin (define l '(1)) (eq? l l))", "#t"},
		{"(equal? '(1 (2 \"x\")) '(1 (2 \"x\")))", "#t"},
		{"(equal? 1 1.0)", "#f"},
		{"(number? 1.5)", "#t"},
		{"(number? 'a)", "#f"},
		{"(integer? 2.0)", "#t"},
		{"(integer? 2.5)", "#f"},
		{"(symbol? 'a)", "#t"},
		{`(string? "a")`, "#t"},
		{"(boolean? #f)", "#t"},
		{"(procedure? car)", "#t"},
		{"(procedure? (lambda (x) x))", "#t"},
		{"(procedure? 'car)", "#f"},
		{"(list? '(1))", "#t"},
		{"(list? 1)", "#f"},
		{"(null? '())", "#t"},
		{"(null? '(1))", "#f"},
	})
}

func TestListPrimitives(t *testing.T) {
	runEvalTests(t, []evalTest{
		{"(car '(1 2))", "1"},
		{"(cdr '(1 2))", "(2)"},
		{"(cdr '(1))", "()"},
		{"(cons 1 '(2 3))", "(1 2 3)"},
		{"(cons 1 '())", "(1)"},
		{"(cons 1 2)", "(1 2)"},
		{"(list)", "()"},
		{"(list 1 (+ 1 1) 'x)", "(1 2 x)"},
		{"(length '(1 2 3))", "3"},
		{`(length "héllo")`, "5"},
		{"(append)", "()"},
		{"(append '(1) '() '(2 3))", "(1 2 3)"},
		{"(apply + '(1 2 3))", "6"},
		{"(apply + 1 2 '(3))", "6"},
		{"(map (lambda (x) (* x x)) '(1 2 3))", "(1 4 9)"},
		{"(map + '(1 2) '(10 20 30))", "(11 22)"},
	})
	interp := newTestInterp(t)
	for _, src := range []string{"(car '())", "(cdr '())", "(car 1)", "(length 5)", "(append '(1) 2)", "(apply + 1)"} {
		var runtimeErr *RuntimeError
		if err := evalErr(t, interp, src); !errors.As(err, &runtimeErr) {
			t.Errorf("%s: expected RuntimeError, got %v", src, err)
		}
	}
}

func TestConsDoesNotShareStructure(t *testing.T) {
	interp := newTestInterp(t)
	eval(t, interp, "(define tail '(2 3))")
	eval(t, interp, "(define a (cons 1 tail))")
	eval(t, interp, "(define b (cons 9 tail))")
	if got := Repr(eval(t, interp, "(list a b tail)")); got != "((1 2 3) (9 2 3) (2 3))" {
		t.Errorf("got %s", got)
	}
}

func TestStringPrimitives(t *testing.T) {
	runEvalTests(t, []evalTest{
		{`(string-append "foo" "" "bar")`, `"foobar"`},
		{"(string-append)", `""`},
		{"(number->string 2.5)", `"2.5"`},
		{"(number->string 10)", `"10"`},
		{"(symbol->string 'abc)", `"abc"`},
		{`(string->symbol "xyz")`, "xyz"},
		{`(repr "a")`, `"\"a\""`},
	})
	interp := newTestInterp(t)
	if eval(t, interp, `(string->symbol "k")`) != interp.Symbols.Intern("k") {
		t.Errorf("string->symbol did not intern its result")
	}
}

func TestDisplay(t *testing.T) {
	var out bytes.Buffer
	interp := newTestInterp(t, WithOutput(&out))
	v := eval(t, interp, `(begin (display "hi") (display '(1 "two")) (newline) (display 2.0))`)
	if !IsUnspecified(v) {
		t.Errorf("display returned %s", Repr(v))
	}
	if got, want := out.String(), "hi(1 two)\n2.0"; got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestMath(t *testing.T) {
	runEvalTests(t, []evalTest{
		{"(sqrt 16)", "4.0"},
		{"(sqrt -4)", "0+2i"},
		{"(sqrt -4.0)", "0+2i"},
		{"(exp 0)", "1.0"},
		{"(log 1)", "0.0"},
		{"(sin 0)", "0.0"},
		{"(cos 0)", "1.0"},
		{"(atan 0)", "0.0"},
		{"(atan 0 1)", "0.0"},
		{"(expt 2 10)", "1024"},
		{"(expt 2 -1)", "0.5"},
		{"(expt 2.0 3)", "8.0"},
		{"(expt 2 62)", "4611686018427387904"},
		{"(expt 3 0)", "1"},
		{"(expt 1 9223372036854775807)", "1"},
		{"(expt -1 9223372036854775807)", "-1"},
		{"(expt 0 100000000000)", "0"},
		{"(abs -5)", "5"},
		{"(abs -2.5)", "2.5"},
		{"(abs -9223372036854775808)", "9223372036854775808.0"},
		{"(round 2.5)", "2.0"},
		{"(round 3.5)", "4.0"},
		{"(round 3)", "3"},
		{"(floor 2.7)", "2.0"},
		{"(ceiling 2.1)", "3.0"},
		{"(truncate -2.7)", "-2.0"},
		{"(make-rectangular 1 2)", "1+2i"},
		{"(real-part 1+2i)", "1.0"},
		{"(imag-part 1+2i)", "2.0"},
		{"(imag-part 3)", "0"},
		{"(magnitude 3+4i)", "5.0"},
		{"(magnitude -3)", "3"},
		{"(> pi 3.14)", "#t"},
		{"(< e 2.72)", "#t"},
	})
	interp := newTestInterp(t)
	var runtimeErr *RuntimeError
	if err := evalErr(t, interp, "(sqrt 'x)"); !errors.As(err, &runtimeErr) {
		t.Errorf("(sqrt 'x): expected RuntimeError, got %v", err)
	}
}

func TestPrelude(t *testing.T) {
	runEvalTests(t, []evalTest{
		{"(cadr '(1 2 3))", "2"},
		{"(cddr '(1 2 3))", "(3)"},
		{"(caddr '(1 2 3))", "3"},
		{"(fold-left + 0 '(1 2 3))", "6"},
		{"(fold-left (lambda (acc x) (cons x acc)) '() '(1 2))", "(2 1)"},
		{"(reverse '(1 2 3))", "(3 2 1)"},
		{"(reverse '())", "()"},
		{"(filter (lambda (x) (> x 1)) '(1 2 3))", "(2 3)"},
	})
}

func TestPrimitivesArePerInterpreter(t *testing.T) {
	a := newTestInterp(t)
	b := newTestInterp(t)
	eval(t, a, "(define car cdr)")
	if got := Repr(eval(t, b, "(car '(1 2))")); got != "1" {
		t.Errorf("redefining car in one interpreter leaked into another: %s", got)
	}
	if got := Repr(eval(t, a, "(car '(1 2))")); got != "(2)" {
		t.Errorf("redefined car = %s", got)
	}
}
