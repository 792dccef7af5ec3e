package lispy

import (
	"math"
	"testing"
)

func TestRepr(t *testing.T) {
	symbols := NewInterner()
	tests := []struct {
		v    Value
		want string
	}{
		{True, "#t"},
		{False, "#f"},
		{Integer(-12), "-12"},
		{Float(2), "2.0"},
		{Float(0.25), "0.25"},
		{Float(-0.5), "-0.5"},
		{Float(1e21), "1e+21"},
		{Float(1.5e-7), "1.5e-07"},
		{Float(math.Inf(1)), "+inf.0"},
		{Float(math.Inf(-1)), "-inf.0"},
		{Float(math.NaN()), "+nan.0"},
		{Complex(1 + 2i), "1+2i"},
		{Complex(complex(0.5, -3)), "0.5-3i"},
		{Complex(complex(math.NaN(), 1)), "+nan.0+1i"},
		{Complex(complex(1, math.Inf(-1))), "1-inf.0i"},
		{Complex(complex(math.Inf(1), math.NaN())), "+inf.0+nan.0i"},
		{String("plain"), `"plain"`},
		{String("tab\there \"quoted\" back\\slash\n"), `"tab\there \"quoted\" back\\slash\n"`},
		{symbols.Intern("set!"), "set!"},
		{List{}, "()"},
		{List{Integer(1), List{String("a"), symbols.Intern("b")}, List{}}, `(1 ("a" b) ())`},
		{&Primitive{Name: "+"}, "#<primitive +>"},
		{&Closure{Name: "square"}, "#<procedure square>"},
		{&Closure{}, "#<procedure>"},
		{EndOfInput, "#<eof>"},
		{Unspecified, "#<unspecified>"},
	}
	for _, tt := range tests {
		if got := Repr(tt.v); got != tt.want {
			t.Errorf("Repr(%#v) = %s, want %s", tt.v, got, tt.want)
		}
	}
}

func TestStr(t *testing.T) {
	v := List{String("a \"b\""), Integer(1)}
	if got, want := Str(v), `(a "b" 1)`; got != want {
		t.Errorf("Str = %s, want %s", got, want)
	}
	if got, want := Str(String("line\n")), "line\n"; got != want {
		t.Errorf("Str = %q, want %q", got, want)
	}
}

// Every literal the printer produces must read back as an equal value.
func TestReprRoundTrip(t *testing.T) {
	symbols := NewInterner()
	sources := []string{
		"42",
		"-3.75",
		"1e-09",
		"123456789.125",
		"1e+300",
		"+inf.0",
		"2-3.5i",
		"#t",
		"#f",
		`"with \"escapes\" and \\ and \n and \t"`,
		`"unicode ✓ λ"`,
		"lambda",
		"()",
		"(1 2.5 (nested (deeper \"s\")) #f sym)",
		"(quote (a b))",
	}
	for _, src := range sources {
		parsed := readOne(t, symbols, src)
		again := readOne(t, symbols, Repr(parsed))
		if !Equal(parsed, again) {
			t.Errorf("round trip of %s: read %s, printed %s, read back %s", src, Repr(parsed), Repr(parsed), Repr(again))
		}
	}
	// floats keep their variant through the printer
	for _, f := range []float64{1, 100, -0.0, 1e20, 1e21, 1.0 / 3} {
		again := readOne(t, symbols, Repr(Float(f)))
		if g, ok := again.(Float); !ok || float64(g) != f {
			t.Errorf("Float(%v) printed %s, read back %#v", f, Repr(Float(f)), again)
		}
	}
}

func TestNonFiniteComplexRoundTrip(t *testing.T) {
	symbols := NewInterner()
	for _, c := range []complex128{
		complex(math.NaN(), 1),
		complex(1, math.NaN()),
		complex(math.Inf(1), -2),
		complex(0, math.Inf(-1)),
	} {
		printed := Repr(Complex(c))
		again, ok := readOne(t, symbols, printed).(Complex)
		if !ok {
			t.Errorf("%s did not read back as a complex number", printed)
			continue
		}
		if !sameFloat(real(again), real(c)) || !sameFloat(imag(again), imag(c)) {
			t.Errorf("%s read back as %v", printed, complex128(again))
		}
	}
}

func sameFloat(a, b float64) bool {
	return a == b || (math.IsNaN(a) && math.IsNaN(b))
}
