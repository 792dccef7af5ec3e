package lispy

import (
	"math"
	"strconv"
	"strings"
)

// Repr renders v as text the reader accepts back. Procedures and the
// sentinels render as #<...> tokens that cannot be read.
func Repr(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v, true)
	return sb.String()
}

// Str renders v for display: like Repr, but strings are written without
// quotes or escapes.
func Str(v Value) string {
	var sb strings.Builder
	writeValue(&sb, v, false)
	return sb.String()
}

func writeValue(sb *strings.Builder, v Value, readable bool) {
	switch x := v.(type) {
	case nil:
		sb.WriteString("#<nil>")
	case Boolean:
		if x {
			sb.WriteString("#t")
		} else {
			sb.WriteString("#f")
		}
	case Integer:
		sb.WriteString(strconv.FormatInt(int64(x), 10))
	case Float:
		sb.WriteString(formatFloat(float64(x)))
	case Complex:
		sb.WriteString(formatComplex(complex128(x)))
	case String:
		if readable {
			writeEscaped(sb, string(x))
		} else {
			sb.WriteString(string(x))
		}
	case *Symbol:
		sb.WriteString(x.Name)
	case List:
		sb.WriteByte('(')
		for i, item := range x {
			if i > 0 {
				sb.WriteByte(' ')
			}
			writeValue(sb, item, readable)
		}
		sb.WriteByte(')')
	case *Primitive:
		sb.WriteString("#<primitive ")
		sb.WriteString(x.Name)
		sb.WriteByte('>')
	case *Closure:
		if x.Name == "" {
			sb.WriteString("#<procedure>")
		} else {
			sb.WriteString("#<procedure ")
			sb.WriteString(x.Name)
			sb.WriteByte('>')
		}
	case eofValue:
		sb.WriteString("#<eof>")
	case unspecifiedValue:
		sb.WriteString("#<unspecified>")
	}
}

// formatFloat always yields a token the reader parses as a Float: it keeps
// a decimal point or an exponent, and spells out infinities and NaN.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "+nan.0"
	case math.IsInf(f, 1):
		return "+inf.0"
	case math.IsInf(f, -1):
		return "-inf.0"
	}
	abs := math.Abs(f)
	var s string
	if abs == 0 || (abs >= 1e-6 && abs < 1e21) {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// formatComplex drops the parentheses Go puts around complex numbers and
// spells non-finite parts the way formatFloat does.
func formatComplex(c complex128) string {
	re, im := real(c), imag(c)
	if isFinite(re) && isFinite(im) {
		s := strconv.FormatComplex(c, 'g', -1, 128)
		return strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	rs, is := formatFloat(re), formatFloat(im)
	if isFinite(re) {
		rs = strconv.FormatFloat(re, 'g', -1, 64)
	}
	if isFinite(im) {
		is = strconv.FormatFloat(im, 'g', -1, 64)
		if !strings.HasPrefix(is, "-") {
			is = "+" + is
		}
	}
	return rs + is + "i"
}

func isFinite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}

func writeEscaped(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\a':
			sb.WriteString(`\a`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\v':
			sb.WriteString(`\v`)
		default:
			sb.WriteRune(c)
		}
	}
	sb.WriteByte('"')
}
