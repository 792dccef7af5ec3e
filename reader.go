package lispy

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Reader turns a character stream into expressions, one per call to Read.
type Reader struct {
	src     *bufio.Reader
	symbols *Interner
	line    int
}

func NewReader(r io.Reader, symbols *Interner) *Reader {
	src, ok := r.(*bufio.Reader)
	if !ok {
		src = bufio.NewReader(r)
	}
	return &Reader{
		src:     src,
		symbols: symbols,
		line:    1,
	}
}

// Line returns the 1-based line the reader is positioned on.
func (r *Reader) Line() int {
	return r.line
}

func (r *Reader) syntaxErrorf(format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Line: r.line}
}

func (r *Reader) incompletef(line int, format string, args ...any) error {
	return &SyntaxError{Msg: fmt.Sprintf(format, args...), Line: line, Incomplete: true}
}

func (r *Reader) readRune() (rune, error) {
	c, _, err := r.src.ReadRune()
	if err != nil {
		return 0, err
	}
	if c == '\n' {
		r.line++
	}
	return c, nil
}

func (r *Reader) unreadRune(c rune) error {
	if err := r.src.UnreadRune(); err != nil {
		return err
	}
	if c == '\n' {
		r.line--
	}
	return nil
}

func isDelimiter(c rune) bool {
	if unicode.IsSpace(c) {
		return true
	}
	switch c {
	case '(', ')', '\'', '`', ',', '"', ';':
		return true
	}
	return false
}

// NextToken returns the next lexical token. At end of input it returns
// io.EOF. Comments are skipped; a string literal is returned as a single
// token including its quotes.
func (r *Reader) NextToken() (string, error) {
	for {
		c, err := r.readRune()
		if err != nil {
			return "", err
		}
		switch {
		case unicode.IsSpace(c):
			continue
		case c == ';':
			for c != '\n' {
				if c, err = r.readRune(); err != nil {
					return "", err
				}
			}
			continue
		case c == '(' || c == ')' || c == '\'' || c == '`':
			return string(c), nil
		case c == ',':
			next, err := r.readRune()
			if err == io.EOF {
				return ",", nil
			}
			if err != nil {
				return "", err
			}
			if next == '@' {
				return ",@", nil
			}
			if err := r.unreadRune(next); err != nil {
				return "", err
			}
			return ",", nil
		case c == '"':
			return r.scanString()
		default:
			return r.scanAtom(c)
		}
	}
}

func (r *Reader) scanString() (string, error) {
	start := r.line
	var sb strings.Builder
	sb.WriteByte('"')
	for {
		c, err := r.readRune()
		if err == io.EOF {
			return "", r.incompletef(start, "unterminated string literal")
		}
		if err != nil {
			return "", err
		}
		sb.WriteRune(c)
		switch c {
		case '"':
			return sb.String(), nil
		case '\\':
			c, err = r.readRune()
			if err == io.EOF {
				return "", r.incompletef(start, "unterminated string literal")
			}
			if err != nil {
				return "", err
			}
			sb.WriteRune(c)
		}
	}
}

func (r *Reader) scanAtom(first rune) (string, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		c, err := r.readRune()
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			return "", err
		}
		if isDelimiter(c) {
			if err := r.unreadRune(c); err != nil {
				return "", err
			}
			return sb.String(), nil
		}
		sb.WriteRune(c)
	}
}

// Read parses the next expression. At end of input it returns EndOfInput
// and a nil error.
func (r *Reader) Read() (Value, error) {
	tok, err := r.NextToken()
	if err == io.EOF {
		return EndOfInput, nil
	}
	if err != nil {
		return nil, err
	}
	return r.readAhead(tok)
}

func (r *Reader) quoteSymbol(tok string) *Symbol {
	switch tok {
	case "'":
		return r.symbols.Intern("quote")
	case "`":
		return r.symbols.Intern("quasiquote")
	case ",":
		return r.symbols.Intern("unquote")
	case ",@":
		return r.symbols.Intern("unquote-splicing")
	}
	return nil
}

func (r *Reader) readAhead(tok string) (Value, error) {
	switch tok {
	case "(":
		start := r.line
		list := List{}
		for {
			tok, err := r.NextToken()
			if err == io.EOF {
				return nil, r.incompletef(start, "unexpected end of input in list")
			}
			if err != nil {
				return nil, err
			}
			if tok == ")" {
				return list, nil
			}
			v, err := r.readAhead(tok)
			if err != nil {
				return nil, err
			}
			list = append(list, v)
		}
	case ")":
		return nil, r.syntaxErrorf("unexpected )")
	case "'", "`", ",", ",@":
		next, err := r.NextToken()
		if err == io.EOF {
			return nil, r.incompletef(r.line, "unexpected end of input after %s", tok)
		}
		if err != nil {
			return nil, err
		}
		form, err := r.readAhead(next)
		if err != nil {
			return nil, err
		}
		return List{r.quoteSymbol(tok), form}, nil
	default:
		return Atom(r.symbols, tok), nil
	}
}

// looksNumeric keeps symbols such as inf, nan or + away from the number
// parsers.
func looksNumeric(tok string) bool {
	if tok == "" {
		return false
	}
	i := 0
	if tok[0] == '+' || tok[0] == '-' {
		i++
	}
	if i < len(tok) && tok[i] == '.' {
		i++
	}
	return i < len(tok) && tok[i] >= '0' && tok[i] <= '9'
}

// Atom converts a single token to a value: booleans, strings, integers,
// floats and complex numbers in that order, anything else becomes a symbol.
func Atom(symbols *Interner, tok string) Value {
	switch tok {
	case "#t":
		return True
	case "#f":
		return False
	case "+inf.0":
		return Float(posInf)
	case "-inf.0":
		return Float(negInf)
	case "+nan.0", "-nan.0":
		return Float(nan)
	}
	if strings.HasPrefix(tok, `"`) {
		return String(unescapeString(tok))
	}
	if c, ok := parseSpecialComplex(tok); ok {
		return Complex(c)
	}
	if looksNumeric(tok) {
		if i, err := strconv.ParseInt(tok, 10, 64); err == nil {
			return Integer(i)
		}
		if f, err := strconv.ParseFloat(tok, 64); err == nil || errors.Is(err, strconv.ErrRange) {
			return Float(f)
		}
		if c, err := strconv.ParseComplex(tok, 128); err == nil {
			return Complex(c)
		}
	}
	return symbols.Intern(tok)
}

func parseSpecialReal(s string) (float64, bool) {
	switch s {
	case "+inf.0":
		return posInf, true
	case "-inf.0":
		return negInf, true
	case "+nan.0", "-nan.0":
		return nan, true
	}
	f, err := strconv.ParseFloat(s, 64)
	return f, err == nil
}

// parseSpecialComplex reads complex literals with an infinite or NaN part,
// such as +nan.0+1i or 1-inf.0i.
func parseSpecialComplex(tok string) (complex128, bool) {
	if !strings.HasSuffix(tok, "i") || !(strings.Contains(tok, "inf.0") || strings.Contains(tok, "nan.0")) {
		return 0, false
	}
	body := tok[:len(tok)-1]
	split := -1
	for i := len(body) - 1; i > 0; i-- {
		if (body[i] == '+' || body[i] == '-') && body[i-1] != 'e' && body[i-1] != 'E' {
			split = i
			break
		}
	}
	if split < 0 {
		im, ok := parseSpecialReal(body)
		return complex(0, im), ok
	}
	re, ok := parseSpecialReal(body[:split])
	if !ok {
		return 0, false
	}
	im, ok := parseSpecialReal(body[split:])
	if !ok {
		return 0, false
	}
	return complex(re, im), true
}

func unescapeString(tok string) string {
	s := strings.TrimPrefix(tok, `"`)
	s = strings.TrimSuffix(s, `"`)
	var sb strings.Builder
	escaped := false
	for _, c := range s {
		if !escaped {
			if c == '\\' {
				escaped = true
			} else {
				sb.WriteRune(c)
			}
			continue
		}
		escaped = false
		switch c {
		case 'a':
			c = '\a'
		case 'b':
			c = '\b'
		case 'f':
			c = '\f'
		case 'n':
			c = '\n'
		case 'r':
			c = '\r'
		case 't':
			c = '\t'
		case 'v':
			c = '\v'
		}
		sb.WriteRune(c)
	}
	return sb.String()
}

// ReadString reads the first expression in src.
func ReadString(symbols *Interner, src string) (Value, error) {
	return NewReader(strings.NewReader(src), symbols).Read()
}

// ReadAll reads every expression in src.
func ReadAll(symbols *Interner, src string) ([]Value, error) {
	r := NewReader(strings.NewReader(src), symbols)
	var forms []Value
	for {
		form, err := r.Read()
		if err != nil {
			return nil, err
		}
		if IsEndOfInput(form) {
			return forms, nil
		}
		forms = append(forms, form)
	}
}
