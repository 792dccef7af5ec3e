package lispy

import (
	_ "embed"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strings"
)

//go:embed prelude.scm
var preludeScm string

const (
	DefaultPrompt   = "lispy> "
	DefaultMaxDepth = 10000
)

type specialForm func(interp *Interpreter, form List, env *Env) (Value, error)

// Interpreter holds everything one interpreter instance needs: its symbol
// table, its global environment and its configuration. Instances share no
// state. An Interpreter must not be used from more than one goroutine at a
// time.
type Interpreter struct {
	Symbols *Interner
	Global  *Env

	out      io.Writer
	prompt   string
	maxDepth int
	depth    int

	specialForms map[*Symbol]specialForm

	symBegin           *Symbol
	symLambda          *Symbol
	symUnquote         *Symbol
	symUnquoteSplicing *Symbol
}

type Option func(interp *Interpreter)

// WithOutput sets where display and newline write. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(interp *Interpreter) {
		interp.out = w
	}
}

// WithPrompt sets the prompt written by REPL before each read.
func WithPrompt(prompt string) Option {
	return func(interp *Interpreter) {
		interp.prompt = prompt
	}
}

// WithMaxDepth limits how deeply closure calls may nest before evaluation
// fails with a RuntimeError.
func WithMaxDepth(depth int) Option {
	return func(interp *Interpreter) {
		interp.maxDepth = depth
	}
}

type ImportFn func(interp *Interpreter) error

var registeredModules = make(map[string]ImportFn)

// RegisterModule adds a set of global bindings installed into every new
// interpreter. It is meant to be called from init functions.
func RegisterModule(name string, importFn ImportFn) {
	registeredModules[name] = importFn
}

func New(opts ...Option) (*Interpreter, error) {
	interp := &Interpreter{
		Symbols:      NewInterner(),
		out:          os.Stdout,
		prompt:       DefaultPrompt,
		maxDepth:     DefaultMaxDepth,
		specialForms: make(map[*Symbol]specialForm),
	}
	for _, opt := range opts {
		opt(interp)
	}
	interp.Global, _ = NewEnv(nil, nil, nil, nil)

	interp.symBegin = interp.Symbols.Intern("begin")
	interp.symLambda = interp.Symbols.Intern("lambda")
	interp.symUnquote = interp.Symbols.Intern("unquote")
	interp.symUnquoteSplicing = interp.Symbols.Intern("unquote-splicing")

	interp.defineSpecialForm("quote", evalQuote)
	interp.defineSpecialForm("quasiquote", evalQuasiQuote)
	interp.defineSpecialForm("if", evalIf)
	interp.defineSpecialForm("define", evalDefine)
	interp.defineSpecialForm("set!", evalSet)
	interp.defineSpecialForm("lambda", evalLambda)
	interp.defineSpecialForm("begin", evalBegin)
	interp.defineSpecialForm("let", evalLet)
	interp.defineSpecialForm("and", evalAnd)
	interp.defineSpecialForm("or", evalOr)
	interp.defineSpecialForm("load", evalLoad)

	for _, name := range slices.Sorted(maps.Keys(registeredModules)) {
		if err := registeredModules[name](interp); err != nil {
			return nil, fmt.Errorf("import failed for module %s: %w", name, err)
		}
	}
	if err := interp.LoadString(preludeScm); err != nil {
		return nil, fmt.Errorf("prelude: %w", err)
	}
	return interp, nil
}

func (interp *Interpreter) defineSpecialForm(name string, form specialForm) {
	interp.specialForms[interp.Symbols.Intern(name)] = form
}

func (interp *Interpreter) defineValue(name string, value Value) {
	interp.Global.Define(interp.Symbols.Intern(name), value)
}

func (interp *Interpreter) definePrimitive(name string, minArgs, maxArgs int, fn PrimitiveFn) *Primitive {
	p := &Primitive{
		Name:    name,
		MinArgs: minArgs,
		MaxArgs: maxArgs,
		Fn:      fn,
	}
	interp.defineValue(name, p)
	return p
}

// IsSpecialForm reports whether sym names a special form of this
// interpreter.
func (interp *Interpreter) IsSpecialForm(sym *Symbol) bool {
	_, ok := interp.specialForms[sym]
	return ok
}

// Load reads and evaluates every expression in r in the global environment,
// discarding the results. It stops at the first error.
func (interp *Interpreter) Load(r io.Reader) error {
	rdr := NewReader(r, interp.Symbols)
	for {
		form, err := rdr.Read()
		if err != nil {
			return err
		}
		if IsEndOfInput(form) {
			return nil
		}
		if _, err := interp.Eval(form, interp.Global); err != nil {
			return fmt.Errorf("line %d: %w", rdr.Line(), err)
		}
	}
}

func (interp *Interpreter) LoadString(s string) error {
	return interp.Load(strings.NewReader(s))
}

func (interp *Interpreter) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return &RuntimeError{Msg: err.Error()}
	}
	defer f.Close()
	if err := interp.Load(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// EvalString evaluates every expression in src in the global environment
// and returns the value of the last one.
func (interp *Interpreter) EvalString(src string) (Value, error) {
	forms, err := ReadAll(interp.Symbols, src)
	if err != nil {
		return nil, err
	}
	var result Value = Unspecified
	for _, form := range forms {
		if result, err = interp.Eval(form, interp.Global); err != nil {
			return nil, err
		}
	}
	return result, nil
}
