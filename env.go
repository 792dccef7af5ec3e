package lispy

// Env is one frame of the environment chain. The outer frame is shared, not
// owned: many inner frames may point at the same outer one.
type Env struct {
	vars  map[*Symbol]Value
	outer *Env
}

// NewEnv creates a frame under outer binding params to args by position.
// When rest is non-nil, surplus arguments are bound to it as a list;
// otherwise a length mismatch is an ArityError.
func NewEnv(params []*Symbol, rest *Symbol, args []Value, outer *Env) (*Env, error) {
	if len(args) < len(params) || (rest == nil && len(args) > len(params)) {
		maxArgs := len(params)
		if rest != nil {
			maxArgs = -1
		}
		return nil, &ArityError{Min: len(params), Max: maxArgs, Got: len(args)}
	}
	size := len(params)
	if rest != nil {
		size++
	}
	env := &Env{
		vars:  make(map[*Symbol]Value, size),
		outer: outer,
	}
	for i, param := range params {
		env.vars[param] = args[i]
	}
	if rest != nil {
		env.vars[rest] = append(List{}, args[len(params):]...)
	}
	return env, nil
}

// Outer returns the enclosing frame, or nil for the global environment.
func (e *Env) Outer() *Env {
	return e.outer
}

// Lookup returns the innermost frame that binds sym.
func (e *Env) Lookup(sym *Symbol) (*Env, error) {
	for env := e; env != nil; env = env.outer {
		if _, found := env.vars[sym]; found {
			return env, nil
		}
	}
	return nil, &UnresolvedSymbolError{Name: sym.Name}
}

func (e *Env) Get(sym *Symbol) (Value, error) {
	env, err := e.Lookup(sym)
	if err != nil {
		return nil, err
	}
	return env.vars[sym], nil
}

// Set rebinds sym in the frame that defines it. It never creates a binding.
func (e *Env) Set(sym *Symbol, value Value) error {
	env, err := e.Lookup(sym)
	if err != nil {
		return err
	}
	env.vars[sym] = value
	return nil
}

// Define creates or overwrites a binding in this frame only.
func (e *Env) Define(sym *Symbol, value Value) {
	e.vars[sym] = value
}

// Defines reports whether this frame, not counting outer frames, binds sym.
func (e *Env) Defines(sym *Symbol) bool {
	_, found := e.vars[sym]
	return found
}
