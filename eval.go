package lispy

import "errors"

// Eval evaluates expr in env. Symbols are looked up, lists are special
// forms or procedure calls, everything else evaluates to itself.
//
// Each closure call recurses in Go, so deeply recursive programs use Go
// stack in proportion; the interpreter's depth limit turns runaway
// recursion into a RuntimeError.
func (interp *Interpreter) Eval(expr Value, env *Env) (Value, error) {
	switch x := expr.(type) {
	case *Symbol:
		return env.Get(x)
	case List:
		if len(x) == 0 {
			return x, nil
		}
		if head, ok := x[0].(*Symbol); ok {
			if form, ok := interp.specialForms[head]; ok {
				return form(interp, x, env)
			}
		}
		return interp.evalApplication(x, env)
	default:
		return expr, nil
	}
}

func (interp *Interpreter) evalApplication(form List, env *Env) (Value, error) {
	proc, err := interp.Eval(form[0], env)
	if err != nil {
		return nil, err
	}
	if !IsProcedure(proc) {
		return nil, &ApplicationError{Value: proc}
	}
	args := make([]Value, len(form)-1)
	for i, arg := range form[1:] {
		if args[i], err = interp.Eval(arg, env); err != nil {
			return nil, err
		}
	}
	return interp.Apply(proc, args)
}

// Apply calls proc with already evaluated arguments.
func (interp *Interpreter) Apply(proc Value, args []Value) (Value, error) {
	switch p := proc.(type) {
	case *Primitive:
		if err := p.checkArity(len(args)); err != nil {
			return nil, err
		}
		return p.Fn(interp, args)
	case *Closure:
		fenv, err := NewEnv(p.Params, p.Rest, args, p.Env)
		if err != nil {
			var arityErr *ArityError
			if errors.As(err, &arityErr) {
				arityErr.Name = p.displayName()
			}
			return nil, err
		}
		if interp.maxDepth > 0 && interp.depth >= interp.maxDepth {
			return nil, runtimeErrorf("maximum recursion depth %d exceeded in %s", interp.maxDepth, p.displayName())
		}
		interp.depth++
		defer func() { interp.depth-- }()
		return interp.Eval(p.Body, fenv)
	default:
		return nil, &ApplicationError{Value: proc}
	}
}

// special forms

func evalQuote(interp *Interpreter, form List, env *Env) (Value, error) {
	if len(form) != 2 {
		return nil, badForm(form, "quote expects one argument")
	}
	return form[1], nil
}

func evalIf(interp *Interpreter, form List, env *Env) (Value, error) {
	if len(form) != 3 && len(form) != 4 {
		return nil, badForm(form, "if expects a test, a consequent and an optional alternative")
	}
	test, err := interp.Eval(form[1], env)
	if err != nil {
		return nil, err
	}
	if IsTruthy(test) {
		return interp.Eval(form[2], env)
	}
	if len(form) == 3 {
		return Unspecified, nil
	}
	return interp.Eval(form[3], env)
}

// evalDefine handles (define name expr) and the procedure shorthand
// (define (name params...) body...), which is rewritten to
// (define name (lambda (params...) body...)) before anything is evaluated.
func evalDefine(interp *Interpreter, form List, env *Env) (Value, error) {
	if len(form) < 3 {
		return nil, badForm(form, "define expects a name and a value")
	}
	var name *Symbol
	var valueForm Value
	switch target := form[1].(type) {
	case *Symbol:
		if len(form) != 3 {
			return nil, badForm(form, "define expects a single value")
		}
		name, valueForm = target, form[2]
	case List:
		if len(target) == 0 {
			return nil, badForm(form, "missing procedure name")
		}
		sym, ok := target[0].(*Symbol)
		if !ok {
			return nil, badForm(form, "procedure name must be a symbol")
		}
		lambda := List{interp.symLambda, target[1:]}
		name, valueForm = sym, append(lambda, form[2:]...)
	default:
		return nil, badForm(form, "cannot define %s", Repr(form[1]))
	}
	value, err := interp.Eval(valueForm, env)
	if err != nil {
		return nil, err
	}
	if c, ok := value.(*Closure); ok && c.Name == "" {
		c.Name = name.Name
	}
	env.Define(name, value)
	return value, nil
}

func evalSet(interp *Interpreter, form List, env *Env) (Value, error) {
	if len(form) != 3 {
		return nil, badForm(form, "set! expects a name and a value")
	}
	name, ok := form[1].(*Symbol)
	if !ok {
		return nil, badForm(form, "set! target must be a symbol")
	}
	value, err := interp.Eval(form[2], env)
	if err != nil {
		return nil, err
	}
	if err := env.Set(name, value); err != nil {
		return nil, err
	}
	return Unspecified, nil
}

// evalLambda builds a closure over env. The parameter form is either a
// list of symbols or a single symbol collecting all arguments. Several body
// expressions are wrapped in an implicit begin.
func evalLambda(interp *Interpreter, form List, env *Env) (Value, error) {
	if len(form) < 3 {
		return nil, badForm(form, "lambda expects parameters and a body")
	}
	c := &Closure{Env: env}
	switch params := form[1].(type) {
	case *Symbol:
		c.Rest = params
	case List:
		c.Params = make([]*Symbol, len(params))
		for i, p := range params {
			sym, ok := p.(*Symbol)
			if !ok {
				return nil, badForm(form, "parameter %s is not a symbol", Repr(p))
			}
			c.Params[i] = sym
		}
	default:
		return nil, badForm(form, "parameters must be a list of symbols")
	}
	if len(form) == 3 {
		c.Body = form[2]
	} else {
		c.Body = append(List{interp.symBegin}, form[2:]...)
	}
	return c, nil
}

func evalBegin(interp *Interpreter, form List, env *Env) (result Value, err error) {
	if len(form) < 2 {
		return nil, badForm(form, "begin expects at least one expression")
	}
	for _, expr := range form[1:] {
		if result, err = interp.Eval(expr, env); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// evalLet evaluates (let ((name expr)...) body...) as a call of an
// anonymous procedure: the binding expressions run in env, the body in a
// new frame.
func evalLet(interp *Interpreter, form List, env *Env) (result Value, err error) {
	if len(form) < 3 {
		return nil, badForm(form, "let expects bindings and a body")
	}
	bindings, ok := form[1].(List)
	if !ok {
		return nil, badForm(form, "let bindings must be a list")
	}
	names := make([]*Symbol, len(bindings))
	values := make([]Value, len(bindings))
	for i, b := range bindings {
		pair, ok := b.(List)
		if !ok || len(pair) != 2 {
			return nil, badForm(form, "let binding %s is not a (name value) pair", Repr(b))
		}
		sym, ok := pair[0].(*Symbol)
		if !ok {
			return nil, badForm(form, "let binding name %s is not a symbol", Repr(pair[0]))
		}
		names[i] = sym
		if values[i], err = interp.Eval(pair[1], env); err != nil {
			return nil, err
		}
	}
	letEnv, err := NewEnv(names, nil, values, env)
	if err != nil {
		return nil, err
	}
	for _, expr := range form[2:] {
		if result, err = interp.Eval(expr, letEnv); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func evalAnd(interp *Interpreter, form List, env *Env) (result Value, err error) {
	result = True
	for _, expr := range form[1:] {
		if result, err = interp.Eval(expr, env); err != nil {
			return nil, err
		}
		if !IsTruthy(result) {
			return result, nil
		}
	}
	return result, nil
}

func evalOr(interp *Interpreter, form List, env *Env) (result Value, err error) {
	result = False
	for _, expr := range form[1:] {
		if result, err = interp.Eval(expr, env); err != nil {
			return nil, err
		}
		if IsTruthy(result) {
			return result, nil
		}
	}
	return result, nil
}

// evalLoad evaluates the file named by its argument in the global
// environment. Results are discarded; the first error aborts the load.
func evalLoad(interp *Interpreter, form List, env *Env) (Value, error) {
	if len(form) != 2 {
		return nil, badForm(form, "load expects a file name")
	}
	name, err := interp.Eval(form[1], env)
	if err != nil {
		return nil, err
	}
	path, ok := name.(String)
	if !ok {
		return nil, runtimeErrorf("load expects a string, got %s", Repr(name))
	}
	if err := interp.LoadFile(string(path)); err != nil {
		return nil, err
	}
	return Unspecified, nil
}
