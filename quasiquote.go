package lispy

func (interp *Interpreter) isForm(v Value, head *Symbol) (List, bool) {
	l, ok := v.(List)
	if !ok || len(l) == 0 || l[0] != head {
		return nil, false
	}
	return l, true
}

// qq expands a quasiquote template. Nested quasiquotes are not tracked:
// every unquote is evaluated regardless of depth.
func (interp *Interpreter) qq(tmpl Value, env *Env) (Value, error) {
	l, ok := tmpl.(List)
	if !ok || len(l) == 0 {
		return tmpl, nil
	}
	if unquote, ok := interp.isForm(l, interp.symUnquote); ok {
		if len(unquote) != 2 {
			return nil, badForm(unquote, "unquote expects one argument")
		}
		return interp.Eval(unquote[1], env)
	}
	if splice, ok := interp.isForm(l, interp.symUnquoteSplicing); ok {
		return nil, badForm(splice, "unquote-splicing outside of a list")
	}
	result := make(List, 0, len(l))
	for _, item := range l {
		if splice, ok := interp.isForm(item, interp.symUnquoteSplicing); ok {
			if len(splice) != 2 {
				return nil, badForm(splice, "unquote-splicing expects one argument")
			}
			v, err := interp.Eval(splice[1], env)
			if err != nil {
				return nil, err
			}
			items, ok := v.(List)
			if !ok {
				return nil, runtimeErrorf("unquote-splicing expects a list, got %s", Repr(v))
			}
			result = append(result, items...)
			continue
		}
		v, err := interp.qq(item, env)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

func evalQuasiQuote(interp *Interpreter, form List, env *Env) (Value, error) {
	if len(form) != 2 {
		return nil, badForm(form, "quasiquote expects one argument")
	}
	return interp.qq(form[1], env)
}
