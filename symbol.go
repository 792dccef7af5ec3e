package lispy

// Interner maps symbol names to unique *Symbol values so that symbols read
// by the same interpreter can be compared by pointer.
type Interner struct {
	symtab map[string]*Symbol
}

func NewInterner() *Interner {
	return &Interner{symtab: make(map[string]*Symbol)}
}

func (in *Interner) Intern(name string) *Symbol {
	sym, ok := in.symtab[name]
	if !ok {
		sym = &Symbol{name}
		in.symtab[name] = sym
	}
	return sym
}

// Len returns the number of distinct symbols interned so far.
func (in *Interner) Len() int {
	return len(in.symtab)
}
