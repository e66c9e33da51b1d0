package debug

// Registry is the fixed, ordered set of debug variables. The order is the
// dump order external readers depend on. It does not own the variables.
type Registry struct {
	vars []Variable
}

// NewRegistry creates a registry over vars, in the given order.
func NewRegistry(vars ...Variable) *Registry {
	r := &Registry{vars: make([]Variable, len(vars))}
	copy(r.vars, vars)
	return r
}

// Len returns the number of variables.
func (r *Registry) Len() int {
	return len(r.vars)
}

// Lookup returns the variable called name, or nil.
func (r *Registry) Lookup(name string) Variable {
	for _, v := range r.vars {
		if v.Name() == name {
			return v
		}
	}
	return nil
}

// Dump clears dst and appends one "<name> = <rendering>\n" line per variable.
// It does not disable interrupts: a counter being incremented concurrently
// may show either its old or new value.
func (r *Registry) Dump(dst []byte) []byte {
	dst = dst[:0]
	for _, v := range r.vars {
		dst = append(dst, v.Name()...)
		dst = append(dst, " = "...)
		dst = appendDump(dst, v)
		dst = append(dst, '\n')
	}
	return dst
}

// Read clears dst and appends a Reading per variable, in registry order.
func (r *Registry) Read(dst []Reading) []Reading {
	dst = dst[:0]
	for _, v := range r.vars {
		dst = append(dst, read(v))
	}
	return dst
}

// Tick1secPeriod closes the 1 s window of every variable.
func (r *Registry) Tick1secPeriod() {
	for _, v := range r.vars {
		switch v := v.(type) {
		case *Duration:
			v.Tick1secPeriod()
		case *Counter:
			v.Tick1secPeriod()
		}
	}
}

// Tick10secPeriod closes the 10 s window of every variable.
func (r *Registry) Tick10secPeriod() {
	for _, v := range r.vars {
		switch v := v.(type) {
		case *Duration:
			v.Tick10secPeriod()
		case *Counter:
			v.Tick10secPeriod()
		}
	}
}

func appendDump(dst []byte, v Variable) []byte {
	switch v := v.(type) {
	case *Value:
		return v.AppendDump(dst)
	case *Duration:
		return v.AppendDump(dst)
	case *Counter:
		return v.AppendDump(dst)
	}
	return dst
}
