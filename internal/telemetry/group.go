package telemetry

import "fmt"

// Group is a named collection of fields. Fields are registered before the
// group is shared; registration is not safe for concurrent use.
type Group struct {
	name  string
	vars  []*Var
	index map[string]*Var
}

func NewGroup(name string) *Group {
	return &Group{name: name, index: make(map[string]*Var)}
}

func (g *Group) Name() string { return g.name }

// Float registers a float field.
func (g *Group) Float(name string) *Var {
	return g.add(name, KindFloat)
}

// Uint16 registers an unsigned 16-bit field.
func (g *Group) Uint16(name string) *Var {
	return g.add(name, KindUint16)
}

func (g *Group) add(name string, kind Kind) *Var {
	if _, dup := g.index[name]; dup {
		panic(fmt.Sprintf("telemetry: duplicate field %s.%s", g.name, name))
	}
	v := &Var{name: name, kind: kind}
	g.vars = append(g.vars, v)
	g.index[name] = v
	return v
}

// Names returns field names in registration order.
func (g *Group) Names() []string {
	names := make([]string, len(g.vars))
	for i, v := range g.vars {
		names[i] = v.name
	}
	return names
}

// Lookup finds a field by name.
func (g *Group) Lookup(name string) (*Var, bool) {
	v, ok := g.index[name]
	return v, ok
}

// Vars returns the fields in registration order.
func (g *Group) Vars() []*Var {
	return g.vars
}

// Len is the number of fields.
func (g *Group) Len() int { return len(g.vars) }

// Sample appends the current value of every field, in Names order, to dst.
func (g *Group) Sample(dst []float64) []float64 {
	for _, v := range g.vars {
		dst = append(dst, v.Value())
	}
	return dst
}
