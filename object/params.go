package object

// Params looks up named parameter values.
type Params interface {
	Get(name string) (Value, bool)
}

// ParamMap is a Params backed by a map. Names are case-sensitive.
type ParamMap map[string]Value

// Get returns the value of the named parameter.
func (m ParamMap) Get(name string) (Value, bool) {
	v, ok := m[name]
	return v, ok
}

// Layered resolves names against each Params in order, so earlier layers
// shadow later ones. Nil layers are skipped.
type Layered []Params

// Get returns the value from the first layer that defines name.
func (l Layered) Get(name string) (Value, bool) {
	for _, p := range l {
		if p == nil {
			continue
		}
		if v, ok := p.Get(name); ok {
			return v, true
		}
	}
	return Null, false
}
