package expr

import (
	"sort"
	"sync"

	"github.com/risor-io/expr/object"
)

// Params is a concurrency-safe collection of named parameter values.
// Names are case-sensitive.
type Params struct {
	mu     sync.RWMutex
	values map[string]object.Value
}

// NewParams returns an empty collection.
func NewParams() *Params {
	return &Params{values: map[string]object.Value{}}
}

// Set binds name to value, replacing any previous value.
func (p *Params) Set(name string, value object.Value) {
	p.mu.Lock()
	p.values[name] = value
	p.mu.Unlock()
}

// SetAny converts a Go value with object.FromGo and binds it to name.
// Strings are parsed with object.Parse.
func (p *Params) SetAny(name string, value any) error {
	var v object.Value
	var err error
	if s, ok := value.(string); ok {
		v, err = object.Parse(s)
	} else {
		v, err = object.FromGo(value)
	}
	if err != nil {
		return err
	}
	p.Set(name, v)
	return nil
}

// Get returns the value bound to name.
func (p *Params) Get(name string) (object.Value, bool) {
	p.mu.RLock()
	v, ok := p.values[name]
	p.mu.RUnlock()
	return v, ok
}

func (p *Params) Contains(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Remove deletes name and reports whether it was present.
func (p *Params) Remove(name string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.values[name]
	delete(p.values, name)
	return ok
}

func (p *Params) Clear() {
	p.mu.Lock()
	p.values = map[string]object.Value{}
	p.mu.Unlock()
}

func (p *Params) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.values)
}

// Names returns the bound names in sorted order.
func (p *Params) Names() []string {
	p.mu.RLock()
	names := make([]string, 0, len(p.values))
	for name := range p.values {
		names = append(names, name)
	}
	p.mu.RUnlock()
	sort.Strings(names)
	return names
}
