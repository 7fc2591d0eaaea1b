// Package cache provides a thread-safe LRU cache of compiled expressions,
// keyed by source text.
package cache

import (
	"container/list"
	"sync"

	"github.com/risor-io/expr/bytecode"
)

// DefaultCapacity is used when New is given a non-positive capacity.
const DefaultCapacity = 256

type entry struct {
	key  string
	code *bytecode.Code
}

// Cache is an LRU cache of durable compiled code. Once the capacity is
// reached the least recently used entry is evicted.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element
	hits     uint64
	misses   uint64
}

// Stats reports cache usage counters.
type Stats struct {
	Hits     uint64
	Misses   uint64
	Len      int
	Capacity int
}

func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the code cached for source and marks it most recently used.
func (c *Cache) Get(source string) (*bytecode.Code, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[source]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.ll.MoveToFront(el)
	return el.Value.(*entry).code, true
}

// Set stores code for source, evicting the least recently used entry when
// the cache is full.
func (c *Cache) Set(source string, code *bytecode.Code) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[source]; ok {
		el.Value.(*entry).code = code
		c.ll.MoveToFront(el)
		return
	}
	if c.ll.Len() >= c.capacity {
		if last := c.ll.Back(); last != nil {
			c.ll.Remove(last)
			delete(c.items, last.Value.(*entry).key)
		}
	}
	c.items[source] = c.ll.PushFront(&entry{key: source, code: code})
}

// GetOrCompile returns the cached code for source or calls compile and
// caches its result. Errors are not cached.
func (c *Cache) GetOrCompile(source string, compile func() (*bytecode.Code, error)) (*bytecode.Code, error) {
	if code, ok := c.Get(source); ok {
		return code, nil
	}
	code, err := compile()
	if err != nil {
		return nil, err
	}
	c.Set(source, code)
	return code, nil
}

// Clear removes all entries. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:     c.hits,
		Misses:   c.misses,
		Len:      c.ll.Len(),
		Capacity: c.capacity,
	}
}
