package internal

// Provider is the synchronous key/value substrate the engine persists into.
// It mirrors the Web Storage contract: single-key get/set/remove, positional
// key enumeration, and a hard quota that makes Set fail with
// ErrQuotaExceeded when the substrate is full.
type Provider interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string)
	Clear()
	Key(i int) (string, bool)
	Len() int
}

// MemoryProvider is an in-memory Provider with insertion-ordered key
// enumeration. It enforces no quota and is the default substrate for
// embedders and tests.
type MemoryProvider struct {
	keys   []string
	values map[string]string
}

// NewMemoryProvider creates an empty in-memory provider
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{values: make(map[string]string)}
}

func (p *MemoryProvider) Get(key string) (string, bool) {
	v, ok := p.values[key]
	return v, ok
}

func (p *MemoryProvider) Set(key, value string) error {
	if _, ok := p.values[key]; !ok {
		p.keys = append(p.keys, key)
	}
	p.values[key] = value
	return nil
}

func (p *MemoryProvider) Remove(key string) {
	if _, ok := p.values[key]; !ok {
		return
	}
	delete(p.values, key)
	for i, k := range p.keys {
		if k == key {
			p.keys = append(p.keys[:i], p.keys[i+1:]...)
			break
		}
	}
}

func (p *MemoryProvider) Clear() {
	p.keys = nil
	p.values = make(map[string]string)
}

func (p *MemoryProvider) Key(i int) (string, bool) {
	if i < 0 || i >= len(p.keys) {
		return "", false
	}
	return p.keys[i], true
}

func (p *MemoryProvider) Len() int {
	return len(p.values)
}

// Keys enumerates every key currently held by the provider
func Keys(p Provider) []string {
	keys := make([]string, 0, p.Len())
	for i := 0; i < p.Len(); i++ {
		if key, ok := p.Key(i); ok {
			keys = append(keys, key)
		}
	}
	return keys
}
