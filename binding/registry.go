package binding

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// ErrUnknownBinding is returned by Lookup for unregistered names.
var ErrUnknownBinding = errors.New("unknown binding")

var (
	mu       sync.RWMutex
	bindings = make(map[string]Binding)
)

// Register makes b available under b.Name(). Registering a name twice
// panics.
func Register(b Binding) Binding {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := bindings[b.Name()]; dup {
		panic(fmt.Sprintf("binding: Register called twice for %s", b.Name()))
	}
	bindings[b.Name()] = b
	return b
}

// Lookup returns the binding registered under name.
func Lookup(name string) (Binding, error) {
	mu.RLock()
	defer mu.RUnlock()

	b, ok := bindings[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBinding, name)
	}
	return b, nil
}

// Names returns the sorted names of every registered binding.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
