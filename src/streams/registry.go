package streams

import (
	"fmt"
	"sync"

	"storefront-gateway/src/interfaces"
)

// The global registry map. Key is the profile kind (e.g., "orders"), value is
// the constructor function.
var (
	registry = make(map[string]interfaces.IStreamProfileConstructor)
	mu       sync.RWMutex // Use a mutex for concurrent map access
)

// Register is called by each profile's init() function to add itself to the map.
func Register(kind string, constructor interfaces.IStreamProfileConstructor) error {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := registry[kind]; exists {
		return fmt.Errorf("stream profile already registered for kind: %s", kind)
	}
	registry[kind] = constructor
	return nil
}

// GetConstructor is used by the StreamFactory to retrieve the constructor.
func GetConstructor(kind string) (interfaces.IStreamProfileConstructor, error) {
	mu.RLock()
	defer mu.RUnlock()
	constructor, exists := registry[kind]
	if !exists {
		return nil, fmt.Errorf("unknown stream profile kind: %s", kind)
	}
	return constructor, nil
}
