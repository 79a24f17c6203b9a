package sessionx

import "sync"

// The SDK is usually initialised once at process start and consulted from
// every request handler. The registry holds that single instance so callers
// don't have to thread a *Validator through every layer.

var (
	registryMu sync.RWMutex
	registry   *Validator
)

// Init builds the process-wide Validator. Calling it twice is a programming
// error and fails loudly rather than silently replacing live configuration.
func Init(cfg Config) (*Validator, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registry != nil {
		return nil, ErrAlreadyInitialized
	}
	v, err := New(cfg)
	if err != nil {
		return nil, err
	}
	registry = v
	return v, nil
}

// Instance returns the Validator built by Init.
func Instance() (*Validator, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if registry == nil {
		return nil, ErrNotInitialized
	}
	return registry, nil
}

// Reset clears the registry. Intended for tests.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = nil
}
