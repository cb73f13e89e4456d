package kernel

import (
	"sync"

	"github.com/corpuskit/semcore/internal/config"
)

// Process-wide kernel instance. Guarded by singletonMu so concurrent first
// calls construct exactly once.
var (
	singletonMu sync.Mutex
	singleton   *Kernel
)

// Get returns the process-wide kernel, constructing it on the first call.
// The first configuration wins: once a kernel exists, later calls return it
// and ignore their arguments entirely. A nil configuration means defaults.
func Get(cfg *config.Config, opts ...Option) (*Kernel, error) {
	singletonMu.Lock()
	defer singletonMu.Unlock()

	if singleton != nil {
		return singleton, nil
	}

	k, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}
	singleton = k
	return k, nil
}

// Reset discards the process-wide kernel. The next Get constructs a fresh
// one from whatever configuration it receives.
func Reset() {
	singletonMu.Lock()
	defer singletonMu.Unlock()
	singleton = nil
}
