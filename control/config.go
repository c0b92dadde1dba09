// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store with dynamic update and reload propagation.

package control

import (
	"maps"
	"sync"
)

// ConfigStore is a dynamic key/value map with snapshot reads and listener support.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	listeners []func(map[string]any)
}

// NewConfigStore initializes a store holding initial.
func NewConfigStore(initial map[string]any) *ConfigStore {
	cs := &ConfigStore{config: make(map[string]any, len(initial))}
	maps.Copy(cs.config, initial)
	return cs
}

// Get returns one value.
func (cs *ConfigStore) Get(key string) (any, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	v, ok := cs.config[key]
	return v, ok
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return maps.Clone(cs.config)
}

// SetConfig merges new values and notifies listeners with the merged snapshot.
// Listeners run synchronously, after the lock is released, in registration order.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) {
	cs.mu.Lock()
	maps.Copy(cs.config, newCfg)
	snap := maps.Clone(cs.config)
	listeners := append([]func(map[string]any){}, cs.listeners...)
	cs.mu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}

// OnReload registers a listener called after every SetConfig.
func (cs *ConfigStore) OnReload(fn func(map[string]any)) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
