package config

import (
	"fmt"

	"github.com/jpalmerr/statekit"
)

// DynamicStore is a store whose state shape is defined by configuration
// rather than a Go type.
type DynamicStore = statekit.Store[map[string]any]

// BuildStores converts parsed configuration into SDK stores.
//
// Each [StoreConfig] becomes a dynamic store keyed by its name in the
// returned map. Options are applied to every store; use them to inject a
// shared logger or commit callbacks.
func BuildStores(cfg *Config, opts ...statekit.Option[map[string]any]) (map[string]*DynamicStore, error) {
	stores := make(map[string]*DynamicStore, len(cfg.Stores))

	for _, sc := range cfg.Stores {
		initial := sc.Initial
		if initial == nil {
			initial = make(map[string]any)
		}

		st, err := statekit.New(sc.Name, initial, opts...)
		if err != nil {
			return nil, fmt.Errorf("store %q: %w", sc.Name, err)
		}
		stores[sc.Name] = st
	}

	return stores, nil
}
