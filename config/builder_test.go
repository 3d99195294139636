package config

import (
	"testing"

	"github.com/jpalmerr/statekit"
)

func TestBuildStores(t *testing.T) {
	cfg, err := Parse([]byte(`
stores:
  - name: counter
    initial:
      count: 3
  - name: session
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	stores, err := BuildStores(cfg)
	if err != nil {
		t.Fatalf("BuildStores() error = %v", err)
	}

	if len(stores) != 2 {
		t.Fatalf("BuildStores() = %d stores, want 2", len(stores))
	}

	counter, ok := stores["counter"]
	if !ok {
		t.Fatal("store counter not built")
	}
	if counter.Name() != "counter" {
		t.Errorf("Name() = %q, want %q", counter.Name(), "counter")
	}
	if got := counter.State()["count"]; got != 3 {
		t.Errorf("initial count = %v, want 3", got)
	}

	session, ok := stores["session"]
	if !ok {
		t.Fatal("store session not built")
	}
	// absent initial mapping becomes an empty, non-nil state
	if session.State() == nil {
		t.Error("session state = nil, want empty map")
	}
	if len(session.State()) != 0 {
		t.Errorf("session state = %v, want empty", session.State())
	}
}

func TestBuildStores_AppliesOptions(t *testing.T) {
	cfg, err := Parse([]byte(`
stores:
  - name: counter
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	var commits int
	stores, err := BuildStores(cfg,
		statekit.WithCommitCallback[map[string]any](func(statekit.View[map[string]any]) {
			commits++
		}),
	)
	if err != nil {
		t.Fatalf("BuildStores() error = %v", err)
	}

	stores["counter"].Write(map[string]any{"count": 1})
	if commits != 1 {
		t.Errorf("commit callback invoked %d times, want 1", commits)
	}
}

func TestBuildStores_BuiltStoresAreLive(t *testing.T) {
	cfg, err := Parse([]byte(`
stores:
  - name: counter
    initial:
      count: 0
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	stores, err := BuildStores(cfg)
	if err != nil {
		t.Fatalf("BuildStores() error = %v", err)
	}
	counter := stores["counter"]

	increment := statekit.Action0(counter, func(s map[string]any) map[string]any {
		next := make(map[string]any, len(s))
		for k, v := range s {
			next[k] = v
		}
		next["count"] = s["count"].(int) + 1
		return next
	})

	increment()
	increment()

	if got := counter.State()["count"]; got != 2 {
		t.Errorf("count after two increments = %v, want 2", got)
	}
}
