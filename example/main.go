// Command example walks through the statekit SDK with a typed store:
// sync and async actions, a selector with the default equality rule, and
// a watch channel.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jpalmerr/statekit"
)

// Counter is the shared state for this example.
type Counter struct {
	Count      int
	IsUpdating bool
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	store, err := statekit.New("counter", Counter{},
		statekit.WithLogger[Counter](logger),
	)
	if err != nil {
		logger.Error("failed to create store", "error", err)
		os.Exit(1)
	}

	// sync actions: the state parameter is stripped from the public form
	increment := statekit.Action(store, func(s Counter, by int) Counter {
		s.Count += by
		return s
	})
	reset := statekit.Action0(store, func(s Counter) Counter {
		return Counter{}
	})

	// async action, return-style: snapshot at start, one commit on return
	incrementSlow := statekit.AsyncAction0(store, func(ctx context.Context, s Counter) (Counter, error) {
		select {
		case <-time.After(200 * time.Millisecond):
		case <-ctx.Done():
			return s, ctx.Err()
		}
		s.Count++
		s.IsUpdating = false
		return s, nil
	})
	markUpdating := statekit.Action(store, func(s Counter, updating bool) Counter {
		s.IsUpdating = updating
		return s
	})

	// selector over [count, is_updating]: element-wise default equality,
	// so a write changing either element refreshes the component
	sel := statekit.Select(store,
		func(v statekit.View[Counter]) []any {
			return []any{v.State().Count, v.State().IsUpdating}
		},
		statekit.OnChange[Counter](func(pair []any) {
			fmt.Printf("component refresh: count=%v updating=%v\n", pair[0], pair[1])
		}),
	)
	defer sel.Cancel()

	// watch channel: committed views for select-loop integration
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		for v := range store.Watch(ctx) {
			fmt.Printf("watch: %+v\n", v.State())
		}
	}()

	increment(1)
	increment(2)

	markUpdating(true)
	if err := incrementSlow(context.Background()); err != nil {
		logger.Error("slow increment failed", "error", err)
	}

	reset()

	fmt.Printf("final state: %+v\n", store.State())
}
