package sse

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/jpalmerr/statekit"
)

type counter struct {
	Count int `json:"count"`
}

// startTestServer starts a bridge for a fresh store on the given port and
// returns the store and base URL. The server shuts down with the test.
func startTestServer(t *testing.T, port int, actions map[string]ActionHandler) (*statekit.Store[counter], string) {
	t.Helper()

	st, err := statekit.New("counter", counter{})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := NewServer(st, port, actions, nil, logger)
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	return st, fmt.Sprintf("http://localhost:%d", port)
}

func TestServer_StateEndpoint(t *testing.T) {
	st, base := startTestServer(t, 19301, nil)
	st.Write(counter{Count: 4})

	resp, err := http.Get(base + "/api/state")
	if err != nil {
		t.Fatalf("GET /api/state error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/json")
	}

	var snap struct {
		Name  string  `json:"name"`
		State counter `json:"state"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if snap.Name != "counter" {
		t.Errorf("name = %q, want %q", snap.Name, "counter")
	}
	if snap.State.Count != 4 {
		t.Errorf("state.count = %d, want 4", snap.State.Count)
	}
}

func TestServer_ActionEndpoint(t *testing.T) {
	var st *statekit.Store[counter]

	actions := map[string]ActionHandler{
		"increment": func(ctx context.Context, payload json.RawMessage) error {
			statekit.Action0(st, func(s counter) counter {
				s.Count++
				return s
			})()
			return nil
		},
		"failing": func(ctx context.Context, payload json.RawMessage) error {
			return fmt.Errorf("cannot comply")
		},
	}

	st, base := startTestServer(t, 19302, actions)

	resp, err := http.Post(base+"/api/actions/increment", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST /api/actions/increment error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNoContent)
	}
	if st.State().Count != 1 {
		t.Errorf("State().Count = %d, want 1", st.State().Count)
	}

	resp, err = http.Post(base+"/api/actions/failing", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST /api/actions/failing error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusUnprocessableEntity)
	}

	resp, err = http.Post(base+"/api/actions/unknown", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("POST /api/actions/unknown error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestServer_EventsStream(t *testing.T) {
	st, base := startTestServer(t, 19303, nil)
	st.Write(counter{Count: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"/api/events", nil)
	if err != nil {
		t.Fatalf("NewRequest() error = %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /api/events error = %v", err)
	}
	defer resp.Body.Close()

	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want %q", ct, "text/event-stream")
	}

	scanner := bufio.NewScanner(resp.Body)
	readEvent := func() counter {
		t.Helper()
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			var snap struct {
				State counter `json:"state"`
			}
			if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &snap); err != nil {
				t.Fatalf("unmarshal event error = %v", err)
			}
			return snap.State
		}
		t.Fatalf("stream ended early: %v", scanner.Err())
		return counter{}
	}

	// initial snapshot arrives first
	if got := readEvent(); got.Count != 1 {
		t.Errorf("initial event count = %d, want 1", got.Count)
	}

	// a committed write is streamed
	st.Write(counter{Count: 2})
	if got := readEvent(); got.Count != 2 {
		t.Errorf("streamed event count = %d, want 2", got.Count)
	}
}
