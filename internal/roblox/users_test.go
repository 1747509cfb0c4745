package roblox

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func testClient() *Client {
	return NewClient(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestResolveUsernames_EmptyInputSkipsNetwork(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("unexpected request for empty input")
	}))
	defer ts.Close()

	c := testClient()
	c.UsersBaseURL = ts.URL

	got := c.ResolveUsernames(context.Background(), nil)
	if len(got) != 0 {
		t.Errorf("expected empty map, got %v", got)
	}
}

func TestResolveUsernames_LowercasesNames(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/usernames/users" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var req struct {
			Usernames []string `json:"usernames"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Usernames) != 2 {
			t.Errorf("expected 2 usernames, got %d", len(req.Usernames))
		}
		fmt.Fprint(w, `{"data":[{"name":"Builderman","id":156},{"name":"Roblox","id":1}]}`)
	}))
	defer ts.Close()

	c := testClient()
	c.UsersBaseURL = ts.URL

	got := c.ResolveUsernames(context.Background(), []string{"builderman", "roblox"})
	if got["builderman"] != 156 {
		t.Errorf("expected builderman=156, got %v", got)
	}
	if got["roblox"] != 1 {
		t.Errorf("expected roblox=1, got %v", got)
	}
}

func TestResolveUsernames_ChunksAtLimit(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req struct {
			Usernames []string `json:"usernames"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Usernames) > usernameChunkSize {
			t.Errorf("chunk of %d exceeds limit %d", len(req.Usernames), usernameChunkSize)
		}
		fmt.Fprint(w, `{"data":[]}`)
	}))
	defer ts.Close()

	c := testClient()
	c.UsersBaseURL = ts.URL

	names := make([]string, usernameChunkSize+1)
	for i := range names {
		names[i] = fmt.Sprintf("user%d", i)
	}
	c.ResolveUsernames(context.Background(), names)

	if calls.Load() != 2 {
		t.Errorf("expected 2 upstream calls for %d names, got %d", len(names), calls.Load())
	}
}

func TestResolveUsernames_FailedChunkIsTolerated(t *testing.T) {
	var calls atomic.Int64
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprint(w, `{"data":[{"name":"survivor","id":42}]}`)
	}))
	defer ts.Close()

	c := testClient()
	c.UsersBaseURL = ts.URL

	// two chunks; the first fails, the second must still run
	names := make([]string, usernameChunkSize+1)
	for i := range names {
		names[i] = fmt.Sprintf("user%d", i)
	}
	got := c.ResolveUsernames(context.Background(), names)

	if calls.Load() != 2 {
		t.Errorf("expected both chunks attempted, got %d calls", calls.Load())
	}
	if got["survivor"] != 42 {
		t.Errorf("expected second chunk results kept, got %v", got)
	}
}
