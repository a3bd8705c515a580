package blob

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func testClient(t *testing.T, handler http.HandlerFunc) *GitHubClient {
	t.Helper()
	t.Setenv(writeTokenEnvKey, "test-token")
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewGitHubClient(srv.URL, "acme", "floor-data", "main")
}

func TestGitHubGet(t *testing.T) {
	var gotPath, gotAuth, gotRef string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRef = r.URL.Query().Get("ref")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"content":  base64.StdEncoding.EncodeToString([]byte("timestamp,machine,description\n")),
			"encoding": "base64",
			"sha":      "abc123",
		})
	})

	content, version, err := client.Get(context.Background(), "data/records.csv")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(content) != "timestamp,machine,description\n" {
		t.Fatalf("unexpected content %q", content)
	}
	if version != "abc123" {
		t.Fatalf("expected version abc123, got %q", version)
	}
	if gotPath != "/repos/acme/floor-data/contents/data/records.csv" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if gotAuth != "Bearer test-token" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotRef != "main" {
		t.Fatalf("expected ref=main, got %q", gotRef)
	}
}

func TestGitHubGetNotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not Found"})
	})

	_, _, err := client.Get(context.Background(), "data/records.csv")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGitHubGetForbidden(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Bad credentials"})
	})

	_, _, err := client.Get(context.Background(), "data/records.csv")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGitHubPut(t *testing.T) {
	var gotMethod string
	var gotBody putRequest
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		payload, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(payload, &gotBody)
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]string{"sha": "def456"},
		})
	})

	version, err := client.Put(context.Background(), "data/records.csv", []byte("payload"), "abc123", "record M1 status")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if version != "def456" {
		t.Fatalf("expected new version def456, got %q", version)
	}
	if gotMethod != http.MethodPut {
		t.Fatalf("expected PUT, got %s", gotMethod)
	}
	if gotBody.SHA != "abc123" || gotBody.Branch != "main" || gotBody.Message != "record M1 status" {
		t.Fatalf("unexpected request body %+v", gotBody)
	}
	decoded, err := base64.StdEncoding.DecodeString(gotBody.Content)
	if err != nil || string(decoded) != "payload" {
		t.Fatalf("expected base64 payload, got %q (%v)", gotBody.Content, err)
	}
}

func TestGitHubPutCreateOmitsSHA(t *testing.T) {
	var raw map[string]any
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		payload, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(payload, &raw)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"content": map[string]string{"sha": "first"},
		})
	})

	version, err := client.Put(context.Background(), "data/records.csv", []byte("payload"), "", "create records table")
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if version != "first" {
		t.Fatalf("expected version first, got %q", version)
	}
	if _, present := raw["sha"]; present {
		t.Fatalf("create must not send a sha, body %v", raw)
	}
}

func TestGitHubPutConflict(t *testing.T) {
	for _, status := range []int{http.StatusConflict, http.StatusUnprocessableEntity} {
		client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "is at a different sha"})
		})

		_, err := client.Put(context.Background(), "data/records.csv", []byte("payload"), "stale", "msg")
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("status %d: expected ErrConflict, got %v", status, err)
		}

		var conflict *ConflictError
		if !errors.As(err, &conflict) || conflict.ExpectedVersion != "stale" {
			t.Fatalf("status %d: expected ConflictError with stale version, got %v", status, err)
		}
	}
}

func TestGitHubServerErrorUnavailable(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.Put(context.Background(), "data/records.csv", []byte("payload"), "abc", "msg")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestGitHubTransportErrorUnavailable(t *testing.T) {
	t.Setenv(writeTokenEnvKey, "test-token")
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // immediately, so every request fails to connect
	client := NewGitHubClient(srv.URL, "acme", "floor-data", "main")

	_, _, err := client.Get(context.Background(), "data/records.csv")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
