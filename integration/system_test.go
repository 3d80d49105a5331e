//go:build integration
// +build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"testing"
	"time"
)

var baseURL = getenv("E2E_BASE_URL", "http://localhost:8080")

func TestSystem_E2E(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	waitReady(t, ctx, baseURL+"/readyz")

	var health map[string]string
	getJSON(t, baseURL+"/health", &health, http.StatusOK)
	if health["status"] != "ok" {
		t.Fatalf("health=%v", health)
	}

	var all []map[string]any
	getJSON(t, baseURL+"/search?limit=24", &all, http.StatusOK)
	if len(all) == 0 {
		t.Fatalf("expected non-empty catalog")
	}

	pid, _ := all[0]["id"].(string)
	if pid == "" {
		t.Fatalf("product id missing in response: %#v", all[0])
	}

	var got map[string]any
	getJSON(t, baseURL+"/product/"+pid, &got, http.StatusOK)
	if got["id"] != pid {
		t.Fatalf("id=%v want=%s", got["id"], pid)
	}

	getJSON(t, baseURL+"/product/does-not-exist", nil, http.StatusNotFound)
	getJSON(t, baseURL+"/search?limit=25", nil, http.StatusUnprocessableEntity)
}

func waitReady(t *testing.T, ctx context.Context, url string) {
	t.Helper()
	client := &http.Client{Timeout: 2 * time.Second}

	deadline := time.Now().Add(30 * time.Second)
	for time.Now().Before(deadline) {
		req, _ := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		resp, err := client.Do(req)
		if err == nil && resp != nil && resp.StatusCode == http.StatusOK {
			_ = resp.Body.Close()
			return
		}
		if resp != nil {
			_ = resp.Body.Close()
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("service not ready: %s", url)
}

func getJSON(t *testing.T, url string, out any, want int) {
	t.Helper()

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		t.Fatalf("GET %s: status=%d want=%d", url, resp.StatusCode, want)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
