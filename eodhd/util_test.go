package eodhd

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiskCache(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/fail" {
			http.Error(w, "oops", http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[{"close":1}]`))
	}))
	defer srv.Close()

	client := &http.Client{Transport: &diskCache{base: http.DefaultTransport, dir: t.TempDir()}}
	get := func(path string) (int, string) {
		t.Helper()
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("Get(%s) unexpected error = %v", path, err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("Get(%s) cannot read body: %v", path, err)
		}
		return resp.StatusCode, string(body)
	}

	for i := 0; i < 3; i++ {
		if status, body := get("/ok"); status != http.StatusOK || body != `[{"close":1}]` {
			t.Errorf("Get(/ok) #%d = %d %q", i, status, body)
		}
	}
	if hits != 1 {
		t.Errorf("server hit %d times for a cached path, want 1", hits)
	}

	get("/fail")
	get("/fail")
	if hits != 3 {
		t.Errorf("server hit %d times, errors must not be cached", hits)
	}
}
