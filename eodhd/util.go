package eodhd

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/etnz/cigarbutt"
)

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
	dir  string // empty is os.TempDir()
}

// RoundTrip implements the http.RoundTripper interface. It checks for a cached
// response on disk first. If a fresh cached response is not found, it proceeds
// with the actual HTTP request and caches the new response if it's successful.
func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", cigarbutt.Today(), req.Method, req.URL.String())
	key = fmt.Sprintf("ncav-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

func (c *diskCache) file(key string) string {
	dir := c.dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	content, err := os.ReadFile(c.file(key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(c.file(key))
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	f.Close()
	return err
}

// NewHTTPClient returns the http.Client to talk to EODHD.
//
// If cached is true successful responses are kept on disk for the day.
// A zero timeout means no timeout.
func NewHTTPClient(cached bool, timeout time.Duration) *http.Client {
	client := &http.Client{Timeout: timeout}
	if cached {
		client.Transport = &diskCache{base: http.DefaultTransport}
	}
	return client
}

// wget performs an HTTP GET request to the given address and returns the
// response body.
//
// Failures are reported as *cigarbutt.ProviderError for ticker.
func wget(ctx context.Context, client *http.Client, ticker, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, cigarbutt.NewProviderError(ticker, cigarbutt.Transport, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, cigarbutt.NewProviderError(ticker, cigarbutt.Transport, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, cigarbutt.NewProviderError(ticker, cigarbutt.UnknownSymbol,
			fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status))
	case resp.StatusCode != http.StatusOK:
		return nil, cigarbutt.NewProviderError(ticker, cigarbutt.Transport,
			fmt.Errorf("cannot http GET %v%v: %v", resp.Request.URL.Host, resp.Request.URL.Path, resp.Status))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, cigarbutt.NewProviderError(ticker, cigarbutt.Transport, err)
	}
	return body, nil
}
