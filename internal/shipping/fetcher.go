package shipping

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// RateFetcher is the per-provider half of the rate pipeline: everything
// after it (filter, markup, fallback, sort) lives in BuildQuotes and is
// shared. Implementations return a *FetchError so callers can tell
// missing credentials, provider rejections and transport failures apart.
type RateFetcher interface {
	Name() string
	FetchRates(ctx context.Context, from, to Address, weightKg float64) ([]RawQuote, error)
}

func newRateHTTPClient() *http.Client {
	return &http.Client{Timeout: 15 * time.Second}
}

// doJSON posts (or gets) a JSON body and decodes the JSON response. A
// non-2xx status comes back as a *FetchError of kind provider_error,
// anything at the transport layer as transport_error.
func doJSON(ctx context.Context, client *http.Client, provider, method, url string, headers map[string]string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &FetchError{Kind: FailureTransport, Provider: provider, Message: "marshal request: " + err.Error()}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return &FetchError{Kind: FailureTransport, Provider: provider, Message: "create request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := client.Do(req)
	if err != nil {
		return &FetchError{Kind: FailureTransport, Provider: provider, Message: err.Error()}
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &FetchError{Kind: FailureTransport, Provider: provider, Message: "read response: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &FetchError{
			Kind:     FailureProvider,
			Provider: provider,
			Message:  fmt.Sprintf("status %d: %s", resp.StatusCode, truncate(string(respBytes), 300)),
		}
	}

	if out != nil {
		if err := json.Unmarshal(respBytes, out); err != nil {
			return &FetchError{Kind: FailureProvider, Provider: provider, Message: "decode response: " + err.Error()}
		}
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
