package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

func success(response *http.Response) bool {
	return response.StatusCode >= http.StatusOK && response.StatusCode < http.StatusMultipleChoices
}

// Fetch writes the body of a GET request for url to w.  Non-2xx responses are
// errors.
func Fetch(ctx context.Context, client *http.Client, url string, w io.Writer) (int64, error) {
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	if !success(resp) {
		return 0, fmt.Errorf("unexpected response from %s: %d", url, resp.StatusCode)
	}

	written, err := io.Copy(w, resp.Body)
	if err != nil {
		return written, fmt.Errorf("failed to read response from %s: %w", url, err)
	}
	return written, nil
}
