package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultBodyLimit caps how much of a response body Get will read.
const DefaultBodyLimit = 1 << 20

// Get fetches url with client and returns the body of a 200 response.
// At most limit bytes are read; a non-positive limit means DefaultBodyLimit.
func Get(ctx context.Context, client *http.Client, url string, header http.Header, limit int64) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}
	if limit <= 0 {
		limit = DefaultBodyLimit
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("request failed: %s; body: %s", resp.Status, string(b))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
