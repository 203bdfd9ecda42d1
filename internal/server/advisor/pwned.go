package advisor

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/onepass/internal/netx"
)

// DefaultPwnedURL is the public Pwned Passwords range endpoint.
const DefaultPwnedURL = "https://api.pwnedpasswords.com"

// PwnedClient queries a Pwned Passwords compatible /range/{prefix} endpoint.
// Only the five-character hash prefix leaves the process.
type PwnedClient struct {
	baseURL string
	http    *http.Client
}

// NewPwnedClient returns a client for baseURL (DefaultPwnedURL when empty).
func NewPwnedClient(baseURL string, timeout time.Duration) *PwnedClient {
	if baseURL == "" {
		baseURL = DefaultPwnedURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &PwnedClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *PwnedClient) Range(ctx context.Context, prefix string) (map[string]int64, error) {
	body, err := netx.Get(ctx, c.http, c.baseURL+"/range/"+prefix, http.Header{"Add-Padding": {"true"}}, 0)
	if err != nil {
		return nil, err
	}
	return parseRange(string(body))
}

// parseRange reads "SUFFIX:COUNT" lines. Padding rows carry a zero count and
// are dropped.
func parseRange(body string) (map[string]int64, error) {
	out := make(map[string]int64)
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		suffix, count, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("malformed range line %q", line)
		}
		n, err := strconv.ParseInt(strings.TrimSpace(count), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed count in %q: %w", line, err)
		}
		if n > 0 {
			out[strings.ToUpper(suffix)] = n
		}
	}
	return out, nil
}

func sha1Hex(s string) string {
	sum := sha1.Sum([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))
}
