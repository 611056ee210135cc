package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

// DefaultHTTPTimeout bounds a single request to the groups endpoint
const DefaultHTTPTimeout = 5 * time.Second

// maxResponseSize caps how much of the body is decoded (10MB)
const maxResponseSize = 10 * 1024 * 1024

// HTTPSource fetches the {result, data} envelope from an endpoint
type HTTPSource struct {
	url    string
	client *http.Client
}

// NewHTTPSource creates a source for url. Zero timeout selects
// DefaultHTTPTimeout.
func NewHTTPSource(url string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = DefaultHTTPTimeout
	}
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// URL returns the endpoint
func (s *HTTPSource) URL() string {
	return s.url
}

// LoadGroups performs one GET. Timeouts, non-200 statuses and failure
// results all become a LoadError.
func (s *HTTPSource) LoadGroups(ctx context.Context) ([]model.Group, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, loadErr(s.url, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, loadErr(s.url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, loadErr(s.url, fmt.Errorf("endpoint returned status: %s", resp.Status))
	}

	var body model.GetGroupsResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&body); err != nil {
		return nil, loadErr(s.url, fmt.Errorf("decode response: %w", err))
	}

	return fromResponse(s.url, body)
}
