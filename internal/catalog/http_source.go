package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// APIError is the error body returned by the audio-guide API.
type APIError struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Detail, e.StatusCode)
}

// HTTPSource fetches the catalog from the audio-guide API, e.g.
// http://localhost:8000/api/v1.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// NewHTTPSource returns a source with a bounded client.
func NewHTTPSource(baseURL string) *HTTPSource {
	return &HTTPSource{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *HTTPSource) Load(ctx context.Context) ([]Stop, []Tour, error) {
	var al attractionList
	if err := h.get(ctx, "/attractions", &al); err != nil {
		return nil, nil, err
	}
	var rl routeList
	if err := h.get(ctx, "/routes", &rl); err != nil {
		return nil, nil, err
	}
	stops, err := decodeAttractions(al)
	if err != nil {
		return nil, nil, err
	}
	tours, err := decodeRoutes(rl)
	if err != nil {
		return nil, nil, err
	}
	return stops, tours, nil
}

func (h *HTTPSource) get(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Detail == "" {
			apiErr.Detail = http.StatusText(resp.StatusCode)
		}
		if apiErr.StatusCode == 0 {
			apiErr.StatusCode = resp.StatusCode
		}
		return fmt.Errorf("get %s: %w", path, apiErr)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
