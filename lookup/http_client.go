package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"golang.org/x/oauth2/clientcredentials"
)

// HTTPConfig holds upstream lookup gateway configuration
type HTTPConfig struct {
	BaseURL string

	// Optional OAuth2 client-credentials auth against the upstream
	// gateway. When ClientID is empty, requests go out unauthenticated.
	TokenURL     string
	ClientID     string
	ClientSecret string
}

// HTTPClient invokes lookup services over an upstream HTTP gateway:
// POST {base}/{service} with a JSON query body.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NewHTTPClient creates a lookup client for the given upstream gateway
func NewHTTPClient(cfg HTTPConfig) (*HTTPClient, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("lookup base URL is required")
	}

	client := http.DefaultClient
	if cfg.ClientID != "" {
		creds := clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     cfg.TokenURL,
		}
		client = creds.Client(context.Background())
	}

	return &HTTPClient{
		baseURL: cfg.BaseURL,
		client:  client,
	}, nil
}

type lookupRequest struct {
	Query string `json:"query"`
}

// Invoke calls the named lookup service and returns its raw JSON result
func (c *HTTPClient) Invoke(ctx context.Context, service, query string) (json.RawMessage, error) {
	body, err := json.Marshal(lookupRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrLookupFailed, err)
	}

	endpoint := c.baseURL + "/" + url.PathEscape(service)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrLookupFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLookupFailed, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %v", ErrLookupFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: service %s returned status %d", ErrLookupFailed, service, resp.StatusCode)
	}

	if !json.Valid(payload) {
		return nil, fmt.Errorf("%w: service %s returned invalid JSON", ErrLookupFailed, service)
	}

	return json.RawMessage(payload), nil
}
