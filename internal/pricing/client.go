package pricing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"instrumatch-affiliate/config"
	"instrumatch-affiliate/internal/storelinks"
)

// Candidate is one store offer as ranked by the remote pricing service.
// The service owns ranking; callers pick by position or by slug, never
// re-rank.
type Candidate struct {
	StoreSlug    string `json:"storeSlug"`
	AffiliateURL string `json:"affiliateUrl,omitempty"`
	WebsiteURL   string `json:"websiteUrl,omitempty"`
	OriginalURL  string `json:"originalUrl,omitempty"`
}

var ErrDisabled = errors.New("pricing service disabled: set PRICING_BASE_URL")

// Client talks to the remote pricing/affiliate service.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.Pricing.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.Pricing.Timeout},
	}
}

type affiliateStoresRequest struct {
	ProductID  int64          `json:"productId"`
	StoreLinks storelinks.Set `json:"storeLinks"`
}

type affiliateStoresResponse struct {
	AffiliateStores []Candidate `json:"affiliateStores"`
}

// FetchProductAffiliateStores asks the pricing service to resolve the
// collected raw store links into tracked affiliate URLs. The returned
// slice preserves the service's ranking order. Read-only and idempotent.
func (c *Client) FetchProductAffiliateStores(ctx context.Context, productID int64, links storelinks.Set) ([]Candidate, error) {
	if c.baseURL == "" {
		return nil, ErrDisabled
	}

	body, err := json.Marshal(affiliateStoresRequest{ProductID: productID, StoreLinks: links})
	if err != nil {
		return nil, fmt.Errorf("marshal affiliate stores request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1/products/%d/affiliate-stores", c.baseURL, productID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build affiliate stores request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch affiliate stores: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch affiliate stores: unexpected status %d", resp.StatusCode)
	}

	var decoded affiliateStoresResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode affiliate stores response: %w", err)
	}

	return decoded.AffiliateStores, nil
}
