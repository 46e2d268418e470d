// Package trademe wraps the Trademe listing API.
package trademe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"

	"flatbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const listingPageBase = "https://www.trademe.co.nz/a/property/residential/"

var listingIDPattern = regexp.MustCompile(`listing/(\d+)`)

type Client struct {
	baseURL string
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

type listingResponse struct {
	ListingID   int64  `json:"ListingId"`
	Title       string `json:"Title"`
	Address     string `json:"Address"`
	RentPerWeek int64  `json:"RentPerWeek"`
}

type searchResponse struct {
	List []listingResponse `json:"List"`
}

// Lookup resolves a listing page link to the listing's details via the API.
func (c *Client) Lookup(ctx context.Context, pageURL string) (*domain.Listing, error) {
	match := listingIDPattern.FindStringSubmatch(pageURL)
	if match == nil {
		return nil, fmt.Errorf("no listing id in url %q", pageURL)
	}

	body, err := c.get(ctx, fmt.Sprintf("%s/v1/listings/%s.json", c.baseURL, match[1]))
	if err != nil {
		return nil, err
	}

	var result listingResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error unmarshalling listing response: %w", err)
	}

	log.Debug().Int64("listingId", result.ListingID).Msg("listing response")

	return convertListing(result), nil
}

func (c *Client) Search(ctx context.Context, query string) ([]domain.Listing, error) {
	endpoint := fmt.Sprintf("%s/v1/search/property/rental.json?search_string=%s",
		c.baseURL, url.QueryEscape(query))

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error unmarshalling search response: %w", err)
	}

	listings := make([]domain.Listing, len(result.List))
	for i, entry := range result.List {
		listings[i] = *convertListing(entry)
	}

	return listings, nil
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating trademe request: %w", err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("trademe request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("trademe request failed with status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading trademe response: %w", err)
	}

	return body, nil
}

func convertListing(entry listingResponse) *domain.Listing {
	return &domain.Listing{
		Title:       entry.Title,
		Address:     entry.Address,
		RentPerWeek: entry.RentPerWeek,
		URL:         fmt.Sprintf("%slisting/%d", listingPageBase, entry.ListingID),
	}
}
