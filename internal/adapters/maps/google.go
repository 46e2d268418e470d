// Package maps wraps the Google Distance Matrix API.
package maps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"flatbot/internal/core/domain"

	"github.com/rs/zerolog/log"
)

const defaultEndpoint = "https://maps.googleapis.com/maps/api/distancematrix/json"

type Google struct {
	endpoint     string
	apiKey       string
	destinations []string
}

// NewGoogle builds a Distance Matrix client. An empty endpoint falls back to
// the public API; tests point it at a local server instead.
func NewGoogle(endpoint, apiKey string, destinations []string) *Google {
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	return &Google{
		endpoint:     endpoint,
		apiKey:       apiKey,
		destinations: destinations,
	}
}

type distanceMatrixResponse struct {
	Status               string   `json:"status"`
	DestinationAddresses []string `json:"destination_addresses"`
	Rows                 []struct {
		Elements []struct {
			Status   string `json:"status"`
			Duration struct {
				Text string `json:"text"`
			} `json:"duration"`
			Distance struct {
				Text string `json:"text"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
}

func (g *Google) Distances(ctx context.Context, origin string) ([]domain.Travel, error) {
	query := url.Values{}
	query.Set("origins", origin)
	query.Set("destinations", strings.Join(g.destinations, "|"))
	query.Set("key", g.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating distance matrix request: %w", err)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("distance matrix request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("distance matrix request failed with status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading distance matrix response: %w", err)
	}

	var result distanceMatrixResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("error unmarshalling distance matrix response: %w", err)
	}

	if result.Status != "OK" || len(result.Rows) == 0 {
		return nil, fmt.Errorf("distance matrix returned status %q", result.Status)
	}

	log.Debug().Str("origin", origin).Msg("distance matrix response")

	elements := result.Rows[0].Elements
	travels := make([]domain.Travel, 0, len(elements))

	for i, element := range elements {
		if element.Status != "OK" {
			log.Warn().Str("status", element.Status).Int("element", i).Msg("skipping unroutable destination")
			continue
		}

		destination := g.destinations[i]
		if i < len(result.DestinationAddresses) && result.DestinationAddresses[i] != "" {
			destination = result.DestinationAddresses[i]
		}

		travels = append(travels, domain.Travel{
			Destination: destination,
			Duration:    element.Duration.Text,
			Distance:    element.Distance.Text,
		})
	}

	if len(travels) == 0 {
		return nil, errors.New("no routable destinations in distance matrix response")
	}

	return travels, nil
}
