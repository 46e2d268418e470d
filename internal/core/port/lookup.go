package port

import (
	"context"
	"flatbot/internal/core/domain"
)

type ListingClient interface {
	// Lookup resolves a listing page URL to its details.
	Lookup(ctx context.Context, url string) (*domain.Listing, error)
	// Search returns listings matching a free-text query.
	Search(ctx context.Context, query string) ([]domain.Listing, error)
}

type Geocoder interface {
	// Distances computes travel time from an origin address to each of the
	// configured destinations.
	Distances(ctx context.Context, origin string) ([]domain.Travel, error)
}
