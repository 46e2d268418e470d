package trademe

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingPage = "https://www.trademe.co.nz/a/property/residential/listing/4242424242"

func TestLookup(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/listings/4242424242.json", r.URL.Path)

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"ListingId":   4242424242,
			"Title":       "Sunny 4 bedroom villa",
			"Address":     "12 Example St, Auckland",
			"RentPerWeek": 950,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	listing, err := client.Lookup(context.Background(), listingPage)
	require.NoError(t, err)

	assert.Equal(t, "Sunny 4 bedroom villa", listing.Title)
	assert.Equal(t, "12 Example St, Auckland", listing.Address)
	assert.Equal(t, int64(950), listing.RentPerWeek)
	assert.Equal(t, listingPage, listing.URL)
}

func TestLookupNoListingID(t *testing.T) {
	client := NewClient("http://unused")

	_, err := client.Lookup(context.Background(), "https://www.trademe.co.nz/a/property/residential/")
	require.Error(t, err)
}

func TestLookupServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Lookup(context.Background(), listingPage)
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search/property/rental.json", r.URL.Path)
		assert.Equal(t, "sunny villa", r.URL.Query().Get("search_string"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"List": []interface{}{
				map[string]interface{}{"ListingId": 1, "Title": "Villa one", "RentPerWeek": 950},
				map[string]interface{}{"ListingId": 2, "Title": "Villa two", "RentPerWeek": 700},
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL)

	listings, err := client.Search(context.Background(), "sunny villa")
	require.NoError(t, err)

	require.Len(t, listings, 2)
	assert.Equal(t, "Villa one", listings[0].Title)
	assert.Equal(t, "https://www.trademe.co.nz/a/property/residential/listing/2", listings[1].URL)
}

func TestSearchMalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not_json}"))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Search(context.Background(), "villa")
	require.Error(t, err)
}
