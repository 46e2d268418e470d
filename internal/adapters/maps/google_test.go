package maps

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGoogleDefaultsEndpoint(t *testing.T) {
	geocoder := NewGoogle("", "test-key", []string{"work"})
	assert.Equal(t, defaultEndpoint, geocoder.endpoint)

	geocoder = NewGoogle("http://localhost:9999", "test-key", []string{"work"})
	assert.Equal(t, "http://localhost:9999", geocoder.endpoint)
}

func TestGoogleDistances(t *testing.T) {
	tests := []struct {
		name           string
		responseBody   interface{}
		responseStatus int
		wantLegs       int
		wantErr        bool
	}{
		{
			name: "success",
			responseBody: map[string]interface{}{
				"status":                "OK",
				"destination_addresses": []string{"Downtown, Auckland", "University, Auckland"},
				"rows": []interface{}{
					map[string]interface{}{
						"elements": []interface{}{
							map[string]interface{}{
								"status":   "OK",
								"duration": map[string]interface{}{"text": "24 mins"},
								"distance": map[string]interface{}{"text": "18.2 km"},
							},
							map[string]interface{}{
								"status":   "OK",
								"duration": map[string]interface{}{"text": "31 mins"},
								"distance": map[string]interface{}{"text": "22.5 km"},
							},
						},
					},
				},
			},
			responseStatus: http.StatusOK,
			wantLegs:       2,
			wantErr:        false,
		},
		{
			name: "unroutable destination skipped",
			responseBody: map[string]interface{}{
				"status":                "OK",
				"destination_addresses": []string{"Downtown, Auckland", "Nowhere"},
				"rows": []interface{}{
					map[string]interface{}{
						"elements": []interface{}{
							map[string]interface{}{
								"status":   "OK",
								"duration": map[string]interface{}{"text": "24 mins"},
								"distance": map[string]interface{}{"text": "18.2 km"},
							},
							map[string]interface{}{"status": "NOT_FOUND"},
						},
					},
				},
			},
			responseStatus: http.StatusOK,
			wantLegs:       1,
			wantErr:        false,
		},
		{
			name: "api denied",
			responseBody: map[string]interface{}{
				"status": "REQUEST_DENIED",
				"rows":   []interface{}{},
			},
			responseStatus: http.StatusOK,
			wantLegs:       0,
			wantErr:        true,
		},
		{
			name:           "server error",
			responseBody:   "unavailable",
			responseStatus: http.StatusInternalServerError,
			wantLegs:       0,
			wantErr:        true,
		},
		{
			name:           "malformed JSON",
			responseBody:   "{not_json}",
			responseStatus: http.StatusOK,
			wantLegs:       0,
			wantErr:        true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "12 Example St", r.URL.Query().Get("origins"))
				assert.Equal(t, "Downtown|University", r.URL.Query().Get("destinations"))
				assert.Equal(t, "test-key", r.URL.Query().Get("key"))

				w.WriteHeader(tc.responseStatus)
				if s, ok := tc.responseBody.(string); ok {
					_, _ = w.Write([]byte(s))
					return
				}
				_ = json.NewEncoder(w).Encode(tc.responseBody)
			}))
			defer server.Close()

			g := NewGoogle(server.URL, "test-key", []string{"Downtown", "University"})

			travels, err := g.Distances(context.Background(), "12 Example St")
			if tc.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Len(t, travels, tc.wantLegs)
			assert.Equal(t, "Downtown, Auckland", travels[0].Destination)
			assert.Equal(t, "24 mins", travels[0].Duration)
			assert.Equal(t, "18.2 km", travels[0].Distance)
		})
	}
}
