package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Address is a reverse-geocoded location.
type Address struct {
	Street     string
	City       string
	Region     string
	Country    string
	PostalCode string
}

// Full joins the non-empty address parts into one display string.
func (a Address) Full() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Street, a.City, a.Region, a.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Geocoder resolves coordinates to a human-readable address. Best-effort:
// implementations return (nil, nil) or an error, and callers degrade to
// "Unknown location" either way.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lon float64) (*Address, error)
}

// HTTPGeocoder queries an OSM-style reverse geocoding endpoint
// (GET {base}/reverse?format=json&lat=..&lon=..).
type HTTPGeocoder struct {
	baseURL string
	http    *http.Client
}

func NewHTTPGeocoder(baseURL string) *HTTPGeocoder {
	return &HTTPGeocoder{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 5 * time.Second},
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		Road     string `json:"road"`
		City     string `json:"city"`
		Town     string `json:"town"`
		State    string `json:"state"`
		Country  string `json:"country"`
		Postcode string `json:"postcode"`
	} `json:"address"`
}

func (g *HTTPGeocoder) Reverse(ctx context.Context, lat, lon float64) (*Address, error) {
	url := fmt.Sprintf("%s/reverse?format=json&lat=%f&lon=%f", g.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocode failed: status %d", resp.StatusCode)
	}

	var rr reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rr); err != nil {
		return nil, err
	}

	city := rr.Address.City
	if city == "" {
		city = rr.Address.Town
	}

	return &Address{
		Street:     rr.Address.Road,
		City:       city,
		Region:     rr.Address.State,
		Country:    rr.Address.Country,
		PostalCode: rr.Address.Postcode,
	}, nil
}
