package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Sternrassler/population-report/pkg/population"
)

// Reference API paths.
const (
	ProvincesPath = "/provinces"
	CitiesPath    = "/cities"
)

// ReferenceSource loads province and city lists from the reference API.
type ReferenceSource struct {
	client *Client
}

// NewReferenceSource creates a ReferenceSource backed by c.
func NewReferenceSource(c *Client) *ReferenceSource {
	return &ReferenceSource{client: c}
}

// FetchProvinces loads all provinces.
func (s *ReferenceSource) FetchProvinces(ctx context.Context) ([]population.Province, error) {
	var provinces []population.Province
	if err := s.getJSON(ctx, ProvincesPath, &provinces); err != nil {
		return nil, err
	}
	return provinces, nil
}

// FetchCities loads all cities.
func (s *ReferenceSource) FetchCities(ctx context.Context) ([]population.City, error) {
	var cities []population.City
	if err := s.getJSON(ctx, CitiesPath, &cities); err != nil {
		return nil, err
	}
	return cities, nil
}

func (s *ReferenceSource) getJSON(ctx context.Context, path string, v any) error {
	resp, err := s.client.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			StatusCode: resp.StatusCode,
			ErrorClass: classifyStatus(resp.StatusCode),
			Message:    fmt.Sprintf("get %s: %s", path, body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
