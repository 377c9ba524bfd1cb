// Package location supplies device-style coordinates for coordinate-mode fetches.
package location

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kelvins/geocoder"

	"github.com/i474232898/clima/internal/weather"
)

// ErrUnavailable is returned when no location source is configured.
var ErrUnavailable = errors.New("location unavailable")

// Provider resolves the current position.
type Provider interface {
	Locate(ctx context.Context) (weather.Coordinates, error)
}

// Static always reports the same coordinates.
type Static weather.Coordinates

func (s Static) Locate(context.Context) (weather.Coordinates, error) {
	return weather.Coordinates(s), nil
}

// Unavailable is the Provider used when nothing is configured.
type Unavailable struct{}

func (Unavailable) Locate(context.Context) (weather.Coordinates, error) {
	return weather.Coordinates{}, ErrUnavailable
}

// geocoder keeps its API key and endpoint in package variables.
var geocoderMu sync.Mutex

// Geocoder resolves a city/country address through the Google geocoding API.
type Geocoder struct {
	apiKey  string
	apiURL  string
	address geocoder.Address
}

func NewGeocoder(apiKey, city, country string) *Geocoder {
	return &Geocoder{
		apiKey: apiKey,
		apiURL: geocoder.ApiUrl,
		address: geocoder.Address{
			City:    city,
			Country: country,
		},
	}
}

// Locate geocodes the configured address. The lookup itself cannot be
// cancelled; ctx only bounds how long the caller waits for it.
func (g *Geocoder) Locate(ctx context.Context) (weather.Coordinates, error) {
	type result struct {
		loc geocoder.Location
		err error
	}
	ch := make(chan result, 1)

	go func() {
		geocoderMu.Lock()
		defer geocoderMu.Unlock()

		geocoder.ApiKey = g.apiKey
		geocoder.ApiUrl = g.apiURL
		loc, err := geocoder.Geocoding(g.address)
		ch <- result{loc: loc, err: err}
	}()

	select {
	case <-ctx.Done():
		return weather.Coordinates{}, ctx.Err()
	case r := <-ch:
		if r.err != nil {
			return weather.Coordinates{}, fmt.Errorf("geocode %s,%s: %w", g.address.City, g.address.Country, r.err)
		}
		return weather.Coordinates{Lat: r.loc.Latitude, Lon: r.loc.Longitude}, nil
	}
}

// Request resolves p in the background and hands the result to exactly one
// of found or failed.
func Request(ctx context.Context, p Provider, found func(weather.Coordinates), failed func(error)) {
	go func() {
		coords, err := p.Locate(ctx)
		if err != nil {
			failed(err)
			return
		}
		found(coords)
	}()
}
