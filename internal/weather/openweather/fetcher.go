package openweather

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/i474232898/clima/internal/weather"
)

const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// units is fixed: weather.Model temperatures are Celsius.
const units = "metric"

// Fetcher retrieves current weather from OpenWeatherMap and reports each
// outcome to a single observer.
type Fetcher struct {
	client   *http.Client
	apiKey   string
	baseURL  string
	observer weather.Observer
}

type Option func(*Fetcher)

// WithBaseURL points the fetcher at another endpoint, e.g. a test server.
func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = u }
}

// NewFetcher creates a Fetcher. The observer is fixed for the fetcher's
// lifetime; a nil observer means results are logged and dropped.
func NewFetcher(client *http.Client, apiKey string, observer weather.Observer, opts ...Option) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	f := &Fetcher{
		client:   client,
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		observer: observer,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// BuildURL returns the request URL for q. Errors wrap weather.ErrURLConstruction.
func (f *Fetcher) BuildURL(q weather.Query) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: parse base url: %w", weather.ErrURLConstruction, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: base url %q is not absolute", weather.ErrURLConstruction, f.baseURL)
	}

	values := u.Query()
	values.Set("appid", f.apiKey)
	values.Set("units", units)

	if coords, ok := q.Coordinates(); ok {
		if err := checkCoordinates(coords); err != nil {
			return "", err
		}
		values.Set("lat", strconv.FormatFloat(coords.Lat, 'f', -1, 64))
		values.Set("lon", strconv.FormatFloat(coords.Lon, 'f', -1, 64))
	} else if city, ok := q.City(); ok {
		city = strings.TrimSpace(city)
		if city == "" {
			return "", fmt.Errorf("%w: city name is blank", weather.ErrURLConstruction)
		}
		values.Set("q", city)
	} else {
		return "", fmt.Errorf("%w: query selects neither a city nor coordinates", weather.ErrURLConstruction)
	}

	u.RawQuery = values.Encode()
	return u.String(), nil
}

func checkCoordinates(c weather.Coordinates) error {
	for _, v := range []float64{c.Lat, c.Lon} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: coordinates %v are not finite", weather.ErrURLConstruction, c)
		}
	}
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: coordinates %v out of range", weather.ErrURLConstruction, c)
	}
	return nil
}

// Do runs one fetch synchronously: build the URL, issue a single GET and
// decode the body. It neither retries nor notifies the observer.
func (f *Fetcher) Do(ctx context.Context, q weather.Query) (weather.Model, error) {
	u, err := f.BuildURL(q)
	if err != nil {
		return weather.Model{}, err
	}
	return f.get(ctx, u)
}

func (f *Fetcher) get(ctx context.Context, u string) (weather.Model, error) {
	body, err := doRequest(ctx, f.client, u)
	if err != nil {
		return weather.Model{}, err
	}
	return Decode(body)
}

// Fetch starts a fetch in the background and returns immediately. The
// observer receives exactly one notification for the attempt. In-flight
// attempts cannot be cancelled.
func (f *Fetcher) Fetch(q weather.Query) *Attempt {
	a := newAttempt(q)
	go f.run(a)
	return a
}

func (f *Fetcher) run(a *Attempt) {
	defer close(a.done)

	u, err := f.BuildURL(a.query)
	if err != nil {
		a.finish(err)
		f.notify(a, weather.Model{}, err)
		return
	}

	a.requesting()
	log.Printf("DEBUG: fetch %s requesting weather for %q", a.id, a.query)

	m, err := f.get(context.Background(), u)
	a.finish(err)
	f.notify(a, m, err)
}

func (f *Fetcher) notify(a *Attempt, m weather.Model, err error) {
	if f.observer == nil {
		if err != nil {
			log.Printf("ERROR: fetch %s for %q failed, no observer registered: %v", a.id, a.query, err)
		} else {
			log.Printf("INFO: fetch %s for %q succeeded, no observer registered; dropping result", a.id, a.query)
		}
		return
	}
	weather.Notify(f.observer, m, err)
}
