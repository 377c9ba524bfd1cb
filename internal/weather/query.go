package weather

import (
	"strconv"
	"strings"
)

// Coordinates is a geographic position in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// Query selects the place to fetch weather for: a city name or a coordinate pair.
// Use CityQuery or CoordinatesQuery; the zero value selects nothing.
type Query struct {
	city   string
	coords *Coordinates
}

func CityQuery(name string) Query {
	return Query{city: name}
}

func CoordinatesQuery(lat, lon float64) Query {
	return Query{coords: &Coordinates{Lat: lat, Lon: lon}}
}

// City returns the city name when q is in city-name mode.
func (q Query) City() (string, bool) {
	if q.coords != nil {
		return "", false
	}
	return q.city, q.city != ""
}

// Coordinates returns the position when q is in coordinate mode.
func (q Query) Coordinates() (Coordinates, bool) {
	if q.coords == nil {
		return Coordinates{}, false
	}
	return *q.coords, true
}

// IsZero reports whether no variant was selected.
func (q Query) IsZero() bool {
	return q.coords == nil && q.city == ""
}

func (q Query) String() string {
	if q.coords != nil {
		return q.coords.String()
	}
	return q.city
}

// ParseQuery reads a location as written in configuration: "lat,lon" selects
// coordinate mode, anything else is a city name (e.g. "London,GB").
func ParseQuery(s string) Query {
	s = strings.TrimSpace(s)
	if parts := strings.Split(s, ","); len(parts) == 2 {
		lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if errLat == nil && errLon == nil {
			return CoordinatesQuery(lat, lon)
		}
	}
	return CityQuery(s)
}
