package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/i474232898/clima/internal/location"
	"github.com/i474232898/clima/internal/notify"
	"github.com/i474232898/clima/internal/weather"
	"github.com/i474232898/clima/internal/weather/openweather"
)

var validate = validator.New()

// locateTimeout bounds how long /here waits for the location provider.
const locateTimeout = 10 * time.Second

// Fetcher is the part of openweather.Fetcher the routes use.
type Fetcher interface {
	Do(ctx context.Context, q weather.Query) (weather.Model, error)
	Fetch(q weather.Query) *openweather.Attempt
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, fetcher Fetcher, board *notify.Board, locator location.Provider) {
	v1 := app.Group("/api/v1")

	v1.Get("/weather/current", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		m, err := fetcher.Do(c.UserContext(), q)
		if err != nil {
			return fetchError(err)
		}
		return c.JSON(m)
	})

	v1.Post("/weather/refresh", func(c *fiber.Ctx) error {
		q, err := parseWeatherQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		a := fetcher.Fetch(q)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"attempt": a.ID().String(),
			"query":   q.String(),
		})
	})

	v1.Get("/weather/here", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), locateTimeout)
		defer cancel()

		coords, err := locator.Locate(ctx)
		if err != nil {
			if errors.Is(err, location.ErrUnavailable) {
				return fiber.NewError(fiber.StatusServiceUnavailable, "no location source configured")
			}
			return fiber.NewError(fiber.StatusBadGateway, "failed to resolve location")
		}

		m, err := fetcher.Do(c.UserContext(), weather.CoordinatesQuery(coords.Lat, coords.Lon))
		if err != nil {
			return fetchError(err)
		}
		return c.JSON(fiber.Map{
			"location": coords,
			"weather":  m,
		})
	})

	v1.Get("/weather/display", func(c *fiber.Ctx) error {
		return c.JSON(board.Display())
	})

	v1.Get("/weather/history", func(c *fiber.Ctx) error {
		var req historyQuery
		req.City = c.Query("city")
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		entries, err := board.History(req.City)
		if err != nil {
			if errors.Is(err, notify.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "no weather history for requested city")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "failed to read weather history")
		}

		return c.JSON(fiber.Map{
			"city":    req.City,
			"entries": entries,
		})
	})
}

// fetchError maps a fetch failure to an HTTP error.
func fetchError(err error) error {
	var apiErr *openweather.APIError
	switch {
	case errors.Is(err, weather.ErrURLConstruction):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		return fiber.NewError(fiber.StatusNotFound, apiErr.Message)
	case errors.Is(err, weather.ErrDecode):
		return fiber.NewError(fiber.StatusBadGateway, "weather provider returned an unusable response")
	default:
		return fiber.NewError(fiber.StatusBadGateway, "failed to reach weather provider")
	}
}

var (
	errNoLocation  = errors.New("either city or lat and lon query parameters are required")
	errBothModes   = errors.New("city cannot be combined with lat and lon")
	errPartialPair = errors.New("lat and lon must be given together")
)

// weatherQuery holds the query parameters selecting a location.
// Exactly one of City or Lat/Lon must be given.
type weatherQuery struct {
	City string
	Lat  *float64 `validate:"omitempty,min=-90,max=90"`
	Lon  *float64 `validate:"omitempty,min=-180,max=180"`
}

func (w weatherQuery) check() error {
	hasCoords := w.Lat != nil || w.Lon != nil
	switch {
	case w.City == "" && !hasCoords:
		return errNoLocation
	case w.City != "" && hasCoords:
		return errBothModes
	case hasCoords && (w.Lat == nil || w.Lon == nil):
		return errPartialPair
	}
	return validate.Struct(w)
}

func (w weatherQuery) toQuery() weather.Query {
	if w.Lat != nil && w.Lon != nil {
		return weather.CoordinatesQuery(*w.Lat, *w.Lon)
	}
	return weather.CityQuery(w.City)
}

func parseWeatherQuery(c *fiber.Ctx) (weather.Query, error) {
	var q weatherQuery
	// Fiber reuses its buffers after the handler returns; Fetch outlives it.
	q.City = utils.CopyString(c.Query("city"))

	var err error
	if q.Lat, err = parseFloatParam(c, "lat"); err != nil {
		return weather.Query{}, err
	}
	if q.Lon, err = parseFloatParam(c, "lon"); err != nil {
		return weather.Query{}, err
	}

	if err := q.check(); err != nil {
		return weather.Query{}, err
	}
	return q.toQuery(), nil
}

func parseFloatParam(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("invalid " + key + ": must be decimal degrees")
	}
	return &v, nil
}

// historyQuery holds query parameters for the history endpoint.
type historyQuery struct {
	City string `validate:"required"`
}
