package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestModelDerivedFields(t *testing.T) {
	m := NewModel(500, "Paris", 12.345)

	if m.CityName() != "Paris" {
		t.Errorf("expected Paris, got %s", m.CityName())
	}
	if m.TemperatureString() != "12.3" {
		t.Errorf("expected 12.3, got %s", m.TemperatureString())
	}
	if m.ConditionName() != ConditionRain {
		t.Errorf("expected rain, got %s", m.ConditionName())
	}
}

func TestModelJSONIncludesDerivedFields(t *testing.T) {
	m := NewModel(800, "London", 18.3)

	raw, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["cityName"] != "London" {
		t.Errorf("expected cityName London, got %v", got["cityName"])
	}
	if got["temperature"] != "18.3" {
		t.Errorf("expected temperature 18.3, got %v", got["temperature"])
	}
	if got["condition"] != "clear" || got["symbol"] != "sun.max" {
		t.Errorf("unexpected condition fields: %v / %v", got["condition"], got["symbol"])
	}
}

func TestQueryVariants(t *testing.T) {
	city := CityQuery("Oslo")
	if name, ok := city.City(); !ok || name != "Oslo" {
		t.Errorf("expected city Oslo, got %q (%v)", name, ok)
	}
	if _, ok := city.Coordinates(); ok {
		t.Error("city query must not carry coordinates")
	}

	coords := CoordinatesQuery(51.5, -0.12)
	if _, ok := coords.City(); ok {
		t.Error("coordinate query must not carry a city")
	}
	if c, ok := coords.Coordinates(); !ok || c.Lat != 51.5 || c.Lon != -0.12 {
		t.Errorf("unexpected coordinates %+v (%v)", c, ok)
	}

	var zero Query
	if !zero.IsZero() {
		t.Error("zero query should report IsZero")
	}
}

func TestParseQuery(t *testing.T) {
	if c, ok := ParseQuery(" 51.5, -0.12 ").Coordinates(); !ok || c.Lat != 51.5 || c.Lon != -0.12 {
		t.Errorf("expected coordinates, got %+v (%v)", c, ok)
	}
	if name, ok := ParseQuery("London,GB").City(); !ok || name != "London,GB" {
		t.Errorf("expected city London,GB, got %q (%v)", name, ok)
	}
}

func TestStateFor(t *testing.T) {
	cases := []struct {
		err  error
		want State
	}{
		{nil, StateSucceeded},
		{fmt.Errorf("%w: boom", ErrTransport), StateFailedTransport},
		{ErrEmptyConditions, StateFailedDecode},
		{fmt.Errorf("%w: bad", ErrURLConstruction), StateFailedURL},
		{errors.New("anything else"), StateFailedTransport},
	}
	for _, tc := range cases {
		if got := StateFor(tc.err); got != tc.want {
			t.Errorf("StateFor(%v) = %s, want %s", tc.err, got, tc.want)
		}
		if !tc.want.Terminal() {
			t.Errorf("%s should be terminal", tc.want)
		}
	}
	if StateRequesting.Terminal() {
		t.Error("requesting must not be terminal")
	}
}
