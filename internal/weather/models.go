package weather

import (
	"encoding/json"
	"fmt"
)

// Condition is the presentation icon identifier derived from a provider condition code.
type Condition string

const (
	ConditionStorm   Condition = "storm"
	ConditionDrizzle Condition = "drizzle"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionFog     Condition = "fog"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
)

// Symbol returns the system symbol name used to draw the condition.
func (c Condition) Symbol() string {
	switch c {
	case ConditionStorm:
		return "cloud.bolt.rain"
	case ConditionDrizzle:
		return "cloud.drizzle"
	case ConditionRain:
		return "cloud.rain"
	case ConditionSnow:
		return "cloud.snow"
	case ConditionFog:
		return "cloud.fog"
	case ConditionClear:
		return "sun.max"
	default:
		return "cloud"
	}
}

// Model is the display-ready view of one current-weather reading.
// It is immutable once built; derived values are computed on demand.
type Model struct {
	conditionID int
	cityName    string
	temperature float64 // Celsius
}

// NewModel builds a Model. The condition code is not validated.
func NewModel(conditionID int, cityName string, temperature float64) Model {
	return Model{
		conditionID: conditionID,
		cityName:    cityName,
		temperature: temperature,
	}
}

func (m Model) ConditionID() int     { return m.conditionID }
func (m Model) CityName() string     { return m.cityName }
func (m Model) Temperature() float64 { return m.temperature }

// TemperatureString formats the temperature with one decimal place.
func (m Model) TemperatureString() string {
	return fmt.Sprintf("%.1f", m.temperature)
}

// ConditionName returns the icon identifier for the model's condition code.
func (m Model) ConditionName() Condition {
	return Classify(m.conditionID)
}

func (m Model) String() string {
	return fmt.Sprintf("%s %s°C %s", m.cityName, m.TemperatureString(), m.ConditionName())
}

// modelView is the JSON shape of a Model, derived fields included.
type modelView struct {
	CityName          string    `json:"cityName"`
	Temperature       float64   `json:"temperatureC"`
	TemperatureString string    `json:"temperature"`
	ConditionID       int       `json:"conditionId"`
	Condition         Condition `json:"condition"`
	Symbol            string    `json:"symbol"`
}

func (m Model) MarshalJSON() ([]byte, error) {
	cond := m.ConditionName()
	return json.Marshal(modelView{
		CityName:          m.cityName,
		Temperature:       m.temperature,
		TemperatureString: m.TemperatureString(),
		ConditionID:       m.conditionID,
		Condition:         cond,
		Symbol:            cond.Symbol(),
	})
}
