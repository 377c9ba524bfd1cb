package notify

import (
	"log"

	"github.com/i474232898/clima/internal/weather"
)

// Logger is an Observer that writes every notification to the standard logger.
type Logger struct{}

func (Logger) OnWeatherUpdated(m weather.Model) {
	log.Printf("INFO: weather updated: %s %s°C (%s, code %d)",
		m.CityName(), m.TemperatureString(), m.ConditionName(), m.ConditionID())
}

func (Logger) OnWeatherError(err error) {
	log.Printf("ERROR: weather fetch failed: %v", err)
}

// Tee forwards each notification to every observer in order.
type Tee []weather.Observer

func (t Tee) OnWeatherUpdated(m weather.Model) {
	for _, o := range t {
		o.OnWeatherUpdated(m)
	}
}

func (t Tee) OnWeatherError(err error) {
	for _, o := range t {
		o.OnWeatherError(err)
	}
}
