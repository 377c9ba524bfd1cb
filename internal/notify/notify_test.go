package notify

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"

	"github.com/i474232898/clima/internal/weather"
)

func fixedClock(start time.Time) (func() time.Time, func(time.Duration)) {
	now := start
	return func() time.Time { return now }, func(d time.Duration) { now = now.Add(d) }
}

func TestBoardKeepsLastDisplayOnFailure(t *testing.T) {
	b := NewBoard(10, 0)

	if _, err := b.Current(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty board, got %v", err)
	}

	b.OnWeatherUpdated(weather.NewModel(800, "London", 18.3))
	b.OnWeatherError(fmt.Errorf("%w: dial tcp: timeout", weather.ErrTransport))

	cur, err := b.Current()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cur.Model.CityName() != "London" || cur.Model.Temperature() != 18.3 {
		t.Errorf("failure must not change the display, got %v", cur.Model)
	}

	d := b.Display()
	if d.Current == nil || d.LastError == "" || d.FailedAt == nil {
		t.Errorf("expected current reading and last error, got %+v", d)
	}

	b.OnWeatherUpdated(weather.NewModel(500, "Paris", 9))
	if d := b.Display(); d.LastError != "" || d.Current.Model.CityName() != "Paris" {
		t.Errorf("expected a new success to clear the error, got %+v", d)
	}
}

func TestBoardHistoryRetention(t *testing.T) {
	b := NewBoard(2, time.Hour)
	now, advance := fixedClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	b.now = now

	for i := 0; i < 3; i++ {
		b.OnWeatherUpdated(weather.NewModel(800, "Oslo", float64(i)))
		advance(time.Minute)
	}

	history, err := b.History("oslo")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(history) != 2 || history[0].Model.Temperature() != 1 || history[1].Model.Temperature() != 2 {
		t.Fatalf("expected the two newest entries, got %+v", history)
	}

	advance(2 * time.Hour)
	b.OnWeatherUpdated(weather.NewModel(800, "Oslo", 3))
	history, _ = b.History("Oslo")
	if len(history) != 1 || history[0].Model.Temperature() != 3 {
		t.Fatalf("expected old entries to age out, got %+v", history)
	}

	if _, err := b.History("Madrid"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown city, got %v", err)
	}
}

func TestTeeFansOut(t *testing.T) {
	var updated, failed int
	count := weather.ObserverFuncs{
		Updated: func(weather.Model) { updated++ },
		Failed:  func(error) { failed++ },
	}
	tee := Tee{count, Logger{}, count}

	tee.OnWeatherUpdated(weather.NewModel(800, "Rome", 20))
	tee.OnWeatherError(errors.New("boom"))

	if updated != 2 || failed != 2 {
		t.Errorf("expected 2 updates and 2 failures, got %d and %d", updated, failed)
	}
}

func TestPublisherSendsSuccessfulReadings(t *testing.T) {
	producer := mocks.NewSyncProducer(t, sarama.NewConfig())
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var ev struct {
			Weather struct {
				CityName  string `json:"cityName"`
				Condition string `json:"condition"`
			} `json:"weather"`
			Provider string `json:"provider"`
		}
		if err := json.Unmarshal(val, &ev); err != nil {
			return err
		}
		if ev.Weather.CityName != "Tokyo" || ev.Weather.Condition != "rain" || ev.Provider != "openweathermap" {
			return fmt.Errorf("unexpected event %+v", ev)
		}
		return nil
	})

	p := NewPublisher(producer, "weather_data")
	p.OnWeatherUpdated(weather.NewModel(501, "Tokyo", 16))
	// Errors are not published; the mock fails on unexpected sends.
	p.OnWeatherError(errors.New("boom"))

	if err := p.Close(); err != nil {
		t.Fatalf("unexpected error closing producer: %v", err)
	}
}
