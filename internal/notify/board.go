package notify

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/clima/internal/weather"
)

var (
	// ErrNotFound is returned when nothing has been displayed yet.
	ErrNotFound = errors.New("no weather displayed")
)

// Entry is a model as it was shown on the board.
type Entry struct {
	Model      weather.Model `json:"weather"`
	ReceivedAt time.Time     `json:"receivedAt"` // always UTC
}

// Display is the board's current state: the last successful reading and the
// most recent failure, if any happened after it.
type Display struct {
	Current   *Entry     `json:"current,omitempty"`
	LastError string     `json:"lastError,omitempty"`
	FailedAt  *time.Time `json:"failedAt,omitempty"`
}

// Board is an Observer holding what a screen would show. Failures never
// replace displayed values; they are only recorded.
type Board struct {
	mu sync.RWMutex

	current  *Entry
	lastErr  error
	failedAt time.Time
	byCity   map[string][]Entry // key: lower-cased city name
	now      func() time.Time

	// retention configuration
	maxHistory int           // max entries per city
	maxAge     time.Duration // optional max age for entries
}

// NewBoard creates an empty Board. maxHistory <= 0 and maxAge <= 0 disable
// the respective retention limit.
func NewBoard(maxHistory int, maxAge time.Duration) *Board {
	return &Board{
		byCity:     make(map[string][]Entry),
		now:        func() time.Time { return time.Now().UTC() },
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

func cityKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// OnWeatherUpdated displays m and appends it to its city's history.
func (b *Board) OnWeatherUpdated(m weather.Model) {
	b.mu.Lock()
	defer b.mu.Unlock()

	entry := Entry{Model: m, ReceivedAt: b.now()}
	b.current = &entry
	b.lastErr = nil

	key := cityKey(m.CityName())
	history := append(b.byCity[key], entry)

	// Enforce retention by count.
	if b.maxHistory > 0 && len(history) > b.maxHistory {
		history = history[len(history)-b.maxHistory:]
	}

	// Enforce retention by age.
	if b.maxAge > 0 {
		cutoff := entry.ReceivedAt.Add(-b.maxAge)
		i := 0
		for ; i < len(history); i++ {
			if !history[i].ReceivedAt.Before(cutoff) {
				break
			}
		}
		history = history[i:]
	}

	b.byCity[key] = history
}

// OnWeatherError records err without touching the displayed reading.
func (b *Board) OnWeatherError(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.lastErr = err
	b.failedAt = b.now()
}

// Current returns the reading on display.
func (b *Board) Current() (Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.current == nil {
		return Entry{}, ErrNotFound
	}
	return *b.current, nil
}

// Display returns the full board state.
func (b *Board) Display() Display {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var d Display
	if b.current != nil {
		cur := *b.current
		d.Current = &cur
	}
	if b.lastErr != nil {
		failedAt := b.failedAt
		d.LastError = b.lastErr.Error()
		d.FailedAt = &failedAt
	}
	return d
}

// History returns the retained readings for city, oldest first.
func (b *Board) History(city string) ([]Entry, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	history := b.byCity[cityKey(city)]
	if len(history) == 0 {
		return nil, ErrNotFound
	}
	return append([]Entry(nil), history...), nil
}
