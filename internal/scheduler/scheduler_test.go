package scheduler

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/clima/internal/weather"
	"github.com/i474232898/clima/internal/weather/openweather"
)

func TestTickFetchesEveryQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("q")
		if name == "" {
			name = "Somewhere"
		}
		fmt.Fprintf(w, `{"name":%q,"main":{"temp":10},"weather":[{"id":801}]}`, name)
	}))
	defer srv.Close()

	var (
		mu     sync.Mutex
		cities []string
	)
	obs := weather.ObserverFuncs{
		Updated: func(m weather.Model) {
			mu.Lock()
			defer mu.Unlock()
			cities = append(cities, m.CityName())
		},
		Failed: func(err error) { t.Errorf("unexpected failure: %v", err) },
	}
	f := openweather.NewFetcher(srv.Client(), "key", obs, openweather.WithBaseURL(srv.URL))

	queries := []weather.Query{weather.CityQuery("Berlin"), weather.CoordinatesQuery(35.68, 139.69)}
	s := New(queries, time.Hour, f)

	for _, a := range s.tick() {
		select {
		case <-a.Done():
		case <-time.After(5 * time.Second):
			t.Fatalf("attempt %s did not finish", a.ID())
		}
	}

	mu.Lock()
	defer mu.Unlock()
	if len(cities) != 2 {
		t.Fatalf("expected 2 notifications, got %v", cities)
	}
}

func TestStartWithoutQueriesIsNoop(t *testing.T) {
	s := New(nil, time.Minute, nil)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Stop()
}

func TestStartRunsImmediatelyAndRepeats(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		fmt.Fprint(w, `{"name":"Berlin","main":{"temp":10},"weather":[{"id":801}]}`)
	}))
	defer srv.Close()

	f := openweather.NewFetcher(srv.Client(), "key", nil, openweather.WithBaseURL(srv.URL))
	s := New([]weather.Query{weather.CityQuery("Berlin")}, time.Second, f)
	if err := s.Start(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Stop()

	waitForHits(t, &hits, 1, 500*time.Millisecond)
	waitForHits(t, &hits, 2, 3*time.Second)
}

func waitForHits(t *testing.T, hits *int32, want int32, within time.Duration) {
	t.Helper()
	deadline := time.Now().Add(within)
	for atomic.LoadInt32(hits) < want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d fetches within %s, got %d", want, within, atomic.LoadInt32(hits))
		}
		time.Sleep(10 * time.Millisecond)
	}
}
