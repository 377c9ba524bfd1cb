package openweather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/i474232898/clima/internal/weather"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 1 << 20

// APIError is a non-2xx answer from the provider, e.g. an unknown city or a bad key.
type APIError struct {
	StatusCode int    `json:"-"`
	Cod        any    `json:"cod"` // int or string depending on the endpoint
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error (HTTP %d): %s", e.StatusCode, msg)
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{}
	// The body is informational; an undecodable one still yields the status.
	_ = json.Unmarshal(body, apiErr)
	apiErr.StatusCode = status
	return apiErr
}

// doRequest performs exactly one GET against rawURL and returns the body.
// Network failures wrap weather.ErrTransport. Non-2xx statuses wrap
// weather.ErrDecode around an *APIError, since the body is not a reading.
func doRequest(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", weather.ErrURLConstruction, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", weather.ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", weather.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %w", weather.ErrDecode, newAPIError(resp.StatusCode, body))
	}

	return body, nil
}
