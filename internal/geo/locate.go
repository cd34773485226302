package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// DefaultLocateTimeout bounds how long a listing waits for the visitor's
// position before falling back to an unranked list.
const DefaultLocateTimeout = 5 * time.Second

var ErrPositionUnavailable = errors.New("position unavailable")

// Locator resolves a visitor hint (an IP address, typically) to a position.
type Locator interface {
	Locate(ctx context.Context, hint string) (Point, error)
}

// Acquire races the locator against a timeout. Exactly one outcome wins:
// either the position arrives in time, or the timer fires and any late
// locator result is discarded. Cancelling ctx aborts the wait early.
func Acquire(ctx context.Context, loc Locator, hint string, timeout time.Duration) (Point, bool) {
	if loc == nil {
		return Point{}, false
	}
	if timeout <= 0 {
		timeout = DefaultLocateTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	// Buffered so a late locator callback never blocks after the timer
	// path has already won and this function has returned.
	result := make(chan Point, 1)
	go func() {
		p, err := loc.Locate(ctx, hint)
		if err != nil {
			return
		}
		result <- p
	}()

	select {
	case p := <-result:
		return p, true
	case <-ctx.Done():
		return Point{}, false
	}
}

// HTTPLocator asks an external position provider over HTTP. The provider is
// fronted by a circuit breaker so a flapping upstream degrades listings to
// unranked instead of stalling every request for the full timeout.
type HTTPLocator struct {
	client  *http.Client
	baseURL string
	breaker *gobreaker.CircuitBreaker[Point]
}

func NewHTTPLocator(client *http.Client, baseURL string) *HTTPLocator {
	if client == nil {
		client = &http.Client{Timeout: DefaultLocateTimeout}
	}
	return &HTTPLocator{
		client:  client,
		baseURL: baseURL,
		breaker: gobreaker.NewCircuitBreaker[Point](gobreaker.Settings{
			Name: "position-provider",
		}),
	}
}

func (l *HTTPLocator) Locate(ctx context.Context, hint string) (Point, error) {
	return l.breaker.Execute(func() (Point, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.baseURL+"/"+hint, nil)
		if err != nil {
			return Point{}, fmt.Errorf("build locate request: %w", err)
		}

		resp, err := l.client.Do(req)
		if err != nil {
			return Point{}, fmt.Errorf("locate request failed: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return Point{}, fmt.Errorf("position provider returned %d: %w", resp.StatusCode, ErrPositionUnavailable)
		}

		var payload struct {
			Lat *float64 `json:"lat"`
			Lng *float64 `json:"lon"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return Point{}, fmt.Errorf("decode position payload: %w", err)
		}
		if payload.Lat == nil || payload.Lng == nil {
			return Point{}, ErrPositionUnavailable
		}

		return Point{Lat: *payload.Lat, Lng: *payload.Lng}, nil
	})
}
