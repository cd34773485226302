package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLocator struct {
	point Point
	err   error
	delay time.Duration
}

func (s stubLocator) Locate(ctx context.Context, _ string) (Point, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Point{}, ctx.Err()
		}
	}
	return s.point, s.err
}

func TestAcquire_Success(t *testing.T) {
	p, ok := Acquire(context.Background(), stubLocator{point: jakarta}, "1.2.3.4", time.Second)
	require.True(t, ok)
	assert.Equal(t, jakarta, p)
}

func TestAcquire_TimeoutWinsOverSlowLocator(t *testing.T) {
	loc := stubLocator{point: jakarta, delay: 500 * time.Millisecond}

	start := time.Now()
	_, ok := Acquire(context.Background(), loc, "1.2.3.4", 20*time.Millisecond)
	assert.False(t, ok)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestAcquire_LocatorError(t *testing.T) {
	_, ok := Acquire(context.Background(), stubLocator{err: ErrPositionUnavailable}, "x", 50*time.Millisecond)
	assert.False(t, ok)
}

func TestAcquire_NilLocator(t *testing.T) {
	_, ok := Acquire(context.Background(), nil, "x", time.Second)
	assert.False(t, ok)
}

func TestAcquire_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := Acquire(ctx, stubLocator{point: jakarta, delay: time.Second}, "x", time.Second)
	assert.False(t, ok)
}

func TestHTTPLocator_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"lat": -6.2088, "lon": 106.8456}`))
	}))
	defer srv.Close()

	loc := NewHTTPLocator(srv.Client(), srv.URL)
	p, err := loc.Locate(context.Background(), "8.8.8.8")
	require.NoError(t, err)
	assert.InDelta(t, -6.2088, p.Lat, 1e-9)
	assert.InDelta(t, 106.8456, p.Lng, 1e-9)
}

func TestHTTPLocator_MissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "fail"}`))
	}))
	defer srv.Close()

	loc := NewHTTPLocator(srv.Client(), srv.URL)
	_, err := loc.Locate(context.Background(), "8.8.8.8")
	assert.ErrorIs(t, err, ErrPositionUnavailable)
}

func TestHTTPLocator_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	loc := NewHTTPLocator(srv.Client(), srv.URL)
	_, err := loc.Locate(context.Background(), "8.8.8.8")
	assert.Error(t, err)
}
