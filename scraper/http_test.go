package scraper

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotel-scout/utils"
)

func TestHeadersUsePool(t *testing.T) {
	h := NewHeaderRotator()
	for i := 0; i < 20; i++ {
		headers := h.Headers()
		require.Contains(t, UserAgents, headers["User-Agent"])
		require.Equal(t, "en-US,en;q=0.9", headers["Accept-Language"])
		require.Equal(t, "keep-alive", headers["Connection"])
		require.NotEmpty(t, headers["Accept"])
	}
}

func TestClientRetriesTransientStatus(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	var buf bytes.Buffer
	client := NewHTTPClient(ClientOptions{
		MaxRetries:     4,
		RetryBaseDelay: time.Millisecond,
		Logger:         utils.NewLoggerTo(&buf, &buf),
	})

	res, err := client.R().SetContext(context.Background()).Get(srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode())
	require.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClientDoesNotRetryNotFound(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewHTTPClient(ClientOptions{MaxRetries: 3, RetryBaseDelay: time.Millisecond})

	res, err := client.R().Get(srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusNotFound, res.StatusCode())
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClientRetriesDroppedConnection(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			conn, _, err := w.(http.Hijacker).Hijack()
			if err == nil {
				_ = conn.Close()
			}
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	client := NewHTTPClient(ClientOptions{MaxRetries: 2, RetryBaseDelay: time.Millisecond})

	res, err := client.R().Get(srv.URL)
	require.NoError(t, err)
	require.Equal(t, "ok", res.String())
	require.GreaterOrEqual(t, atomic.LoadInt32(&calls), int32(2))
}

func TestClientDoesNotRetryCancelledRequest(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		<-r.Context().Done()
	}))
	defer srv.Close()

	client := NewHTTPClient(ClientOptions{MaxRetries: 3, RetryBaseDelay: time.Millisecond})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.R().SetContext(ctx).Get(srv.URL)
	require.Error(t, err)
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
