package fallback

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"hotel-scout/scraper"
	"hotel-scout/utils"
)

func newTestLogger() *utils.Logger {
	var buf bytes.Buffer
	return utils.NewLoggerTo(&buf, &buf)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	httpClient := scraper.NewHTTPClient(scraper.ClientOptions{MaxRetries: 0})
	return NewClient(httpClient, scraper.NewHeaderRotator(), Options{
		URL:      srv.URL,
		Size:     12,
		Timeout:  timeout,
		Currency: "USD",
	}, newTestLogger())
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestClientMapsArrayPayload(t *testing.T) {
	c := newTestClient(t, jsonHandler(`[
		{"name": "Desert Rose", "rating": 8.6, "price": "45.50"},
		{"name": "", "hotel_name": "Wadi Lodge", "rating": "7", "price": 30},
		{"name": null, "rating": 9},
		{"hotel_name": "Loose Types", "rating": true, "price": {"amount": 10}}
	]`), time.Second)

	listings, err := c.Fetch(context.Background(), "Muscat")
	require.NoError(t, err)
	require.Len(t, listings, 3)

	require.Equal(t, "Desert Rose", listings[0].Name)
	require.Equal(t, 8.6, listings[0].RatingOr(0))
	require.Equal(t, 45.5, listings[0].PriceValue())
	require.Equal(t, "USD", listings[0].CurrencyCode())

	require.Equal(t, "Wadi Lodge", listings[1].Name)
	require.Equal(t, 30.0, listings[1].PriceValue())

	require.Equal(t, "Loose Types", listings[2].Name)
	require.Nil(t, listings[2].Rating)
	require.Equal(t, 10.0, listings[2].PriceValue())
	require.Equal(t, "USD", listings[2].CurrencyCode())
}

func TestClientPromotesSingleObject(t *testing.T) {
	c := newTestClient(t, jsonHandler(`{"name": "Solo Stay", "price": 99}`), time.Second)

	listings, err := c.Fetch(context.Background(), "Muscat")
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.Equal(t, "Solo Stay", listings[0].Name)
}

func TestClientEmptyArrayStaysEmpty(t *testing.T) {
	c := newTestClient(t, jsonHandler(`[]`), time.Second)

	listings, err := c.Fetch(context.Background(), "Muscat")
	require.NoError(t, err)
	require.Empty(t, listings)
}

func TestClientFallsBackToSynthetic(t *testing.T) {
	want := NewSyntheticGenerator("USD").Generate("Muscat")

	tests := []struct {
		name    string
		handler http.HandlerFunc
		timeout time.Duration
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}, time.Second},
		{"malformed json", jsonHandler(`{"name": `), time.Second},
		{"scalar payload", jsonHandler(`"hotels"`), time.Second},
		{"array of scalars", jsonHandler(`[1, 2, 3]`), time.Second},
		{"timeout", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		}, 50 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, tt.handler, tt.timeout)
			listings, err := c.Fetch(context.Background(), "Muscat")
			require.NoError(t, err)
			require.Equal(t, want, listings)
		})
	}
}

func TestRecordText(t *testing.T) {
	r := record{
		"s":     "OMR 12",
		"n":     7.5,
		"obj":   map[string]any{"amount": 10.0},
		"arr":   []any{3.0, 4.0},
		"flag":  true,
		"null":  nil,
		"empty": "",
	}

	tests := []struct {
		key  string
		want string
		ok   bool
	}{
		{"s", "OMR 12", true},
		{"n", "7.5", true},
		{"obj", `{"amount":10}`, true},
		{"arr", "[3,4]", true},
		{"flag", "true", true},
		{"null", "", false},
		{"empty", "", false},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := r.text(tt.key)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDecodePayloadShapes(t *testing.T) {
	p, err := decodePayload([]byte(`[{"name":"a"},{"name":"b"}]`))
	require.NoError(t, err)
	require.IsType(t, recordsPayload{}, p)
	require.Len(t, p.(recordsPayload).records, 2)

	p, err = decodePayload([]byte(`42`))
	require.NoError(t, err)
	require.IsType(t, unrecognizedPayload{}, p)

	_, err = decodePayload([]byte(`not json`))
	require.Error(t, err)
}
