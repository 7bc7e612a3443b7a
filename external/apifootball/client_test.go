package apifootball

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/football-stats/internal/domain/feed"
	"github.com/riskibarqy/football-stats/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, timeout time.Duration) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(ClientConfig{
		BaseURL: srv.URL,
		APIKey:  "secret-key",
		Timeout: timeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	})
}

func TestClient_TeamsDecodesEnvelope(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("x-apisports-key") != "secret-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/teams" || r.URL.Query().Get("league") != "39" || r.URL.Query().Get("season") != "2023" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"get":"teams","errors":[],"results":1,"paging":{"current":1,"total":1},
			"response":[{"team":{"id":33,"name":"Manchester United","code":"MUN","country":"England","founded":1878,"national":false,"logo":"33.png"},
			"venue":{"id":556,"name":"Old Trafford","city":"Manchester","capacity":76212}}]}`))
	}, time.Second)

	page, err := client.Teams(context.Background(), feed.Query{League: 39, Season: 2023})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, int64(33), page.Entries[0].Team.ID)
	assert.True(t, page.IsLast())
	require.NotNil(t, page.Entries[0].Venue.Capacity)
	assert.Equal(t, 76212, *page.Entries[0].Venue.Capacity)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`not here`))
	}, time.Second)

	_, err := client.Fixtures(context.Background(), feed.Query{ID: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnexpectedStatus))

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.Equal(t, "/fixtures", fetchErr.Resource)
}

func TestClient_MalformedResponse(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":        `<html>oops</html>`,
		"provider errors": `{"errors":{"token":"Error/Missing application key."},"response":[]}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}, time.Second)

			_, err := client.Countries(context.Background(), feed.Query{})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedResponse))
			assert.NotContains(t, err.Error(), "secret-key")
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		_, _ = w.Write([]byte(`{"response":[]}`))
	}, 50*time.Millisecond)

	_, err := client.Timezones(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestClient_BreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, time.Second)

	for i := 0; i < 2; i++ {
		_, err := client.Venues(context.Background(), feed.Query{ID: 556})
		require.True(t, errors.Is(err, ErrUnexpectedStatus))
	}

	_, err := client.Venues(context.Background(), feed.Query{ID: 556})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
	assert.Equal(t, int32(2), hits.Load())
	assert.Equal(t, "open", client.BreakerState())
}

func TestClient_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, time.Second)

	for i := 0; i < 4; i++ {
		_, err := client.Coaches(context.Background(), feed.Query{ID: 1})
		require.True(t, errors.Is(err, ErrUnexpectedStatus))
	}
	assert.Equal(t, "closed", client.BreakerState())
}

func TestSanitizeSensitiveText(t *testing.T) {
	t.Parallel()

	client := NewClient(ClientConfig{APIKey: "abc123"})
	got := client.sanitizeSensitiveText("dial failed x-apisports-key: abc123 for host")
	assert.NotContains(t, got, "abc123")
}
