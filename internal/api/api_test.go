package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"linewar-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(baseURL string) *config.Config {
	return &config.Config{
		SteamAPIKey:       "test-key",
		SteamCommunityURL: baseURL,
		SteamAPIURL:       baseURL,
		LeaderboardURL:    baseURL + "/Leaderboard/Index",
		SearchDepth:       1,
		HTTPTimeout:       2 * time.Second,
	}
}

func newTestSession(t *testing.T, handler http.Handler) *Session {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := newTestConfig(srv.URL)
	return NewSession(cfg, NewHTTPClient(cfg), zerolog.Nop())
}

func steamCommunityMux(t *testing.T, searchJSON string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/search/users", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc123", Path: "/"})
		fmt.Fprint(w, "<html></html>")
	})
	mux.HandleFunc("/search/SearchCommunityAjax", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Orbnet", q.Get("text"))
		assert.Equal(t, "users", q.Get("filter"))
		assert.Equal(t, "abc123", q.Get("sessionid"))
		cookie, err := r.Cookie("sessionid")
		if assert.NoError(t, err) {
			assert.Equal(t, "abc123", cookie.Value)
		}
		assert.Equal(t, "linewar.org", r.UserAgent())
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, searchJSON, q.Get("page"))
	})
	return mux
}

func TestSessionHandshakeAndSearch(t *testing.T) {
	const body = `{"success":1,"search_text":"Orbnet","search_result_count":%s,"search_filter":"users","search_page":1,"html":"<div class=\"search_row\"></div>"}`
	s := newTestSession(t, steamCommunityMux(t, body))

	require.False(t, s.HasSession())
	require.NoError(t, s.Handshake(context.Background()))
	assert.True(t, s.HasSession())

	// the fake echoes the 1-based page as the result count
	page, err := s.Search(context.Background(), "Orbnet", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, page.ResultCount)
	assert.Equal(t, `<div class="search_row"></div>`, page.RawMarkup)

	page, err = s.Search(context.Background(), "Orbnet", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, page.ResultCount)
}

func TestSessionSearchBeforeHandshake(t *testing.T) {
	var calls atomic.Int32
	s := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := s.Search(context.Background(), "Orbnet", 0)
	assert.ErrorIs(t, err, ErrSessionIDNotFound)
	assert.Zero(t, calls.Load())
}

func TestSessionHandshakeWithoutCookie(t *testing.T) {
	s := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "browserid", Value: "1"})
	}))

	err := s.Handshake(context.Background())
	assert.ErrorIs(t, err, ErrSessionIDNotFound)
	assert.False(t, s.HasSession())
}

func TestSessionHandshakeStatusError(t *testing.T) {
	s := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	err := s.Handshake(context.Background())
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
}

func TestSessionSearchErrors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "rate limited",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			check: func(t *testing.T, err error) {
				var statusErr *StatusError
				require.ErrorAs(t, err, &statusErr)
				assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprint(w, "<html>login</html>")
			},
			check: func(t *testing.T, err error) {
				var parseErr *ParseError
				assert.ErrorAs(t, err, &parseErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mux := http.NewServeMux()
			mux.HandleFunc("/search/users", func(w http.ResponseWriter, r *http.Request) {
				http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc123"})
			})
			mux.HandleFunc("/search/SearchCommunityAjax", tt.handler)

			s := newTestSession(t, mux)
			require.NoError(t, s.Handshake(context.Background()))

			_, err := s.Search(context.Background(), "Orbnet", 0)
			tt.check(t, err)
		})
	}
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	cfg := newTestConfig(srv.URL)
	srv.Close()

	s := NewSession(cfg, NewHTTPClient(cfg), zerolog.Nop())
	err := s.Handshake(context.Background())

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.NotContains(t, transportErr.Error(), "?")
}

func TestCancelledContextSkipsRequest(t *testing.T) {
	var calls atomic.Int32
	s := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Handshake(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Zero(t, calls.Load())
}
