package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardFetchPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/Leaderboard/Index", r.URL.Path)
		assert.Equal(t, "linewar.org", r.UserAgent())
		if r.URL.Query().Get("page") == "9" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		fmt.Fprintf(w, `<table class="rankTable"><!-- page %s --></table>`, r.URL.Query().Get("page"))
	}))
	defer srv.Close()

	cfg := newTestConfig(srv.URL)
	c := NewLeaderboardClient(cfg, NewHTTPClient(cfg), zerolog.Nop())

	html, err := c.FetchPage(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, `<table class="rankTable"><!-- page 2 --></table>`, html)

	_, err = c.FetchPage(context.Background(), 9)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}
