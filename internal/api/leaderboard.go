package api

import (
	"context"
	"strconv"

	"linewar-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

type LeaderboardClient struct {
	http   *HTTPClient
	url    string
	logger zerolog.Logger
}

func NewLeaderboardClient(cfg *config.Config, http *HTTPClient, logger zerolog.Logger) *LeaderboardClient {
	return &LeaderboardClient{http: http, url: cfg.LeaderboardURL, logger: logger}
}

// FetchPage returns the raw HTML of one leaderboard page (1-based).
func (c *LeaderboardClient) FetchPage(ctx context.Context, page int) (string, error) {
	req := newGetRequest(c.url, queryArg{"page", strconv.Itoa(page)})
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := c.http.do(ctx, req, resp); err != nil {
		c.logger.Error().Err(err).Int("page", page).Msg("failed to fetch leaderboard page")
		return "", err
	}

	return string(resp.Body()), nil
}
