package api

import (
	"context"
	"strconv"
	"strings"

	"linewar-tracker/internal/config"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// VanityResolver turns custom profile handles into numeric Steam ids through
// the public Web API.
type VanityResolver struct {
	http    *HTTPClient
	baseURL string
	apiKey  string
	logger  zerolog.Logger
}

func NewVanityResolver(cfg *config.Config, http *HTTPClient, logger zerolog.Logger) (*VanityResolver, error) {
	if cfg.SteamAPIKey == "" {
		return nil, ErrAPIKeyNotSet
	}
	return &VanityResolver{
		http:    http,
		baseURL: strings.TrimRight(cfg.SteamAPIURL, "/"),
		apiKey:  cfg.SteamAPIKey,
		logger:  logger,
	}, nil
}

type resolvedID struct {
	SteamID string `json:"steamid"`
	Success int    `json:"success"`
	Message string `json:"message"`
}

type resolveVanityResponse struct {
	Response resolvedID `json:"response"`
}

func (r *VanityResolver) ResolveHandle(ctx context.Context, handle string) (uint64, error) {
	req := newGetRequest(r.baseURL+"/ISteamUser/ResolveVanityURL/v0001",
		queryArg{"key", r.apiKey},
		queryArg{"vanityurl", handle},
	)
	defer fasthttp.ReleaseRequest(req)

	result, err := doRequest[resolveVanityResponse](ctx, r.http, req)
	if err != nil {
		r.logger.Error().Err(err).Str("handle", handle).Msg("failed to resolve vanity url")
		return 0, err
	}

	if result.Response.Success == 0 {
		r.logger.Debug().Str("handle", handle).Str("message", result.Response.Message).Msg("vanity url not found")
		return 0, ErrUserNotFound
	}

	id, err := strconv.ParseUint(result.Response.SteamID, 10, 64)
	if err != nil {
		return 0, &ParseError{What: "steamid " + strconv.Quote(result.Response.SteamID), Err: err}
	}

	r.logger.Debug().Str("handle", handle).Uint64("steam_id", id).Msg("vanity url resolved")
	return id, nil
}
