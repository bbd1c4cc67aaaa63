package api

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"linewar-tracker/internal/config"
	"linewar-tracker/internal/constants"
	"linewar-tracker/internal/domain"

	"github.com/rs/zerolog"
	"github.com/valyala/fasthttp"
)

// Session is a cookie-bearing client for the Steam community user search.
// Handshake sets the session id once; Search reads it afterwards. A Session is
// not safe for concurrent Handshake and Search calls.
type Session struct {
	http      *HTTPClient
	baseURL   string
	sessionID string
	logger    zerolog.Logger
}

func NewSession(cfg *config.Config, http *HTTPClient, logger zerolog.Logger) *Session {
	return &Session{
		http:    http,
		baseURL: strings.TrimRight(cfg.SteamCommunityURL, "/"),
		logger:  logger,
	}
}

// Handshake fetches the search landing page and keeps its session cookie.
// Calling it again replaces the stored token.
func (s *Session) Handshake(ctx context.Context) error {
	req := newGetRequest(s.baseURL + "/search/users")
	defer fasthttp.ReleaseRequest(req)
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if err := s.http.do(ctx, req, resp); err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch search landing page")
		return err
	}

	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey(constants.SessionCookieName)
	if !resp.Header.Cookie(cookie) || len(cookie.Value()) == 0 {
		s.logger.Error().Str("cookie", constants.SessionCookieName).Msg("session cookie missing from handshake response")
		return ErrSessionIDNotFound
	}

	s.sessionID = string(cookie.Value())
	s.logger.Info().Str("sessionid", s.sessionID).Msg("search session established")
	return nil
}

func (s *Session) HasSession() bool {
	return s.sessionID != ""
}

type userSearchResponse struct {
	Success           int             `json:"success"`
	SearchText        string          `json:"search_text"`
	SearchResultCount int             `json:"search_result_count"`
	SearchFilter      string          `json:"search_filter"`
	SearchPage        json.RawMessage `json:"search_page"`
	HTML              string          `json:"html"`
}

// Search runs one user search. page is 0-based; the provider expects 1-based.
func (s *Session) Search(ctx context.Context, text string, page int) (*domain.SearchPage, error) {
	if s.sessionID == "" {
		return nil, ErrSessionIDNotFound
	}

	req := newGetRequest(s.baseURL+"/search/SearchCommunityAjax",
		queryArg{"text", text},
		queryArg{"filter", "users"},
		queryArg{"page", strconv.Itoa(page + 1)},
		queryArg{"sessionid", s.sessionID},
	)
	defer fasthttp.ReleaseRequest(req)
	req.Header.SetCookie(constants.SessionCookieName, s.sessionID)

	result, err := doRequest[userSearchResponse](ctx, s.http, req)
	if err != nil {
		s.logger.Error().Err(err).Str("text", text).Int("page", page).Msg("user search failed")
		return nil, err
	}

	s.logger.Debug().
		Str("text", text).
		Int("page", page).
		Int("result_count", result.SearchResultCount).
		Msg("user search completed")

	return &domain.SearchPage{
		ResultCount: result.SearchResultCount,
		RawMarkup:   result.HTML,
	}, nil
}
