package scrape

import (
	"fmt"
	"iter"
	"strconv"
	"strings"

	"linewar-tracker/internal/domain"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
)

const (
	searchRowSelector      = "div.search_row"
	personaNameSelector    = "a.searchPersonaName"
	avatarLinkSelector     = "div.avatarMedium > a"
	avatarImageSelector    = "div.avatarMedium > a > img"
	leaderboardSelector    = "table.rankTable"
	leaderboardRowSelector = "tr"
)

// MarkupError is a row- or page-level failure to find an expected element.
type MarkupError struct {
	What string
	Err  error
}

func (e *MarkupError) Error() string {
	if e.Err == nil {
		return "markup parse error: " + e.What
	}
	return fmt.Sprintf("markup parse error: %s: %v", e.What, e.Err)
}

func (e *MarkupError) Unwrap() error { return e.Err }

type Extractor struct {
	logger zerolog.Logger
}

func NewExtractor(logger zerolog.Logger) *Extractor {
	return &Extractor{logger: logger}
}

// Candidates parses one page of user search markup. The returned sequence
// yields rows in page order and can be ranged over more than once; rows that
// fail to parse are logged and skipped.
func (e *Extractor) Candidates(markup string) (iter.Seq[domain.CandidateUser], error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, &MarkupError{What: "search results document", Err: err}
	}
	rows := doc.Find(searchRowSelector)

	return func(yield func(domain.CandidateUser) bool) {
		for i := range rows.Length() {
			user, err := parseCandidateRow(rows.Eq(i))
			if err != nil {
				e.logger.Error().Err(err).Int("row", i).Msg("steam search users parse error")
				continue
			}
			if !yield(user) {
				return
			}
		}
	}, nil
}

func parseCandidateRow(row *goquery.Selection) (domain.CandidateUser, error) {
	name := row.Find(personaNameSelector).First()
	if name.Length() == 0 {
		return domain.CandidateUser{}, &MarkupError{What: "user name not found"}
	}

	avatar, ok := row.Find(avatarImageSelector).First().Attr("src")
	if !ok {
		return domain.CandidateUser{}, &MarkupError{What: "user avatar not found"}
	}

	href, ok := row.Find(avatarLinkSelector).First().Attr("href")
	if !ok {
		return domain.CandidateUser{}, &MarkupError{What: "user profile link not found"}
	}

	ref, err := ParseProfileReference(href)
	if err != nil {
		return domain.CandidateUser{}, err
	}

	return domain.CandidateUser{
		DisplayName: name.Text(),
		AvatarURL:   avatar,
		ProfileRef:  ref,
	}, nil
}

// ParseProfileReference maps .../id/<handle> and .../profiles/<digits> links to
// a profile reference. Any other shape is an error.
func ParseProfileReference(link string) (domain.ProfileReference, error) {
	link = strings.TrimSuffix(link, "/")

	prefix, value, ok := cutLast(link, '/')
	if !ok || value == "" {
		return nil, &MarkupError{What: "invalid Steam user URL " + strconv.Quote(link)}
	}
	_, kind, _ := cutLast(prefix, '/')

	switch kind {
	case "id":
		return domain.HandleProfile{Handle: value}, nil
	case "profiles":
		id, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return nil, &MarkupError{What: "invalid Steam profile id " + strconv.Quote(value), Err: err}
		}
		return domain.NumericProfile{ID: id}, nil
	default:
		return nil, &MarkupError{What: "invalid Steam user URL " + strconv.Quote(link)}
	}
}

func cutLast(s string, sep byte) (before, after string, found bool) {
	i := strings.LastIndexByte(s, sep)
	if i < 0 {
		return "", s, false
	}
	return s[:i], s[i+1:], true
}
