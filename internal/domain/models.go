package domain

import (
	"strconv"
	"time"
)

// UnresolvedPlayer is a leaderboard identity (name + avatar fingerprint) with no
// recorded association yet.
type UnresolvedPlayer struct {
	DisplayName       string
	AvatarFingerprint string

	// storage keys, opaque to the resolution pipeline
	NamesID      int64
	AvatarHashID int64
}

type SearchPage struct {
	ResultCount int
	RawMarkup   string
}

type CandidateUser struct {
	DisplayName string
	AvatarURL   string
	ProfileRef  ProfileReference
}

// ProfileReference is either a NumericProfile or a HandleProfile. The unexported
// method closes the set so type switches over it stay exhaustive.
type ProfileReference interface {
	profileReference()
	String() string
}

type NumericProfile struct {
	ID uint64
}

func (NumericProfile) profileReference() {}

func (p NumericProfile) String() string {
	return "profiles/" + strconv.FormatUint(p.ID, 10)
}

// HandleProfile is a vanity handle that still needs a lookup.
type HandleProfile struct {
	Handle string
}

func (HandleProfile) profileReference() {}

func (p HandleProfile) String() string {
	return "id/" + p.Handle
}

type LeaderboardEntry struct {
	Rank    int
	Avatar  string
	Name    string
	Rating  float64
	Wins    int
	Losses  int
	SteamID *uint64
}

type LeaderboardScrape struct {
	ID string // nanoid
	At time.Time
}

type Leaderboard struct {
	Scrape  LeaderboardScrape
	Entries []LeaderboardEntry
}
