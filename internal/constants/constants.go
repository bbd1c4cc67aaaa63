package constants

import "time"

const (
	UserAgent         = "linewar.org"
	SessionCookieName = "sessionid"
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
)

const (
	DBMaxOpenConns    = 1
	DBMaxIdleConns    = 1
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
	DBBatchSize       = 100
)

const (
	ShutdownTimeout = 5 * time.Second
	LockFileSuffix  = ".lock"
)

const (
	DefaultSearchDepth = 1
	// safety stop for leaderboards that never return an empty page
	MaxLeaderboardPages = 200
)
