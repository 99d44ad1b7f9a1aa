package constants

import "time"

const (
	DatabaseTimeout   = 5 * time.Second
	RequestTimeout    = 30 * time.Second
	ClientTimeout     = 10 * time.Second
	GenerationTimeout = 10 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MinPlayerScore = 1
	MaxPlayerScore = 1000
	MaxNameLength  = 50
	MinPasswordLen = 8
)
