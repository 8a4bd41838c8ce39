package config

import "time"

const (
	DefaultHTTPPort        = "8080"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 60 * time.Second
	DefaultPGMaxConns      = 5
	DefaultPGMinConns      = 1
	DefaultPGPingAttempts  = 30
	DefaultPGPingInterval  = 500 * time.Millisecond
	DefaultQuoteArchiveCap = 1000
	DefaultFakeRate        = 150.0
)
