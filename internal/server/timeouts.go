package server

import "time"

const (
	readTimeout = 10 * time.Second
	// CSV exports of large tables can take a while to stream.
	writeTimeout = 30 * time.Second
	idleTimeout  = 60 * time.Second
)

// shutdownTimeout remains a var for tests to override.
var shutdownTimeout = 10 * time.Second
