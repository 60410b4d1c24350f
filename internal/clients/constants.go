package clients

import "time"

const (
	MAX_RETRIES     = 3
	INITIAL_BACKOFF = 500 * time.Millisecond
)
