package utils

import (
	"fmt"
	"time"
)

// Retry runs fn up to maxAttempts times with exponential backoff
// between failures (2s, 4s, 8s, ...). It stops at the first success
// and returns the last error once attempts are exhausted.
//
// Scan pipelines never retry — a fresh dashboard refresh is their
// retry mechanism. This is for startup-time dependencies like the
// database connection.
func Retry(maxAttempts int, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < maxAttempts {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			Warn("Attempt %d/%d failed: %v — retrying in %v", attempt, maxAttempts, lastErr, wait)
			time.Sleep(wait)
		}
	}

	return fmt.Errorf("all %d attempts failed — last error: %w", maxAttempts, lastErr)
}
