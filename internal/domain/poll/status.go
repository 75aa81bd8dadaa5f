package poll

import "time"

// DeriveStatus resolves a poll's effective status from the raw backend
// status string, the expiry timestamp, and the closed timestamp. An
// explicit raw status always wins; a closed timestamp beats the expiry
// comparison; only then does the expiry get compared against now. A stale
// server "open" flag therefore never resurrects an expired poll unless the
// server said "open" explicitly.
func DeriveStatus(raw string, expiresAt, closedAt *time.Time, now time.Time) Status {
	switch raw {
	case string(StatusClosed):
		return StatusClosed
	case string(StatusOpen):
		return StatusOpen
	}
	if closedAt != nil {
		return StatusClosed
	}
	if expiresAt != nil && expiresAt.Before(now) {
		return StatusClosed
	}
	return StatusOpen
}
