package detail

import (
	"time"

	"coinScope/internal/model"
)

// Status is the fetch state of one cache entry.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// DefaultErrorMessage is used when a failed fetch carries no server message.
const DefaultErrorMessage = "Failed to fetch coin data"

// Entry wraps a possibly stale detail record with its fetch status.
//
// Succeeded entries always carry Data and no Err. Failed entries always carry
// Err and keep whatever Data an earlier fetch stored. Loading entries keep
// the previous Data so it can be shown while the refresh is in flight.
type Entry struct {
	Data        *model.CoinDetail
	Status      Status
	Err         string
	LastUpdated time.Time
}

// Fresh reports whether the entry holds data younger than maxAge at now.
// A zero maxAge means data never goes stale.
func (e Entry) Fresh(now time.Time, maxAge time.Duration) bool {
	if e.Data == nil {
		return false
	}
	if maxAge <= 0 {
		return true
	}
	return now.Sub(e.LastUpdated) < maxAge
}
