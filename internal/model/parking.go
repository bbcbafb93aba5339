package model

import (
	"fmt"
	"time"
)

type ParkingStatus string

const (
	ParkingActive   ParkingStatus = "active"
	ParkingInactive ParkingStatus = "inactive"
)

// ParkingTokenRecord is the persisted form of an issued parking token.
// Timestamp is milliseconds since epoch, matching the stored JSON
// {"token": ..., "timestamp": ...}.
type ParkingTokenRecord struct {
	Token     string `json:"token"`
	Timestamp int64  `json:"timestamp"`
}

func NewParkingTokenRecord(token string, now time.Time) ParkingTokenRecord {
	return ParkingTokenRecord{Token: token, Timestamp: now.UnixMilli()}
}

func (r ParkingTokenRecord) IssuedAt() time.Time {
	return time.UnixMilli(r.Timestamp)
}

// ElapsedSeconds is whole seconds since issuance, clamped to zero when the
// stored timestamp is ahead of the clock.
func (r ParkingTokenRecord) ElapsedSeconds(now time.Time) int64 {
	elapsed := now.UnixMilli() - r.Timestamp
	if elapsed < 0 {
		return 0
	}
	return elapsed / 1000
}

// Status is a pure view of elapsed time; nothing happens on expiry beyond
// the flip to inactive, and the record itself survives until removed.
func (r ParkingTokenRecord) Status(now time.Time) ParkingStatus {
	if float64(r.ElapsedSeconds(now)) < ParkingTokenTTLSeconds {
		return ParkingActive
	}
	return ParkingInactive
}

const ParkingTokenTTLSeconds = 1800

// FormatElapsed renders whole seconds as mm:ss without wrapping minutes,
// so 1801 seconds reads "30:01".
func FormatElapsed(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
