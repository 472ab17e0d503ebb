package transit

import (
	"errors"
	"time"
)

var (
	// ErrAlreadyRecorded is returned if an arrival is recorded twice for the same stop.
	ErrAlreadyRecorded = errors.New("arrival already recorded")
)

// ArrivalRecord holds the observed arrival time for each visited stop, keyed by sequence.
// It only grows; an arrival is never overwritten once set.
type ArrivalRecord struct {
	times map[int]time.Time
}

// NewArrivalRecord creates an empty arrival record.
func NewArrivalRecord() *ArrivalRecord {
	return &ArrivalRecord{
		times: map[int]time.Time{},
	}
}

// Record stores the arrival time for the specified stop sequence.
func (r *ArrivalRecord) Record(sequence int, at time.Time) error {
	if _, ok := r.times[sequence]; ok {
		return ErrAlreadyRecorded
	}
	r.times[sequence] = at
	return nil
}

// At returns the arrival time for the specified stop sequence, if one was recorded.
func (r *ArrivalRecord) At(sequence int) (time.Time, bool) {
	at, ok := r.times[sequence]
	return at, ok
}

// Len returns the number of stops visited so far.
func (r *ArrivalRecord) Len() int {
	return len(r.times)
}
