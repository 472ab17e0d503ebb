package gtfs

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrInvalidTime is returned if a time field is not in H:MM:SS form.
	ErrInvalidTime = errors.New("invalid time field supplied")
)

// CSVInt is an int value that tolerates empty CSV fields
type CSVInt int

// UnmarshalCSV takes the string representation from a CSV file and attempts to convert it to an int.
func (i *CSVInt) UnmarshalCSV(csv string) error {
	csv = strings.TrimSpace(csv)
	if len(csv) < 1 {
		*i = 0
		return nil
	}

	val, err := strconv.ParseInt(csv, 10, 32)
	if err != nil {
		return err
	}

	*i = CSVInt(val)
	return nil
}

// CSVTime is a GTFS service time.
// Hours may exceed 23 for trips running past midnight of the service day.
type CSVTime struct {
	Hour   int
	Minute int
	Second int

	set bool
}

// IsSet returns whether a value was present in the CSV field.
func (t *CSVTime) IsSet() bool {
	return t.set
}

// UnmarshalCSV parses a H:MM:SS value. Empty values are allowed for non-timepoint stops.
func (t *CSVTime) UnmarshalCSV(csv string) error {
	csv = strings.TrimSpace(csv)
	if len(csv) < 1 {
		*t = CSVTime{}
		return nil
	}

	parts := strings.Split(csv, ":")
	if len(parts) != 3 {
		return fmt.Errorf("%w: %q", ErrInvalidTime, csv)
	}

	var vals [3]int
	for idx, part := range parts {
		val, err := strconv.Atoi(part)
		if err != nil || val < 0 {
			return fmt.Errorf("%w: %q", ErrInvalidTime, csv)
		}
		vals[idx] = val
	}
	if vals[1] > 59 || vals[2] > 59 {
		return fmt.Errorf("%w: %q", ErrInvalidTime, csv)
	}

	*t = CSVTime{
		Hour:   vals[0],
		Minute: vals[1],
		Second: vals[2],
		set:    true,
	}
	return nil
}
