package models

import (
	"bytes"
	"fmt"
	"time"

	"github.com/turtacn/cadetops/pkg/constants"
)

// Date is a calendar date without a time of day.
// It serializes as "2006-01-02" and also accepts RFC 3339 timestamps on input.
type Date struct {
	time.Time
}

// NewDate truncates t to midnight UTC of its calendar day.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a "2006-01-02" or RFC 3339 value.
func ParseDate(s string) (Date, error) {
	if t, err := time.Parse(constants.DateLayout, s); err == nil {
		return NewDate(t), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return Date{}, fmt.Errorf("date %q is neither %s nor RFC 3339", s, constants.DateLayout)
	}
	return NewDate(t), nil
}

// String formats the date as "2006-01-02".
func (d Date) String() string {
	return d.Time.Format(constants.DateLayout)
}

// DaysUntil returns the whole number of days from d to other (negative when other is earlier).
func (d Date) DaysUntil(other Date) int {
	return int(other.Time.Sub(d.Time).Hours() / 24)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("date must be a JSON string, got %s", data)
	}
	parsed, err := ParseDate(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
