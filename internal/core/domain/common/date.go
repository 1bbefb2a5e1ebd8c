package common

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-module/carbon/v2"
)

var ErrInvalidDate = errors.New("invalid date")

// Layouts tried in order before falling back to general date/time parsing.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-01-2006",
	"02/01/2006",
}

// Inputs the general parser resolves to the wall clock or to a zero time
// without reporting an error.
var unparsableDates = map[string]struct{}{
	"now":                 {},
	"yesterday":           {},
	"tomorrow":            {},
	"0":                   {},
	"0000-00-00":          {},
	"0000-00-00 00:00:00": {},
	"00:00:00":            {},
}

// Date is a calendar date without a time component.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func DateOf(t time.Time) Date {
	year, month, day := t.Date()
	return Date{Year: year, Month: month, Day: day}
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(other Date) bool {
	return d.Time().Before(other.Time())
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// ParseDate parses a date of birth. A blank input is valid and yields an absent date.
func ParseDate(raw string) (Optional[Date], error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Optional[Date]{}, nil
	}

	if _, ok := unparsableDates[strings.ToLower(raw)]; ok {
		return Optional[Date]{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	for _, layout := range dateLayouts {
		parsed := carbon.ParseByLayout(raw, layout, carbon.UTC)
		if parsed.Error == nil {
			return NewOptional(NewDate(parsed.Year(), time.Month(parsed.Month()), parsed.Day()), true), nil
		}
	}

	parsed := carbon.Parse(raw, carbon.UTC)
	if parsed.Error != nil {
		return Optional[Date]{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}
	return NewOptional(NewDate(parsed.Year(), time.Month(parsed.Month()), parsed.Day()), true), nil
}
