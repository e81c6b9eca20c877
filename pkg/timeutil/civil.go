package timeutil

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Date is a civil calendar date with no zone attached. Comparisons between
// dates are plain struct comparisons.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a date in DateLayout. Malformed input is an error, never
// a zero date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf extracts the civil date of an instant in the given zone.
func DateOf(t time.Time, loc *time.Location) Date {
	t = t.In(loc)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Weekday of a civil date is zone independent.
func (d Date) Weekday() time.Weekday {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).Weekday()
}

func (d Date) AddDays(n int) Date {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d Date) IsZero() bool {
	return d == Date{}
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid date literal %s", b)
	}
	parsed, err := ParseDate(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Keeping interval arithmetic in this space means daylight-saving shifts and
// storage-zone differences can never move a slot's apparent boundaries.
type TimeOfDay int

// ParseClock parses an "HH:mm" wall-clock time.
func ParseClock(s string) (TimeOfDay, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", s, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("invalid time literal %s", b)
	}
	parsed, err := ParseClock(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// LoadZone resolves an IANA zone name. Unknown zones are an error; no
// fallback zone is guessed.
func LoadZone(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("empty timezone")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", name, err)
	}
	return loc, nil
}

// CivilFromInstant converts a UTC instant to the provider's civil day and
// wall-clock minute.
func CivilFromInstant(t time.Time, loc *time.Location) (Date, TimeOfDay) {
	t = t.In(loc)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()},
		TimeOfDay(t.Hour()*60 + t.Minute())
}

// InstantFromCivil converts a civil day and wall-clock minute in the
// provider's zone back to an instant.
func InstantFromCivil(d Date, tod TimeOfDay, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, int(tod)/60, int(tod)%60, 0, 0, loc)
}

// WeekStart returns the Monday of the ISO week containing d.
func WeekStart(d Date) Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// WeekDates lists the seven dates of the week starting at weekStart.
func WeekDates(weekStart Date) []Date {
	dates := make([]Date, 7)
	for i := range dates {
		dates[i] = weekStart.AddDays(i)
	}
	return dates
}

// ParseMonth parses a "2006-01" month reference.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: %w", s, err)
	}
	return t.Year(), t.Month(), nil
}

// MonthDates lists every date of the given month.
func MonthDates(year int, month time.Month) []Date {
	first := Date{Year: year, Month: month, Day: 1}
	var dates []Date
	for d := first; d.Month == month; d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}
