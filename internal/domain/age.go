package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDateFormat is returned when a birth date is not YYYY-MM-DD.
var ErrInvalidDateFormat = errors.New("date must be formatted YYYY-MM-DD")

// CalendarDate is a civil date with no time of day or zone. Month and Day are
// not range checked: callers doing rollover arithmetic may pass Month 0 or 13.
type CalendarDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// ParseCivilDate splits s on "-" into year, month and day. Only integer
// parsing is checked; month and day ranges are left to the arithmetic.
func ParseCivilDate(s string) (CalendarDate, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	var n [3]int
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
		}
		n[i] = v
	}
	return CalendarDate{Year: n[0], Month: n[1], Day: n[2]}, nil
}

// CivilDateOf returns the UTC calendar date of t.
func CivilDateOf(t time.Time) CalendarDate {
	y, m, d := t.UTC().Date()
	return CalendarDate{Year: y, Month: int(m), Day: d}
}

// Time returns midnight UTC on d, normalized the way time.Date normalizes.
func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats d as YYYY-MM-DD.
func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// LastDayOfMonth returns the length of month in year. Month 0 is December of
// the previous year and month 13 is January of the next.
func LastDayOfMonth(year, month int) int {
	return time.Date(year, time.Month(month+1), 0, 0, 0, 0, 0, time.UTC).Day()
}

// DaysBetween returns b - a in whole civil days, using only the UTC date of
// each instant.
func DaysBetween(a, b time.Time) int {
	const secondsPerDay = 24 * 60 * 60
	da := CivilDateOf(a).Time().Unix()
	db := CivilDateOf(b).Time().Unix()
	return int((db - da) / secondsPerDay)
}

// Elapsed is an age expressed as whole months plus remaining days.
type Elapsed struct {
	Months int `json:"months"`
	Days   int `json:"days"`
}

// ElapsedAge subtracts birth from ref with day borrowing. When the reference
// day is smaller than the birth day a month is borrowed and the length of the
// month before ref is added; the birth day is not clamped to that month.
func ElapsedAge(birth, ref CalendarDate) Elapsed {
	months := (ref.Year-birth.Year)*12 + (ref.Month - birth.Month)
	var days int
	if ref.Day >= birth.Day {
		days = ref.Day - birth.Day
	} else {
		months--
		days = LastDayOfMonth(ref.Year, ref.Month-1) - birth.Day + ref.Day
	}
	if months < 0 || (months == 0 && days < 0) {
		return Elapsed{}
	}
	return Elapsed{Months: months, Days: days}
}

// NextMonthiversary returns the first monthly anniversary strictly after ref.
// The birth day is clamped to the length of the candidate month.
func NextMonthiversary(birth, ref CalendarDate) CalendarDate {
	year, month := ref.Year, ref.Month
	cand := clampedDate(year, month, birth.Day)
	if !cand.Time().After(ref.Time()) {
		if month == 12 {
			month = 1
			year++
		} else {
			month++
		}
		cand = clampedDate(year, month, birth.Day)
	}
	return cand
}

// NextBirthday returns the first annual birthday strictly after ref. A Feb 29
// birth day falls on Feb 28 in common years.
func NextBirthday(birth, ref CalendarDate) CalendarDate {
	cand := clampedDate(ref.Year, birth.Month, birth.Day)
	if !cand.Time().After(ref.Time()) {
		cand = clampedDate(ref.Year+1, birth.Month, birth.Day)
	}
	return cand
}

func clampedDate(year, month, day int) CalendarDate {
	if last := LastDayOfMonth(year, month); day > last {
		day = last
	}
	return CalendarDate{Year: year, Month: month, Day: day}
}

// Upcoming holds the whole days remaining until the next recurring dates.
type Upcoming struct {
	DaysUntilMonthly int `json:"daysUntilMonthly"`
	DaysUntilAnnual  int `json:"daysUntilAnnual"`
}

// ComputeElapsed parses birthISO and returns the elapsed age at ref.
// A zero ref means the current time.
func ComputeElapsed(birthISO string, ref time.Time) (Elapsed, error) {
	birth, err := ParseCivilDate(birthISO)
	if err != nil {
		return Elapsed{}, err
	}
	return ElapsedAge(birth, CivilDateOf(orNow(ref))), nil
}

// ComputeUpcoming parses birthISO and returns the days from ref until the next
// monthiversary and birthday. A zero ref means the current time.
func ComputeUpcoming(birthISO string, ref time.Time) (Upcoming, error) {
	birth, err := ParseCivilDate(birthISO)
	if err != nil {
		return Upcoming{}, err
	}
	today := CivilDateOf(orNow(ref))
	return Upcoming{
		DaysUntilMonthly: DaysBetween(today.Time(), NextMonthiversary(birth, today).Time()),
		DaysUntilAnnual:  DaysBetween(today.Time(), NextBirthday(birth, today).Time()),
	}, nil
}

// Stats is the extended age breakdown shown on the age card.
type Stats struct {
	TotalDays        int     `json:"totalDays"`
	TotalWeeks       int     `json:"totalWeeks"`
	TotalHours       int     `json:"totalHours"`
	TotalMinutes     int     `json:"totalMinutes"`
	Months           int     `json:"months"`
	Days             int     `json:"days"`
	BirthdayProgress float64 `json:"birthdayProgress"`
}

// ComputeStats returns totals since birth and the percentage of the way from
// the last birthday to the next one. Birthdays here are not clamped, so a
// Feb 29 birthday lands on Mar 1 in common years.
func ComputeStats(birthISO string, ref time.Time) (Stats, error) {
	birth, err := ParseCivilDate(birthISO)
	if err != nil {
		return Stats{}, err
	}
	today := CivilDateOf(orNow(ref))
	totalDays := DaysBetween(birth.Time(), today.Time())
	elapsed := ElapsedAge(birth, today)

	next := time.Date(today.Year, time.Month(birth.Month), birth.Day, 0, 0, 0, 0, time.UTC)
	if !next.After(today.Time()) {
		next = time.Date(today.Year+1, time.Month(birth.Month), birth.Day, 0, 0, 0, 0, time.UTC)
	}
	last := time.Date(next.Year()-1, next.Month(), next.Day(), 0, 0, 0, 0, time.UTC)

	progress := 0.0
	if span := DaysBetween(last, next); span > 0 {
		progress = float64(DaysBetween(last, today.Time())) / float64(span) * 100
	}
	if progress > 100 {
		progress = 100
	}

	return Stats{
		TotalDays:        totalDays,
		TotalWeeks:       floorDiv(totalDays, 7),
		TotalHours:       totalDays * 24,
		TotalMinutes:     totalDays * 24 * 60,
		Months:           elapsed.Months,
		Days:             elapsed.Days,
		BirthdayProgress: progress,
	}, nil
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func orNow(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
