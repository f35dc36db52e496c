package calendar

import (
	"fmt"
	"sort"
	"time"
)

// Weekday numbers days the way the calendar's columns do: 1 is Monday and 7
// is Sunday. time.Weekday reports Sunday as 0, which is why it isn't used
// directly.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

const daysPerWeek = 7

func (d Weekday) IsValid() bool {
	return d >= Monday && d <= Sunday
}

// Prev returns the weekday before d, wrapping Monday to Sunday.
func (d Weekday) Prev() Weekday {
	return Weekday(floorMod(int(d)-2, daysPerWeek) + 1)
}

func (d Weekday) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("Weekday(%d)", int(d))
	}

	return time.Weekday(int(d) % daysPerWeek).String()
}

// Date is a calendar date with no time of day and no location.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate normalizes out of range months and days the same way time.Date
// does, so NewDate(2024, 3, 0) is the last day of February 2024.
func NewDate(year int, month time.Month, day int) Date {
	year, month = normalizeMonth(year, month)

	return dateFromOrdinal(daysFromCivil(year, month, day))
}

// DateOf returns the wall clock date of t in t's location.
func DateOf(t time.Time) Date {
	year, month, day := t.Date()

	return Date{Year: year, Month: month, Day: day}
}

// DaysInMonth returns the number of days in the given month, taken as day 0
// of the following month.
func DaysInMonth(year int, month time.Month) int {
	return NewDate(year, month+1, 0).Day
}

func (d Date) AddDays(n int) Date {
	return dateFromOrdinal(d.ordinal() + n)
}

func (d Date) Weekday() Weekday {
	return weekdayOfOrdinal(d.ordinal())
}

// Time returns the first instant of d in loc. That is midnight unless a
// daylight saving transition skips it, then it is the end of the gap.
func (d Date) Time(loc *time.Location) time.Time {
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
	if DateOf(t) == d {
		return t
	}

	// time.Date may resolve a skipped midnight to the previous evening.
	// Offsets change on whole minutes, the gap ends within a day.
	minutes := sort.Search(24*60, func(i int) bool {
		return DateOf(t.Add(time.Duration(i)*time.Minute)) == d
	})

	return t.Add(time.Duration(minutes) * time.Minute)
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d Date) ordinal() int {
	return daysFromCivil(d.Year, d.Month, d.Day)
}

// daysFromCivil returns the number of days since 1970-01-01 in the proleptic
// Gregorian calendar. day may fall outside of the month, it is added linearly.
// See https://howardhinnant.github.io/date_algorithms.html
func daysFromCivil(year int, month time.Month, day int) int {
	m := int(month)
	if m <= 2 {
		year--
	}

	era := floorDiv(year, 400)
	yearOfEra := year - era*400

	shifted := m - 3
	if m <= 2 {
		shifted = m + 9
	}

	dayOfYear := (153*shifted+2)/5 + day - 1
	dayOfEra := yearOfEra*365 + yearOfEra/4 - yearOfEra/100 + dayOfYear

	return era*146097 + dayOfEra - 719468
}

func dateFromOrdinal(days int) Date {
	days += 719468

	era := floorDiv(days, 146097)
	dayOfEra := days - era*146097
	yearOfEra := (dayOfEra - dayOfEra/1460 + dayOfEra/36524 - dayOfEra/146096) / 365
	dayOfYear := dayOfEra - (365*yearOfEra + yearOfEra/4 - yearOfEra/100)
	shifted := (5*dayOfYear + 2) / 153

	day := dayOfYear - (153*shifted+2)/5 + 1
	month := shifted + 3
	if shifted >= 10 {
		month = shifted - 9
	}

	year := yearOfEra + era*400
	if month <= 2 {
		year++
	}

	return Date{Year: year, Month: time.Month(month), Day: day}
}

// 1970-01-01 was a Thursday.
func weekdayOfOrdinal(days int) Weekday {
	return Weekday(floorMod(days+int(Thursday)-1, daysPerWeek) + 1)
}

func normalizeMonth(year int, month time.Month) (int, time.Month) {
	m := int(month) - 1

	return year + floorDiv(m, 12), time.Month(floorMod(m, 12) + 1)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}

	return q
}

func floorMod(a, b int) int {
	return a - floorDiv(a, b)*b
}
