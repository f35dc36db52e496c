// Package calendar renders multi-month calendars as inert HTML tables.
//
// A Calendar is resolved once from a Config and never changes afterwards, so
// a single instance can be shared between goroutines. Rendering reads the
// wall clock once per call to highlight today's cell.
package calendar

import (
	"strconv"
	"time"
)

const (
	monthsPerYear = 12

	// DefaultNumberOfMonths is used when Render is asked for zero months.
	DefaultNumberOfMonths = 6
)

type Calendar struct {
	language       string
	monthNames     [monthsPerYear]string
	weekDayAbbrs   [daysPerWeek]string
	firstDayOfWeek Weekday

	location *time.Location
	now      func() time.Time
}

// New resolves config over the defaults of the selected language. A nil
// config yields an English calendar starting on Monday. Language codes that
// aren't bundled are ignored and English is kept.
func New(config *Config) (*Calendar, error) {
	if config == nil {
		config = &Config{}
	}

	c := &Calendar{
		language:       DefaultLanguage,
		firstDayOfWeek: Monday,
		location:       time.Local,
		now:            time.Now,
	}

	if _, ok := locales[config.Language]; ok {
		c.language = config.Language
	}

	locale := locales[c.language]

	c.monthNames = locale.MonthNames
	if config.MonthNames != nil {
		if len(config.MonthNames) != monthsPerYear {
			return nil, &InvalidLengthError{Property: keyMonthNames, Want: monthsPerYear, Got: len(config.MonthNames)}
		}
		copy(c.monthNames[:], config.MonthNames)
	}

	c.weekDayAbbrs = locale.WeekDayAbbrs3
	if config.WeekDayAbbrs != nil {
		if len(config.WeekDayAbbrs) != daysPerWeek {
			return nil, &InvalidLengthError{Property: keyWeekDayAbbrs, Want: daysPerWeek, Got: len(config.WeekDayAbbrs)}
		}
		copy(c.weekDayAbbrs[:], config.WeekDayAbbrs)
	}

	if config.FirstDayOfWeek != nil {
		day := Weekday(*config.FirstDayOfWeek)
		if !day.IsValid() {
			return nil, &InvalidRangeError{Property: keyFirstDayOfWeek, Value: strconv.Itoa(*config.FirstDayOfWeek)}
		}

		c.firstDayOfWeek = day
		copy(c.weekDayAbbrs[:], rotateLeft(c.weekDayAbbrs[:], int(day)-1))
	}

	return c, nil
}

func (c *Calendar) Language() string {
	return c.language
}

func (c *Calendar) FirstDayOfWeek() Weekday {
	return c.firstDayOfWeek
}

// MonthNames returns January through December.
func (c *Calendar) MonthNames() []string {
	return append([]string(nil), c.monthNames[:]...)
}

// WeekDayAbbrs returns the column headers, starting on the first day of week.
func (c *Calendar) WeekDayAbbrs() []string {
	return append([]string(nil), c.weekDayAbbrs[:]...)
}

func (c *Calendar) MonthName(month time.Month) string {
	_, month = normalizeMonth(0, month)

	return c.monthNames[month-1]
}

// rotateLeft returns a copy of values moved k positions to the left, the
// front elements wrapping around to the back.
func rotateLeft[T any](values []T, k int) []T {
	rotated := make([]T, len(values))
	if len(values) == 0 {
		return rotated
	}

	k = floorMod(k, len(values))
	n := copy(rotated, values[k:])
	copy(rotated[n:], values[:k])

	return rotated
}
