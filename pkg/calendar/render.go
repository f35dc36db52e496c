package calendar

import (
	"bytes"
	"html/template"
	"log/slog"
	"time"
)

// Cell is one day of a rendered month.
type Cell struct {
	Date Date
	// Unix seconds of the date's local midnight.
	Timestamp  int64
	Today      bool
	OtherMonth bool
}

// Month is the structured form of one month table.
type Month struct {
	Year     int
	Month    time.Month
	Name     string
	Weekdays []string
	Weeks    [][]Cell
}

func (m Month) Number() int {
	return int(m.Month)
}

// HTML renders the month on its own, without the surrounding container.
func (m Month) HTML() template.HTML {
	return executeTemplate(monthTemplate, m)
}

type Result struct {
	HTML   template.HTML
	Months []Month
	// Prev is the first day of the month that starts a range of the same
	// length ending right before this one. Next is the first day after it.
	Prev time.Time
	Next time.Time
}

func (r *Result) PrevTimestamp() int64 {
	return r.Prev.UnixMilli()
}

func (r *Result) NextTimestamp() int64 {
	return r.Next.UnixMilli()
}

// Render lays out numberOfMonths consecutive months starting with the month
// of reference. Zero or negative numberOfMonths renders DefaultNumberOfMonths
// and a zero reference means now.
func (c *Calendar) Render(numberOfMonths int, reference time.Time) Result {
	now := c.now()
	today := DateOf(now.In(c.location))

	if numberOfMonths <= 0 {
		numberOfMonths = DefaultNumberOfMonths
	}

	if reference.IsZero() {
		reference = now
	}

	start := DateOf(reference.In(c.location))
	year, month := start.Year, start.Month

	months := make([]Month, 0, numberOfMonths)
	for range numberOfMonths {
		months = append(months, c.Month(year, month, today))

		month++
		if month > time.December {
			year++
			month = time.January
		}
	}

	result := Result{
		Months: months,
		Prev:   NewDate(year, month-time.Month(2*numberOfMonths), 1).Time(c.location),
		Next:   NewDate(year, month, 1).Time(c.location),
	}
	result.HTML = executeTemplate(calendarTemplate, &result)

	return result
}

// Month builds the table for one month, flagging the cell that equals today.
func (c *Calendar) Month(year int, month time.Month, today Date) Month {
	year, month = normalizeMonth(year, month)
	matrix := c.MonthMatrix(year, month)

	weeks := make([][]Cell, 0, len(matrix)/daysPerWeek)
	for i := 0; i < len(matrix); i += daysPerWeek {
		week := make([]Cell, daysPerWeek)

		for j, date := range matrix[i : i+daysPerWeek] {
			week[j] = Cell{
				Date:       date,
				Timestamp:  date.Time(c.location).Unix(),
				Today:      date == today,
				OtherMonth: date.Month != month,
			}
		}

		weeks = append(weeks, week)
	}

	return Month{
		Year:     year,
		Month:    month,
		Name:     c.monthNames[month-1],
		Weekdays: c.WeekDayAbbrs(),
		Weeks:    weeks,
	}
}

func executeTemplate(t *template.Template, data any) template.HTML {
	var buffer bytes.Buffer

	if err := t.Execute(&buffer, data); err != nil {
		slog.Error("Failed to render template", "template", t.Name(), "error", err)
		return ""
	}

	return template.HTML(buffer.String())
}
