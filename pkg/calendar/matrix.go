package calendar

import "time"

// MonthMatrix returns every date shown for the given month: the days of the
// month itself, preceded by the tail of the previous month and followed by
// the head of the next one so the result fills whole weeks that start on the
// calendar's first day of week. Out of range months are normalized.
func (c *Calendar) MonthMatrix(year int, month time.Month) []Date {
	year, month = normalizeMonth(year, month)

	first := daysFromCivil(year, month, 1)
	afterLast := first + DaysInMonth(year, month)

	leading := floorMod(int(weekdayOfOrdinal(first))-int(c.firstDayOfWeek), daysPerWeek)
	trailing := floorMod(int(c.firstDayOfWeek)-int(weekdayOfOrdinal(afterLast)), daysPerWeek)

	start := first - leading
	count := leading + (afterLast - first) + trailing

	matrix := make([]Date, count)
	for i := range matrix {
		matrix[i] = dateFromOrdinal(start + i)
	}

	return matrix
}
