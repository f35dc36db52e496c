package calendar

import (
	"golang.org/x/text/language"
)

const DefaultLanguage = "en"

// Locale holds the labels of one bundled language. Array lengths are fixed so
// a locale can't be missing a month or a week day.
type Locale struct {
	Tag           language.Tag
	MonthNames    [12]string
	WeekDayNames  [7]string
	WeekDayAbbrs2 [7]string
	WeekDayAbbrs3 [7]string
}

// Week day arrays start on Monday.
var locales = map[string]Locale{
	"be": {
		Tag:           language.MustParse("be"),
		MonthNames:    [12]string{"Студзень", "Люты", "Сакавік", "Красавік", "Травень (Май)", "Чэрвень", "Ліпень", "Жнівень", "Верасень", "Кастрычнік", "Лістапад", "Снежань"},
		WeekDayNames:  [7]string{"Панядзелак", "Аўторак", "Серада", "Чацвер", "Пятніца", "Субота", "Нядзеля"},
		WeekDayAbbrs2: [7]string{"Пн", "Аў", "Ср", "Чц", "Пт", "Сб", "Нд"},
		WeekDayAbbrs3: [7]string{"Пнд", "Аўт", "Сер", "Чцв", "Пят", "Суб", "Няд"},
	},
	"en": {
		Tag:           language.English,
		MonthNames:    [12]string{"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
		WeekDayNames:  [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
		WeekDayAbbrs2: [7]string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"},
		WeekDayAbbrs3: [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
	},
	"ru": {
		Tag:           language.Russian,
		MonthNames:    [12]string{"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь", "Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь"},
		WeekDayNames:  [7]string{"Понедельник", "Вторник", "Среда", "Четверг", "Пятница", "Суббота", "Воскресенье"},
		WeekDayAbbrs2: [7]string{"Пн", "Вт", "Ср", "Чт", "Пт", "Сб", "Вс"},
		WeekDayAbbrs3: [7]string{"Пнд", "Втр", "Срд", "Чтв", "Птн", "Сбт", "Вск"},
	},
}

// The default language goes first, a matcher falls back to its first tag.
var languages = []string{DefaultLanguage, "be", "ru"}

var localeMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(languages))
	for i, code := range languages {
		tags[i] = locales[code].Tag
	}

	return language.NewMatcher(tags)
}()

// LookupLocale returns a copy of the bundled locale for an ISO-639-1 code.
func LookupLocale(code string) (Locale, bool) {
	locale, ok := locales[code]

	return locale, ok
}

// Languages returns the codes of the bundled locales, default first.
func Languages() []string {
	return append([]string(nil), languages...)
}

// MatchLanguage picks the bundled language that best serves an
// Accept-Language header value. It reports false when nothing matches.
func MatchLanguage(acceptLanguage string) (string, bool) {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return "", false
	}

	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return "", false
	}

	return languages[index], true
}
