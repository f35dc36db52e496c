package calendar

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates
var _templateFS embed.FS

var templateFS, _ = fs.Sub(_templateFS, "templates")

var (
	calendarTemplate = mustParseTemplate("calendar.html", "month.html")
	monthTemplate    = mustParseTemplate("month.html")
)

func mustParseTemplate(primary string, dependencies ...string) *template.Template {
	t, err := template.New(primary).
		ParseFS(templateFS, append([]string{primary}, dependencies...)...)

	if err != nil {
		panic(err)
	}

	return t
}
