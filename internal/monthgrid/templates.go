package monthgrid

import (
	"embed"
	"html/template"
	"io/fs"

	"github.com/monthgrid/monthgrid/pkg/calendar"
)

//go:embed templates
var _templateFS embed.FS

var templateFS, _ = fs.Sub(_templateFS, "templates")

var globalTemplateFunctions = template.FuncMap{
	"languages": calendar.Languages,
}

func mustParseTemplate(primary string, dependencies ...string) *template.Template {
	t, err := template.New(primary).
		Funcs(globalTemplateFunctions).
		ParseFS(templateFS, append([]string{primary}, dependencies...)...)

	if err != nil {
		panic(err)
	}

	return t
}
