package goemitter

import (
	"bytes"
	"embed"
	"log/slog"
	"text/template"

	"golang.org/x/tools/imports"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.tmpl"))

// executeTemplate renders the named template and formats the result,
// fixing up imports. When formatting fails the raw text is returned and a
// warning logged.
func executeTemplate(logger *slog.Logger, name, filename string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	formatted, err := imports.Process(filename, buf.Bytes(), nil)
	if err != nil {
		logger.Warn("formatting generated file failed, keeping it unformatted", "file", filename, "error", err)
		return buf.Bytes(), nil
	}
	return formatted, nil
}
