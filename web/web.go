// Package web holds the embedded HTML templates.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page templates for gin's HTML renderer.
func Templates() *template.Template {
	funcs := template.FuncMap{
		"hasID": func(ids []uint64, id uint64) bool {
			for _, v := range ids {
				if v == id {
					return true
				}
			}
			return false
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))
}
