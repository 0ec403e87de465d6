// Package web embeds the page and fragment templates rendered by the HTTP
// adapter.
package web

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Templates parses the page and its fragments. The page is addressed as
// "index.html", fragments by their define name, each rooted at the element
// id it patches.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(files, "*.html")
}
