package swaggerui

import "embed"

//go:embed templates dist
var assets embed.FS

const (
	templatesDir  = "templates"
	staticDir     = "dist"
	indexTemplate = "index.html"
)
