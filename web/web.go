package web

import "embed"

// Templates holds the HTML layouts and pages.
//
//go:embed templates/layouts/*.html templates/pages/*.html
var Templates embed.FS

// Static holds the embedded web/static directory.
// Handlers access it via fs.Sub(Static, "static").
//
//go:embed static
var Static embed.FS
