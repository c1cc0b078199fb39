// Package views embeds the server-rendered admin pages.
package views

import "embed"

//go:embed *.html
var FS embed.FS
