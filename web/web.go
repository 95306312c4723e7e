// Package web holds the embedded browser assets.
package web

import "embed"

//go:embed templates
var Templates embed.FS
