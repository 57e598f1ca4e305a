// Package wellivian embeds the built frontend for serving from the binary.
package wellivian

import "embed"

//go:embed web/dist
var WebFS embed.FS
