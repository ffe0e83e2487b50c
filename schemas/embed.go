// Package schemas embeds the JSON Schema of every content module shape.
package schemas

import "embed"

// FS holds the <kind>.schema.json files.
//
//go:embed *.schema.json
var FS embed.FS
