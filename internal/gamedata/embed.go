// Package gamedata provides the embedded item, skill and monster catalogs and
// registries for looking them up.
package gamedata

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
