// Package levels embeds the shipped level files. Levels are plain JSON
// tile grids decoded by the obj package.
package levels

import "embed"

//go:embed *.json
var LevelsFS embed.FS
