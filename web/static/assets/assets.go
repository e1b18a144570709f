package assets

import "embed"

// FS guarda o CSS servido em /assets/.
//
//go:embed *.css
var FS embed.FS
