// ABOUTME: Embeds the admin UI templates into the binary
// ABOUTME: Provides templateFS for rendering at runtime

package admin

import "embed"

//go:embed templates/*.html
var templateFS embed.FS
