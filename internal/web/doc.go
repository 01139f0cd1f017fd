// Package web serves the public marketing pages and the chat API.
//
// Pages render server-side from embedded templates, with stored markdown
// converted to HTML. Public routes carry an optional provisional identity
// used only for rendering decisions; nothing here authorizes anything.
package web
