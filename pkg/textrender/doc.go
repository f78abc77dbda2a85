// Package textrender turns radar entry descriptions into sanitized HTML.
//
// Descriptions come from spreadsheets, so they use a loose Markdown dialect:
// literal "\n" sequences stand for line breaks, bullets may be indented or
// written as "*item" with odd spacing, and single newlines are meant as hard
// breaks. [Normalize] rewrites that dialect into Markdown that
// github.com/yuin/goldmark understands, and [Renderer] converts and then
// sanitizes the result with github.com/microcosm-cc/bluemonday. Links always
// open in a new tab with rel="noopener noreferrer".
package textrender
