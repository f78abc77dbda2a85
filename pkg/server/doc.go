// Package server exposes a radar over HTTP.
//
// The server keeps one long-lived [chart.Chart] per style and answers the
// interaction surface of a rendered radar: the SVG itself, the published
// scene as JSON, the entry list, click details and hover tooltips.
//
// # Routes
//
//	GET  /healthz
//	GET  /radar.svg?width=&height=&style=
//	GET  /api/scene?width=&height=&style=
//	GET  /api/entries
//	GET  /api/entries/{index}
//	GET  /api/entries/{index}/tooltip?cursorX=&cursorY=&viewportHeight=
//	POST /api/refresh
//
// Every request to /radar.svg runs its own layout pass and never publishes it.
// /api/scene returns the latest published scene unless a viewport is given,
// and tags it with the scene ID as ETag. Refreshes are collapsed with
// singleflight; a failed refresh keeps serving the last dataset that loaded.
//
// Errors are JSON objects of the form {"error": "...", "code": "..."} with
// the status taken from [errors.HTTPStatus].
package server
