// Package comic provides an HTTP client for a public comic metadata API.
//
// # Overview
//
// The API serves one JSON document per comic plus a "latest" document:
//
//	{"num": 614, "title": "Woodpecker", "img": "https://.../woodpecker.png", "alt": "..."}
//
// num, title and img are required. alt and the remaining xkcd fields
// (safe_title, transcript, link, news, year, month, day) are optional.
//
// # URL Layouts
//
// Two layouts are supported and selected with Options.Style:
//
//   - StyleXKCD (default): <base>/info.0.json and <base>/<id>/info.0.json
//   - StylePath: <base> and <base>/<id>
//
// # Error Handling
//
// Every failure is one of two kinds:
//
//   - *NetworkError: transport failure (StatusCode == 0) or a non-2xx status
//   - *ParseError: body is not JSON or is missing a required field
//
// Use errors.As to tell them apart, or Kind for a short label suitable for
// structured logs. FetchByID rejects ids below 1 with ErrInvalidID without
// touching the network.
//
// # Request Handling
//
// Requests carry Accept: application/json and a strip/<version> User-Agent.
// There is no retry and no client timeout unless Options.Timeout is set;
// callers cancel through the context. The client has no UI side effects, so
// loading indicators belong to the caller.
//
// The Client is safe for concurrent use.
package comic
