// Package web implements the browser interface of the karaoke queue.
//
// # Architecture
//
// Pages are rendered server-side with html/template. Every user control is a plain HTML form,
// so each click is one request that fully mutates the session before the next page renders.
//
// Routes
//
//	GET  /              → Now playing, search box and results (?q=), queue
//	POST /queue         → Reserve a catalog entry (form: filename, q)
//	POST /queue/next    → Advance to the next reservation
//	POST /queue/remove  → Cancel a reservation (form: token, or index as a fallback)
//	POST /session/end   → Tear down the session and clear the cookie
//	GET  /state         → JSON snapshot of the session
//	GET  /media/{file}  → Stream a catalog file to the video element
//	GET  /health        → Liveness probe
//
// # State Management
//
// A cookie carries the session ID. Unknown or expired IDs silently start a fresh, empty
// session. Queue rows are addressed by reservation token, never by their rendered position,
// so a stale page cannot cancel the wrong song.
//
// # Playback
//
// The now playing panel is an autoplaying video element pointed at /media/, which supports
// range requests so the browser can seek. When nothing is playing and the queue is not
// empty, rendering the page starts the head of the queue.
package web
