// Package server provides the HTTP transport for the scoreboard.
//
// It handles every network concern so the rest of the device only deals in
// peers and snapshots:
//
//   - Dashboard serving: the embedded remote control page at "/"
//   - REST API: "/api/state" for the current guest snapshot and
//     "/api/display" for the last frame shown on the panel
//   - Server-Sent Events: read-only guest peers at "/api/sse"
//   - WebSocket: interactive peers at "/ws"
//
// Every connection is attached to the remote hub as a peer; the hub decides
// what each peer sees and which messages it may act on. The server supports
// graceful shutdown via context cancellation, with a 5-second timeout for
// in-flight requests.
package server
