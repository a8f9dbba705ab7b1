// Package remote keeps connected remote viewers in sync with the match.
//
// Each connection is a [Peer] in the guest group until it sends a valid
// enable password, after which it may mutate the match. On every state
// change the [Hub] pushes one newline-terminated JSON [State] to every peer,
// tagged with that peer's group.
//
// Transports (websocket, SSE) live in the server package; they only need to
// provide a [Sender] and feed inbound messages to [Hub.Handle].
package remote
