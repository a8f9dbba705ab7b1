// Package dashboard provides the embedded remote control page.
//
// The page connects to the device over a websocket, shows both sides live
// and, once a valid enable password is entered, offers the admin controls.
// It is served by the server package at "/".
package dashboard

import "embed"

// Assets is an embedded filesystem containing the remote control page.
//
//	assets/
//	  index.html    - page with inline CSS and JavaScript
//
//go:embed assets/*
var Assets embed.FS
