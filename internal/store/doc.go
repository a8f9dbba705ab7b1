// Package store persists the device settings.
//
// The settings are a small JSON document (hostname, enable password and
// whether the network starts at boot) that survives restarts. Two
// implementations are provided:
//
//   - [MemoryStore]: process-local, used in tests and when no file is configured
//   - [FileStore]: a JSON file written atomically via temp file and rename
//
// Loading is never fatal to the device: [LoadOrDefault] falls back to
// defaults and reports whether anything was actually loaded.
package store
