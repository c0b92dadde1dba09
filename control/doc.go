// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for hioload-codec.
//
// Provides concurrent-safe state handling primitives including:
//   - Snapshot config reads with reload listeners and typed Settings
//   - Cache-line padded counters for parse and handshake outcomes
//   - Debug probe registration and state export
package control
