// Package session provides the in-memory implementation of the per-user
// composition buffer store. Buffers are keyed by user id and live for the
// process lifetime; there is no persistence across restarts.
package session
