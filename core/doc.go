// Package core provides the foundational domain types used across keybot. It
// defines the core abstractions for:
//
//   - Inbound chat events (messages and keyboard button actions)
//   - Outbound payloads (text plus optional button grid / attachment card)
//   - The per-user composition buffer store contract
//
// The package intentionally keeps implementation concerns (transports, the
// keyboard state machine, suggestion lookups) out of scope, exposing small
// types and interfaces so the surrounding packages can be composed and tested
// independently.
package core
