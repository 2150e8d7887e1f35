// Package testutil provides shared helpers for constructing inbound events
// and scripted transport clients in tests.
package testutil
