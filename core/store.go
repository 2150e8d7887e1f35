package core

// BufferStore persists per-user composition buffers. One buffer exists per
// user who has initiated composition; buffers live for the process lifetime
// and are never destroyed implicitly.
//
// Contract:
//   - Operations on different user ids must never contend
//   - Update runs its read-modify-write function under a per-user critical
//     section so rapid same-user mutations apply in arrival order instead of
//     racing
type BufferStore interface {
	// Get returns the current buffer and whether a session exists for the user.
	Get(userID string) (string, bool)
	// Put creates or overwrites the user's buffer.
	Put(userID, buffer string)
	// Delete removes the user's session entirely.
	Delete(userID string)
	// Update applies fn to the current buffer (empty string for a fresh
	// session) and stores the result, returning the new buffer value.
	Update(userID string, fn func(current string) string) string
}
