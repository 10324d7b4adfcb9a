// Package uuidkey layers process-external correlation identifiers on top
// of this module's arena IDs. An arena.ID is only valid within this
// process's tables; spec.md's ambient-stack identifiers section calls for
// a separate, globally-unique key a caller can log, persist, or hand to
// another process to refer to a FrameHandle, PassHandle or
// AttachmentHandle without exposing arena internals.
//
// Grounded on the teacher's go.mod dependency on github.com/google/uuid.
// frame consumes Key directly: FrameHandle/PassHandle/AttachmentHandle
// each carry one, logged on failure paths via rtlog and handed back
// through FrameRequest.Complete so a caller can match a completion
// callback to the frame it captured a UUID for at submission time.
package uuidkey

import "github.com/google/uuid"

// Key is a random (v4) external correlation identifier.
type Key = uuid.UUID

// New returns a fresh random Key.
func New() Key {
	return uuid.New()
}

// Nil is the zero Key, used as a "not yet assigned" sentinel.
var Nil = uuid.Nil
