// Package protocol defines the wire contract between the bridge and the
// runtime: UTF-8 text frames, each carrying one JSON object. A frame from the
// bridge is a command envelope; a frame from the runtime is either a response
// envelope (carries requestId) or an unsolicited scene push (carries the
// scene field and no requestId).
package protocol

// Action tags form a fixed, enumerable catalog. Every command envelope
// carries exactly one of these.
const (
	ActionSceneSnapshot    = "scene_snapshot"
	ActionObjectFind       = "object_find"
	ActionCameraGet        = "camera_get"
	ActionObjectTransform  = "object_transform"
	ActionObjectVisibility = "object_visibility"
	ActionObjectSpawn      = "object_spawn"
	ActionObjectDuplicate  = "object_duplicate"
	ActionObjectRemove     = "object_remove"
	ActionCameraSet        = "camera_set"
	ActionCameraTransition = "camera_transition"
	ActionSpinStart        = "spin_start"
	ActionSpinStop         = "spin_stop"
)

// queryActions is the timeout-fallback set: exactly the idempotent read-only
// actions whose timed-out requests resolve from the last scene push.
var queryActions = map[string]bool{
	ActionSceneSnapshot: true,
	ActionObjectFind:    true,
}

// IsQueryAction reports whether the action belongs to the timeout-fallback
// set.
func IsQueryAction(action string) bool {
	return queryActions[action]
}

// KnownAction reports whether the action tag is part of the catalog.
func KnownAction(action string) bool {
	_, ok := payloadDecoders[action]
	return ok
}
