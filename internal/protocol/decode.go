package protocol

import (
	"encoding/json"
	"fmt"

	"github.com/louisbranch/scenebridge/internal/errors"
)

// payloadDecoders maps each action tag to a decoder for its typed payload.
// One entry per catalog action; an action missing here is unknown.
var payloadDecoders = map[string]func([]byte) (any, error){
	ActionSceneSnapshot:    decodeInto[SnapshotQuery],
	ActionObjectFind:       decodeInto[FindQuery],
	ActionCameraGet:        decodeInto[CameraQuery],
	ActionObjectTransform:  decodeInto[TransformCmd],
	ActionObjectVisibility: decodeInto[VisibilityCmd],
	ActionObjectSpawn:      decodeInto[SpawnCmd],
	ActionObjectDuplicate:  decodeInto[DuplicateCmd],
	ActionObjectRemove:     decodeInto[RemoveCmd],
	ActionCameraSet:        decodeInto[CameraSetCmd],
	ActionCameraTransition: decodeInto[CameraTransitionCmd],
	ActionSpinStart:        decodeInto[SpinStartCmd],
	ActionSpinStop:         decodeInto[SpinStopCmd],
}

func decodeInto[T any](data []byte) (any, error) {
	var payload T
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// DecodeCommand parses one bridge-to-runtime frame into a command with a
// typed payload. Unknown action tags return a CodeUnknownAction error; the
// interpreter turns that into a structured failure result, never a dropped
// frame.
func DecodeCommand(data []byte) (Command, error) {
	var head struct {
		Action    string `json:"action"`
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return Command{}, fmt.Errorf("decode command envelope: %w", err)
	}
	cmd := Command{Action: head.Action, RequestID: head.RequestID}
	decode, ok := payloadDecoders[head.Action]
	if !ok {
		return cmd, errors.New(errors.CodeUnknownAction, "unknown action %q", head.Action)
	}
	payload, err := decode(data)
	if err != nil {
		return cmd, errors.Wrap(errors.CodeInvalidArgument, err, "decode %s payload", head.Action)
	}
	cmd.Payload = payload
	return cmd, nil
}
