package protocol

import (
	"encoding/json"
	"fmt"
)

// Envelope field names fixed by the wire contract.
const (
	fieldAction    = "action"
	fieldRequestID = "requestId"
)

// Command is one imperative or query operation sent to the runtime.
// Payload holds the typed per-action payload, or nil for actions without
// arguments.
type Command struct {
	Action    string
	RequestID string
	Payload   any
}

// Encode serializes the command as a single flat JSON object: the payload
// fields plus the action tag and, when present, the request identifier.
func (c Command) Encode() ([]byte, error) {
	fields := map[string]json.RawMessage{}
	if c.Payload != nil {
		raw, err := json.Marshal(c.Payload)
		if err != nil {
			return nil, fmt.Errorf("marshal %s payload: %w", c.Action, err)
		}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("flatten %s payload: %w", c.Action, err)
		}
	}
	action, err := json.Marshal(c.Action)
	if err != nil {
		return nil, err
	}
	fields[fieldAction] = action
	if c.RequestID != "" {
		id, err := json.Marshal(c.RequestID)
		if err != nil {
			return nil, err
		}
		fields[fieldRequestID] = id
	}
	return json.Marshal(fields)
}

// WireError is the error half of a structured command result.
type WireError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Result is the outcome of one interpreted command, before the runtime wraps
// it with the originating request identifier.
type Result struct {
	Success bool            `json:"success"`
	Error   *WireError      `json:"error,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Response is a decoded runtime-to-bridge response envelope.
type Response struct {
	RequestID string          `json:"requestId"`
	Success   bool            `json:"success"`
	Error     *WireError      `json:"error,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`

	// Stale marks a result served from the last scene push after a query
	// timed out. Never set by the runtime.
	Stale bool `json:"-"`
}

// EncodeResponse wraps a result with the originating request identifier.
func EncodeResponse(requestID string, res Result) ([]byte, error) {
	return json.Marshal(Response{
		RequestID: requestID,
		Success:   res.Success,
		Error:     res.Error,
		Data:      res.Data,
	})
}

// ScenePush is an unsolicited runtime-to-bridge state frame. The presence of
// the scene field with no requestId is what classifies a frame as a push.
type ScenePush struct {
	Scene *SceneState `json:"scene"`
}

// EncodePush serializes a scene push frame.
func EncodePush(state SceneState) ([]byte, error) {
	return json.Marshal(ScenePush{Scene: &state})
}

// Inbound is the classification of one runtime-to-bridge frame.
type Inbound struct {
	RequestID string          `json:"requestId"`
	Scene     json.RawMessage `json:"scene"`
}

// ClassifyInbound splits a frame into a correlated response or an unsolicited
// scene push. Frames that are neither are dropped by the caller.
func ClassifyInbound(data []byte) (resp *Response, scene json.RawMessage, err error) {
	var probe Inbound
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, nil, fmt.Errorf("decode inbound frame: %w", err)
	}
	if probe.RequestID != "" {
		var r Response
		if err := json.Unmarshal(data, &r); err != nil {
			return nil, nil, fmt.Errorf("decode response envelope: %w", err)
		}
		return &r, nil, nil
	}
	if len(probe.Scene) > 0 && string(probe.Scene) != "null" {
		return nil, probe.Scene, nil
	}
	return nil, nil, nil
}
