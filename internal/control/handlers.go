package control

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/louisbranch/scenebridge/internal/assets"
	"github.com/louisbranch/scenebridge/internal/bridge"
	"github.com/louisbranch/scenebridge/internal/protocol"
	"github.com/louisbranch/scenebridge/internal/viewpoints"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Commander is the slice of the bridge the tool handlers need. The interface
// exists so handlers can be tested against a scripted bridge.
type Commander interface {
	Send(ctx context.Context, action string, payload any) (*protocol.Response, error)
	Status() bridge.Status
	Scene() (protocol.SceneState, bool)
}

// ViewpointStore is the persistence surface the viewpoint tools need.
type ViewpointStore interface {
	Save(ctx context.Context, record viewpoints.Record) error
	Get(ctx context.Context, name string) (viewpoints.Record, error)
	List(ctx context.Context) ([]viewpoints.Record, error)
	Delete(ctx context.Context, name string) error
}

// send issues one command and renders rejections as readable tool failures.
func send(ctx context.Context, commander Commander, action string, payload any) (*protocol.Response, error) {
	resp, err := commander.Send(ctx, action, payload)
	if err != nil {
		return nil, fmt.Errorf("%s failed: %w", action, err)
	}
	if !resp.Success {
		if resp.Error != nil {
			return nil, fmt.Errorf("%s rejected: %s (%s)", action, resp.Error.Message, resp.Error.Code)
		}
		return nil, fmt.Errorf("%s rejected", action)
	}
	return resp, nil
}

func decodeData(resp *protocol.Response, out any) error {
	if resp.Data == nil {
		return fmt.Errorf("response carries no data")
	}
	return json.Unmarshal(resp.Data, out)
}

// SceneSnapshotHandler executes a scene snapshot query.
func SceneSnapshotHandler(commander Commander) mcp.ToolHandlerFor[SceneSnapshotInput, SceneSnapshotResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ SceneSnapshotInput) (*mcp.CallToolResult, SceneSnapshotResult, error) {
		resp, err := send(ctx, commander, protocol.ActionSceneSnapshot, nil)
		if err != nil {
			return nil, SceneSnapshotResult{}, err
		}
		var state protocol.SceneState
		if resp.Data != nil {
			if err := decodeData(resp, &state); err != nil {
				return nil, SceneSnapshotResult{}, fmt.Errorf("decode scene: %w", err)
			}
		}
		result := SceneSnapshotResult{
			Objects: objectInfos(state.Objects),
			Camera:  cameraInfo(state.Camera),
			Stale:   resp.Stale,
		}
		return nil, result, nil
	}
}

// ObjectFindHandler executes an object search.
func ObjectFindHandler(commander Commander) mcp.ToolHandlerFor[ObjectFindInput, ObjectFindResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ObjectFindInput) (*mcp.CallToolResult, ObjectFindResult, error) {
		if input.Name == "" && input.Contains == "" && input.Kind == "" {
			return nil, ObjectFindResult{}, fmt.Errorf("one of name, contains, or kind is required")
		}
		resp, err := send(ctx, commander, protocol.ActionObjectFind, protocol.FindQuery{
			Name: input.Name, Contains: input.Contains, Kind: input.Kind,
		})
		if err != nil {
			return nil, ObjectFindResult{}, err
		}

		// A stale fallback carries the whole cached scene, not a match list;
		// the search re-runs against it here.
		if resp.Stale {
			var state protocol.SceneState
			if resp.Data != nil {
				if err := decodeData(resp, &state); err != nil {
					return nil, ObjectFindResult{}, fmt.Errorf("decode cached scene: %w", err)
				}
			}
			return nil, ObjectFindResult{
				Objects: objectInfos(filterObjects(state.Objects, input)),
				Stale:   true,
			}, nil
		}

		var found struct {
			Objects []protocol.ObjectState `json:"objects"`
		}
		if err := decodeData(resp, &found); err != nil {
			return nil, ObjectFindResult{}, fmt.Errorf("decode matches: %w", err)
		}
		return nil, ObjectFindResult{Objects: objectInfos(found.Objects)}, nil
	}
}

// CameraGetHandler executes a camera query.
func CameraGetHandler(commander Commander) mcp.ToolHandlerFor[CameraGetInput, CameraGetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ CameraGetInput) (*mcp.CallToolResult, CameraGetResult, error) {
		cam, err := fetchCamera(ctx, commander)
		if err != nil {
			return nil, CameraGetResult{}, err
		}
		return nil, CameraGetResult{Camera: cameraInfo(cam)}, nil
	}
}

// ObjectTransformHandler executes a transform patch.
func ObjectTransformHandler(commander Commander) mcp.ToolHandlerFor[ObjectTransformInput, ObjectTransformResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ObjectTransformInput) (*mcp.CallToolResult, ObjectTransformResult, error) {
		if strings.TrimSpace(input.Target) == "" {
			return nil, ObjectTransformResult{}, fmt.Errorf("target is required")
		}
		resp, err := send(ctx, commander, protocol.ActionObjectTransform, protocol.TransformCmd{
			Target:   input.Target,
			Position: vecParam(input.Position),
			Rotation: vecParam(input.Rotation),
			Scale:    vecParam(input.Scale),
		})
		if err != nil {
			return nil, ObjectTransformResult{}, err
		}
		var obj protocol.ObjectState
		if err := decodeData(resp, &obj); err != nil {
			return nil, ObjectTransformResult{}, fmt.Errorf("decode object: %w", err)
		}
		return nil, ObjectTransformResult{Object: objectInfo(obj)}, nil
	}
}

// ObjectVisibilityHandler executes a visibility toggle.
func ObjectVisibilityHandler(commander Commander) mcp.ToolHandlerFor[ObjectVisibilityInput, ObjectVisibilityResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ObjectVisibilityInput) (*mcp.CallToolResult, ObjectVisibilityResult, error) {
		if strings.TrimSpace(input.Target) == "" {
			return nil, ObjectVisibilityResult{}, fmt.Errorf("target is required")
		}
		resp, err := send(ctx, commander, protocol.ActionObjectVisibility, protocol.VisibilityCmd{
			Target: input.Target, Visible: input.Visible,
		})
		if err != nil {
			return nil, ObjectVisibilityResult{}, err
		}
		var obj protocol.ObjectState
		if err := decodeData(resp, &obj); err != nil {
			return nil, ObjectVisibilityResult{}, fmt.Errorf("decode object: %w", err)
		}
		return nil, ObjectVisibilityResult{Object: objectInfo(obj)}, nil
	}
}

// ObjectSpawnHandler executes a primitive creation.
func ObjectSpawnHandler(commander Commander) mcp.ToolHandlerFor[ObjectSpawnInput, ObjectSpawnResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ObjectSpawnInput) (*mcp.CallToolResult, ObjectSpawnResult, error) {
		if strings.TrimSpace(input.Name) == "" {
			return nil, ObjectSpawnResult{}, fmt.Errorf("name is required")
		}
		if strings.TrimSpace(input.Kind) == "" {
			return nil, ObjectSpawnResult{}, fmt.Errorf("kind is required")
		}
		resp, err := send(ctx, commander, protocol.ActionObjectSpawn, protocol.SpawnCmd{
			Name:     input.Name,
			Kind:     input.Kind,
			Position: vecParam(input.Position),
			Rotation: vecParam(input.Rotation),
			Scale:    vecParam(input.Scale),
			Color:    colorParam(input.Color),
			Parent:   input.Parent,
		})
		if err != nil {
			return nil, ObjectSpawnResult{}, err
		}
		var obj protocol.ObjectState
		if err := decodeData(resp, &obj); err != nil {
			return nil, ObjectSpawnResult{}, fmt.Errorf("decode object: %w", err)
		}
		return nil, ObjectSpawnResult{Object: objectInfo(obj)}, nil
	}
}

// ObjectDuplicateHandler executes an object duplication.
func ObjectDuplicateHandler(commander Commander) mcp.ToolHandlerFor[ObjectDuplicateInput, ObjectDuplicateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ObjectDuplicateInput) (*mcp.CallToolResult, ObjectDuplicateResult, error) {
		if strings.TrimSpace(input.Source) == "" {
			return nil, ObjectDuplicateResult{}, fmt.Errorf("source is required")
		}
		if strings.TrimSpace(input.NewName) == "" {
			return nil, ObjectDuplicateResult{}, fmt.Errorf("new_name is required")
		}
		resp, err := send(ctx, commander, protocol.ActionObjectDuplicate, protocol.DuplicateCmd{
			Source: input.Source, NewName: input.NewName, Offset: vecParam(input.Offset),
		})
		if err != nil {
			return nil, ObjectDuplicateResult{}, err
		}
		var obj protocol.ObjectState
		if err := decodeData(resp, &obj); err != nil {
			return nil, ObjectDuplicateResult{}, fmt.Errorf("decode object: %w", err)
		}
		return nil, ObjectDuplicateResult{Object: objectInfo(obj)}, nil
	}
}

// ObjectRemoveHandler executes an object removal.
func ObjectRemoveHandler(commander Commander) mcp.ToolHandlerFor[ObjectRemoveInput, ObjectRemoveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ObjectRemoveInput) (*mcp.CallToolResult, ObjectRemoveResult, error) {
		if strings.TrimSpace(input.Target) == "" {
			return nil, ObjectRemoveResult{}, fmt.Errorf("target is required")
		}
		resp, err := send(ctx, commander, protocol.ActionObjectRemove, protocol.RemoveCmd{Target: input.Target})
		if err != nil {
			return nil, ObjectRemoveResult{}, err
		}
		var out struct {
			Removed string `json:"removed"`
		}
		if err := decodeData(resp, &out); err != nil {
			return nil, ObjectRemoveResult{}, fmt.Errorf("decode result: %w", err)
		}
		return nil, ObjectRemoveResult{Removed: out.Removed}, nil
	}
}

// CameraSetHandler executes an immediate camera change.
func CameraSetHandler(commander Commander) mcp.ToolHandlerFor[CameraSetInput, CameraSetResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CameraSetInput) (*mcp.CallToolResult, CameraSetResult, error) {
		if input.Position == nil && input.Aim == nil && input.Lens == nil {
			return nil, CameraSetResult{}, fmt.Errorf("at least one of position, aim, or lens is required")
		}
		resp, err := send(ctx, commander, protocol.ActionCameraSet, protocol.CameraSetCmd{
			Position: vecParam(input.Position),
			Aim:      vecParam(input.Aim),
			Lens:     lensParam(input.Lens),
		})
		if err != nil {
			return nil, CameraSetResult{}, err
		}
		var cam protocol.CameraState
		if err := decodeData(resp, &cam); err != nil {
			return nil, CameraSetResult{}, fmt.Errorf("decode camera: %w", err)
		}
		return nil, CameraSetResult{Camera: cameraInfo(cam)}, nil
	}
}

// CameraTransitionHandler executes an animated camera move.
func CameraTransitionHandler(commander Commander) mcp.ToolHandlerFor[CameraTransitionInput, CameraTransitionResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CameraTransitionInput) (*mcp.CallToolResult, CameraTransitionResult, error) {
		if input.DurationMs < 0 {
			return nil, CameraTransitionResult{}, fmt.Errorf("duration_ms must be non-negative")
		}
		resp, err := send(ctx, commander, protocol.ActionCameraTransition, protocol.CameraTransitionCmd{
			To:         protocol.Vec(input.To),
			Aim:        vecParam(input.Aim),
			Lens:       lensParam(input.Lens),
			DurationMs: input.DurationMs,
			Animate:    input.Animate,
		})
		if err != nil {
			return nil, CameraTransitionResult{}, err
		}
		var out struct {
			Animating bool `json:"animating"`
		}
		if err := decodeData(resp, &out); err != nil {
			return nil, CameraTransitionResult{}, fmt.Errorf("decode result: %w", err)
		}
		return nil, CameraTransitionResult{Animating: out.Animating}, nil
	}
}

// SpinStartHandler starts a continuous rotation effect.
func SpinStartHandler(commander Commander) mcp.ToolHandlerFor[SpinStartInput, SpinStartResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpinStartInput) (*mcp.CallToolResult, SpinStartResult, error) {
		if strings.TrimSpace(input.Target) == "" {
			return nil, SpinStartResult{}, fmt.Errorf("target is required")
		}
		resp, err := send(ctx, commander, protocol.ActionSpinStart, protocol.SpinStartCmd{
			Target: input.Target, RateDps: protocol.Vec(input.RateDps),
		})
		if err != nil {
			return nil, SpinStartResult{}, err
		}
		var out struct {
			Spinning string `json:"spinning"`
		}
		if err := decodeData(resp, &out); err != nil {
			return nil, SpinStartResult{}, fmt.Errorf("decode result: %w", err)
		}
		return nil, SpinStartResult{Spinning: out.Spinning}, nil
	}
}

// SpinStopHandler stops a continuous rotation effect.
func SpinStopHandler(commander Commander) mcp.ToolHandlerFor[SpinStopInput, SpinStopResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SpinStopInput) (*mcp.CallToolResult, SpinStopResult, error) {
		if strings.TrimSpace(input.Target) == "" {
			return nil, SpinStopResult{}, fmt.Errorf("target is required")
		}
		resp, err := send(ctx, commander, protocol.ActionSpinStop, protocol.SpinStopCmd{Target: input.Target})
		if err != nil {
			return nil, SpinStopResult{}, err
		}
		var out struct {
			Stopped bool `json:"stopped"`
		}
		if err := decodeData(resp, &out); err != nil {
			return nil, SpinStopResult{}, fmt.Errorf("decode result: %w", err)
		}
		return nil, SpinStopResult{Stopped: out.Stopped}, nil
	}
}

// ViewpointSaveHandler captures the live camera into the viewpoint store.
func ViewpointSaveHandler(commander Commander, store ViewpointStore) mcp.ToolHandlerFor[ViewpointSaveInput, ViewpointSaveResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ViewpointSaveInput) (*mcp.CallToolResult, ViewpointSaveResult, error) {
		if strings.TrimSpace(input.Name) == "" {
			return nil, ViewpointSaveResult{}, fmt.Errorf("name is required")
		}
		cam, err := fetchCamera(ctx, commander)
		if err != nil {
			return nil, ViewpointSaveResult{}, err
		}
		record := viewpoints.Record{Name: input.Name, Camera: cam, SavedAt: time.Now().UTC()}
		if err := store.Save(ctx, record); err != nil {
			return nil, ViewpointSaveResult{}, fmt.Errorf("save viewpoint: %w", err)
		}
		return nil, ViewpointSaveResult{Name: input.Name, Camera: cameraInfo(cam)}, nil
	}
}

// ViewpointApplyHandler moves the camera to a saved viewpoint.
func ViewpointApplyHandler(commander Commander, store ViewpointStore) mcp.ToolHandlerFor[ViewpointApplyInput, ViewpointApplyResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ViewpointApplyInput) (*mcp.CallToolResult, ViewpointApplyResult, error) {
		if strings.TrimSpace(input.Name) == "" {
			return nil, ViewpointApplyResult{}, fmt.Errorf("name is required")
		}
		if input.DurationMs < 0 {
			return nil, ViewpointApplyResult{}, fmt.Errorf("duration_ms must be non-negative")
		}
		record, err := store.Get(ctx, input.Name)
		if err != nil {
			return nil, ViewpointApplyResult{}, fmt.Errorf("load viewpoint: %w", err)
		}

		aim := record.Camera.Aim
		fov := record.Camera.FovDeg
		near := record.Camera.Near
		far := record.Camera.Far
		resp, err := send(ctx, commander, protocol.ActionCameraTransition, protocol.CameraTransitionCmd{
			To:         record.Camera.Position,
			Aim:        &aim,
			Lens:       &protocol.LensPatch{FovDeg: &fov, Near: &near, Far: &far},
			DurationMs: input.DurationMs,
			Animate:    input.Animate,
		})
		if err != nil {
			return nil, ViewpointApplyResult{}, err
		}
		var out struct {
			Animating bool `json:"animating"`
		}
		if err := decodeData(resp, &out); err != nil {
			return nil, ViewpointApplyResult{}, fmt.Errorf("decode result: %w", err)
		}
		return nil, ViewpointApplyResult{Name: input.Name, Animating: out.Animating}, nil
	}
}

// ViewpointListHandler lists every saved viewpoint.
func ViewpointListHandler(store ViewpointStore) mcp.ToolHandlerFor[ViewpointListInput, ViewpointListResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ViewpointListInput) (*mcp.CallToolResult, ViewpointListResult, error) {
		records, err := store.List(ctx)
		if err != nil {
			return nil, ViewpointListResult{}, fmt.Errorf("list viewpoints: %w", err)
		}
		entries := make([]ViewpointEntry, 0, len(records))
		for _, record := range records {
			entries = append(entries, ViewpointEntry{
				Name:    record.Name,
				Camera:  cameraInfo(record.Camera),
				SavedAt: record.SavedAt.Format(time.RFC3339),
			})
		}
		return nil, ViewpointListResult{Viewpoints: entries}, nil
	}
}

// ViewpointDeleteHandler deletes a saved viewpoint.
func ViewpointDeleteHandler(store ViewpointStore) mcp.ToolHandlerFor[ViewpointDeleteInput, ViewpointDeleteResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ViewpointDeleteInput) (*mcp.CallToolResult, ViewpointDeleteResult, error) {
		if strings.TrimSpace(input.Name) == "" {
			return nil, ViewpointDeleteResult{}, fmt.Errorf("name is required")
		}
		if err := store.Delete(ctx, input.Name); err != nil {
			return nil, ViewpointDeleteResult{}, fmt.Errorf("delete viewpoint: %w", err)
		}
		return nil, ViewpointDeleteResult{Deleted: input.Name}, nil
	}
}

// SceneAnalyzeHandler estimates the rendering cost of the scene. It prefers a
// live snapshot and degrades to the cached state when the runtime is away.
func SceneAnalyzeHandler(commander Commander, analyzer assets.Analyzer) mcp.ToolHandlerFor[SceneAnalyzeInput, SceneAnalyzeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ SceneAnalyzeInput) (*mcp.CallToolResult, SceneAnalyzeResult, error) {
		var state protocol.SceneState
		stale := false

		resp, err := send(ctx, commander, protocol.ActionSceneSnapshot, nil)
		switch {
		case err == nil:
			if resp.Data != nil {
				if err := decodeData(resp, &state); err != nil {
					return nil, SceneAnalyzeResult{}, fmt.Errorf("decode scene: %w", err)
				}
			}
			stale = resp.Stale
		default:
			cached, ok := commander.Scene()
			if !ok {
				return nil, SceneAnalyzeResult{}, fmt.Errorf("no scene state available: %w", err)
			}
			state = cached
			stale = true
		}

		report := analyzer.Analyze(state)
		result := SceneAnalyzeResult{
			ObjectCount:  report.ObjectCount,
			VisibleCount: report.VisibleCount,
			Triangles:    report.Triangles,
			ByKind:       report.ByKind,
			BoundsMin:    report.Bounds.Min,
			BoundsMax:    report.Bounds.Max,
			Stale:        stale,
		}
		return nil, result, nil
	}
}

// RuntimeStatusHandler reports bridge connection state.
func RuntimeStatusHandler(commander Commander) mcp.ToolHandlerFor[RuntimeStatusInput, RuntimeStatusResult] {
	return func(_ context.Context, _ *mcp.CallToolRequest, _ RuntimeStatusInput) (*mcp.CallToolResult, RuntimeStatusResult, error) {
		status := commander.Status()
		result := RuntimeStatusResult{
			Connected: status.Connected,
			Pending:   status.Pending,
			HasScene:  status.HasScene,
			LastError: status.LastError,
		}
		if !status.LastSeenAt.IsZero() {
			result.LastSceneAt = status.LastSeenAt.Format(time.RFC3339)
		}
		return nil, result, nil
	}
}

// fetchCamera queries the live camera state.
func fetchCamera(ctx context.Context, commander Commander) (protocol.CameraState, error) {
	resp, err := send(ctx, commander, protocol.ActionCameraGet, nil)
	if err != nil {
		return protocol.CameraState{}, err
	}
	var cam protocol.CameraState
	if err := decodeData(resp, &cam); err != nil {
		return protocol.CameraState{}, fmt.Errorf("decode camera: %w", err)
	}
	return cam, nil
}

// filterObjects re-applies the find selector precedence to a cached scene.
func filterObjects(objects []protocol.ObjectState, input ObjectFindInput) []protocol.ObjectState {
	var out []protocol.ObjectState
	for _, obj := range objects {
		switch {
		case input.Name != "":
			if obj.Name == input.Name {
				out = append(out, obj)
			}
		case input.Contains != "":
			if strings.Contains(obj.Name, input.Contains) {
				out = append(out, obj)
			}
		case input.Kind != "":
			if obj.Kind == input.Kind {
				out = append(out, obj)
			}
		}
	}
	return out
}

func objectInfos(objects []protocol.ObjectState) []ObjectInfo {
	infos := make([]ObjectInfo, 0, len(objects))
	for _, obj := range objects {
		infos = append(infos, objectInfo(obj))
	}
	return infos
}

func objectInfo(obj protocol.ObjectState) ObjectInfo {
	return ObjectInfo{
		Name:     obj.Name,
		Kind:     obj.Kind,
		Path:     obj.Path,
		Position: obj.Position,
		Rotation: obj.Rotation,
		Scale:    obj.Scale,
		Visible:  obj.Visible,
		Color:    obj.Color,
	}
}

func cameraInfo(cam protocol.CameraState) CameraInfo {
	return CameraInfo{
		Position:   cam.Position,
		Aim:        cam.Aim,
		FovDeg:     cam.FovDeg,
		Near:       cam.Near,
		Far:        cam.Far,
		Projection: cam.Projection,
	}
}

func vecParam(v *[3]float32) *protocol.Vec {
	if v == nil {
		return nil
	}
	out := protocol.Vec(*v)
	return &out
}

func colorParam(c *[4]float32) *protocol.Color {
	if c == nil {
		return nil
	}
	out := protocol.Color(*c)
	return &out
}

func lensParam(lens *LensInput) *protocol.LensPatch {
	if lens == nil {
		return nil
	}
	return &protocol.LensPatch{FovDeg: lens.FovDeg, Near: lens.Near, Far: lens.Far}
}
