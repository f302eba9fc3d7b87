package control

import "github.com/modelcontextprotocol/go-sdk/mcp"

// SceneSnapshotTool describes the scene_snapshot MCP tool.
func SceneSnapshotTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scene_snapshot",
		Description: "Returns every object and the camera state. Falls back to the last known state when the runtime does not answer in time.",
	}
}

// ObjectFindTool describes the object_find MCP tool.
func ObjectFindTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_find",
		Description: "Searches the scene by exact name, name substring, or kind. Exactly one selector applies.",
	}
}

// CameraGetTool describes the camera_get MCP tool.
func CameraGetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "camera_get",
		Description: "Returns the live camera position, aim point, and lens parameters.",
	}
}

// ObjectTransformTool describes the object_transform MCP tool.
func ObjectTransformTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_transform",
		Description: "Patches an object's position, rotation, or scale. Omitted fields are left untouched.",
	}
}

// ObjectVisibilityTool describes the object_visibility MCP tool.
func ObjectVisibilityTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_visibility",
		Description: "Shows or hides an object without removing it from the scene.",
	}
}

// ObjectSpawnTool describes the object_spawn MCP tool.
func ObjectSpawnTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_spawn",
		Description: "Creates a new primitive in the live scene, optionally under a parent object.",
	}
}

// ObjectDuplicateTool describes the object_duplicate MCP tool.
func ObjectDuplicateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_duplicate",
		Description: "Deep-clones an object and its children under a new name, optionally offset from the source.",
	}
}

// ObjectRemoveTool describes the object_remove MCP tool.
func ObjectRemoveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "object_remove",
		Description: "Removes an object and its children from the scene.",
	}
}

// CameraSetTool describes the camera_set MCP tool.
func CameraSetTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "camera_set",
		Description: "Applies camera position, aim, or lens changes immediately, with no animation.",
	}
}

// CameraTransitionTool describes the camera_transition MCP tool.
func CameraTransitionTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "camera_transition",
		Description: "Moves the camera to a new position over time. Starting a new transition cancels the one in flight.",
	}
}

// SpinStartTool describes the spin_start MCP tool.
func SpinStartTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "spin_start",
		Description: "Rotates an object continuously at a fixed rate until stopped or removed.",
	}
}

// SpinStopTool describes the spin_stop MCP tool.
func SpinStopTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "spin_stop",
		Description: "Stops a continuous rotation effect on an object.",
	}
}

// ViewpointSaveTool describes the viewpoint_save MCP tool.
func ViewpointSaveTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "viewpoint_save",
		Description: "Saves the current camera state under a name. Saved viewpoints survive restarts.",
	}
}

// ViewpointApplyTool describes the viewpoint_apply MCP tool.
func ViewpointApplyTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "viewpoint_apply",
		Description: "Moves the camera to a previously saved viewpoint, optionally animating the move.",
	}
}

// ViewpointListTool describes the viewpoint_list MCP tool.
func ViewpointListTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "viewpoint_list",
		Description: "Lists every saved viewpoint.",
	}
}

// ViewpointDeleteTool describes the viewpoint_delete MCP tool.
func ViewpointDeleteTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "viewpoint_delete",
		Description: "Deletes a saved viewpoint by name.",
	}
}

// SceneAnalyzeTool describes the scene_analyze MCP tool.
func SceneAnalyzeTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scene_analyze",
		Description: "Estimates the triangle budget and spatial extent of the scene. Works from the last known state when the runtime is unreachable.",
	}
}

// RuntimeStatusTool describes the runtime_status MCP tool.
func RuntimeStatusTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "runtime_status",
		Description: "Reports whether the runtime is connected, how many commands are in flight, and when scene state was last seen.",
	}
}
