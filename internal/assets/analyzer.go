// Package assets estimates rendering cost and spatial extent for a scene
// description, without talking to the runtime: it works from the last pushed
// or queried scene state, so it stays available while the link is down.
package assets

import (
	"cogentcore.org/core/math32"
	"github.com/louisbranch/scenebridge/internal/protocol"
)

// triangleEstimates approximates the mesh budget of each primitive kind at
// the runtime's default tessellation.
var triangleEstimates = map[string]int{
	"box":      12,
	"plane":    2,
	"sphere":   960,
	"cylinder": 128,
	"cone":     66,
	"group":    0,
	"camera":   0,
	"light":    0,
}

// Report summarizes one scene analysis.
type Report struct {
	ObjectCount  int            `json:"objectCount"`
	VisibleCount int            `json:"visibleCount"`
	Triangles    int            `json:"triangles"`
	ByKind       map[string]int `json:"byKind"`
	Bounds       Bounds         `json:"bounds"`
}

// Bounds is the axis-aligned extent of the object positions, scaled per axis.
type Bounds struct {
	Min protocol.Vec `json:"min"`
	Max protocol.Vec `json:"max"`
}

// Analyzer produces reports from scene state. The interface exists so the
// control surface can be tested against a canned analyzer.
type Analyzer interface {
	Analyze(state protocol.SceneState) Report
}

// MeshAnalyzer is the default Analyzer: per-kind triangle estimates plus a
// coarse position-and-scale bounding box.
type MeshAnalyzer struct{}

// NewMeshAnalyzer returns the default analyzer.
func NewMeshAnalyzer() *MeshAnalyzer {
	return &MeshAnalyzer{}
}

// Analyze summarizes the scene. Hidden objects count toward the object total
// but not toward the triangle budget.
func (MeshAnalyzer) Analyze(state protocol.SceneState) Report {
	report := Report{
		ObjectCount: len(state.Objects),
		ByKind:      map[string]int{},
	}

	first := true
	var lo, hi math32.Vector3
	for _, obj := range state.Objects {
		report.ByKind[obj.Kind]++
		if !obj.Visible {
			continue
		}
		report.VisibleCount++
		report.Triangles += triangleEstimates[obj.Kind]

		pos := math32.Vec3(obj.Position[0], obj.Position[1], obj.Position[2])
		half := math32.Vec3(
			math32.Abs(obj.Scale[0])/2,
			math32.Abs(obj.Scale[1])/2,
			math32.Abs(obj.Scale[2])/2,
		)
		objLo := pos.Sub(half)
		objHi := pos.Add(half)
		if first {
			lo, hi = objLo, objHi
			first = false
			continue
		}
		lo = math32.Vec3(math32.Min(lo.X, objLo.X), math32.Min(lo.Y, objLo.Y), math32.Min(lo.Z, objLo.Z))
		hi = math32.Vec3(math32.Max(hi.X, objHi.X), math32.Max(hi.Y, objHi.Y), math32.Max(hi.Z, objHi.Z))
	}
	if !first {
		report.Bounds = Bounds{
			Min: protocol.Vec{lo.X, lo.Y, lo.Z},
			Max: protocol.Vec{hi.X, hi.Y, hi.Z},
		}
	}
	return report
}
