package render

import "github.com/taigrr/facet/pkg/math3d"

// Params are the per-frame model transform: a translation and Euler angles
// in radians. The frame loop owns them; nothing mutates them mid-frame.
type Params struct {
	DX, DY, DZ             float64
	AngleX, AngleY, AngleZ float64
}

// ModelMatrix returns T(dx,dy,dz) · Rz · Ry · Rx. Rotation happens about the
// object's local origin before the translation is applied.
func (p Params) ModelMatrix() math3d.Mat4 {
	return math3d.Translate(math3d.V3(p.DX, p.DY, p.DZ)).
		Mul(math3d.RotateEuler(p.AngleX, p.AngleY, p.AngleZ))
}

// Project applies the pinhole perspective divide x/z, y/z. z is passed
// through unchanged for the depth test. z == 0 yields non-finite x and y;
// the rasterizer is responsible for tolerating them.
func Project(v math3d.Vec3) math3d.Vec3 {
	return math3d.V3(v.X/v.Z, v.Y/v.Z, v.Z)
}

// Viewport maps normalized device coordinates to pixel coordinates.
type Viewport struct {
	Width, Height int
}

// Map sends ndc in [-1,1]² to [0,W]×[0,H] with y pointing down.
func (vp Viewport) Map(ndc math3d.Vec3) math3d.Vec3 {
	w, h := float64(vp.Width), float64(vp.Height)
	return math3d.V3(
		(ndc.X+1)*0.5*w,
		(1-(ndc.Y+1)*0.5)*h,
		ndc.Z,
	)
}

// Mesh is the read-only geometry the pipeline consumes. Faces hold 0-based
// vertex indices; only the first three of each face are drawn.
type Mesh interface {
	VertexCount() int
	Vertex(i int) math3d.Vec3
	FaceCount() int
	Face(i int) []int
}

// Stage transforms a mesh's vertices once per frame into parallel world and
// screen arrays. The arrays are reused across frames.
type Stage struct {
	Viewport Viewport
	World    []math3d.Vec3
	Screen   []math3d.Vec3
}

// NewStage creates a transform stage for the given viewport.
func NewStage(vp Viewport) *Stage {
	return &Stage{Viewport: vp}
}

// Run fills World and Screen for every vertex of mesh.
func (s *Stage) Run(mesh Mesh, p Params) {
	n := mesh.VertexCount()
	s.World = grow(s.World, n)
	s.Screen = grow(s.Screen, n)

	model := p.ModelMatrix()
	for i := range n {
		w := model.MulVec3(mesh.Vertex(i))
		s.World[i] = w
		s.Screen[i] = s.Viewport.Map(Project(w))
	}
}

func grow(v []math3d.Vec3, n int) []math3d.Vec3 {
	if cap(v) < n {
		return make([]math3d.Vec3, n)
	}
	return v[:n]
}
