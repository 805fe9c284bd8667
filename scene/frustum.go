package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	remath "github.com/HugoPeters1024/deffered-shading/math"
)

// Plane is the half-space Normal·p + D >= 0.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// DistanceTo is positive on the inside.
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a camera.
type Frustum struct {
	Planes [6]Plane // left, right, bottom, top, near, far
}

// FrustumFromMatrix extracts normalized planes from a projection×view
// matrix (Gribb/Hartmann).
func FrustumFromMatrix(m mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := m.Row(0), m.Row(1), m.Row(2), m.Row(3)
	var f Frustum
	f.Planes[0] = normalizePlane(r3.Add(r0))
	f.Planes[1] = normalizePlane(r3.Sub(r0))
	f.Planes[2] = normalizePlane(r3.Add(r1))
	f.Planes[3] = normalizePlane(r3.Sub(r1))
	f.Planes[4] = normalizePlane(r3.Add(r2))
	f.Planes[5] = normalizePlane(r3.Sub(r2))
	return f
}

func normalizePlane(v mgl32.Vec4) Plane {
	l := v.Vec3().Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: v.Vec3().Mul(1 / l), D: v.W() / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// IntersectsFrustum is false only when the box lies entirely outside one
// plane; it may report true for boxes just outside a corner.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for _, p := range f.Planes {
		// The corner furthest along the plane normal.
		var pv mgl32.Vec3
		for i := 0; i < 3; i++ {
			pv[i] = box.Max[i]
			if p.Normal[i] < 0 {
				pv[i] = box.Min[i]
			}
		}
		if p.DistanceTo(pv) < 0 {
			return false
		}
	}
	return true
}

// Transform returns the world box enclosing the 8 transformed corners.
func (box AABB) Transform(m mgl32.Mat4) AABB {
	mn, mx := box.Min, box.Max
	out := AABB{}
	for i := 0; i < 8; i++ {
		corner := mgl32.Vec3{mn[0], mn[1], mn[2]}
		if i&1 != 0 {
			corner[0] = mx[0]
		}
		if i&2 != 0 {
			corner[1] = mx[1]
		}
		if i&4 != 0 {
			corner[2] = mx[2]
		}
		wp := mgl32.TransformCoordinate(corner, m)
		if i == 0 {
			out = AABB{Min: wp, Max: wp}
			continue
		}
		for k := 0; k < 3; k++ {
			out.Min[k] = remath.Min(out.Min[k], wp[k])
			out.Max[k] = remath.Max(out.Max[k], wp[k])
		}
	}
	return out
}

// WorldBounds is the world-space box of mesh placed with model.
func WorldBounds(mesh *MeshData, model mgl32.Mat4) AABB {
	lo, hi := mesh.Bounds()
	return AABB{Min: lo, Max: hi}.Transform(model)
}
