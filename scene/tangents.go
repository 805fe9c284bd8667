package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/HugoPeters1024/deffered-shading/core"
	remath "github.com/HugoPeters1024/deffered-shading/math"
)

// ComputeTangents generates per-vertex tangent and bitangent vectors for
// tangent-space normal mapping. Vertices need UV coordinates; triangles with
// a degenerate UV area are skipped. With no indices, every three vertices
// form a triangle.
func ComputeTangents(vertices []core.Vertex, indices []uint32) {
	for i := range vertices {
		vertices[i].Tangent = mgl32.Vec3{}
		vertices[i].Bitangent = mgl32.Vec3{}
	}

	accum := func(i0, i1, i2 uint32) {
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		e1 := v1.Position.Sub(v0.Position)
		e2 := v2.Position.Sub(v0.Position)
		duv1 := v1.UV.Sub(v0.UV)
		duv2 := v2.UV.Sub(v0.UV)

		denom := duv1.X()*duv2.Y() - duv2.X()*duv1.Y()
		if denom == 0 {
			return
		}
		r := 1 / denom

		t := e1.Mul(duv2.Y() * r).Sub(e2.Mul(duv1.Y() * r))
		b := e2.Mul(duv1.X() * r).Sub(e1.Mul(duv2.X() * r))

		for _, i := range [3]uint32{i0, i1, i2} {
			vertices[i].Tangent = vertices[i].Tangent.Add(t)
			vertices[i].Bitangent = vertices[i].Bitangent.Add(b)
		}
	}

	if len(indices) > 0 {
		for i := 0; i+2 < len(indices); i += 3 {
			accum(indices[i], indices[i+1], indices[i+2])
		}
	} else {
		for i := 0; i+2 < len(vertices); i += 3 {
			accum(uint32(i), uint32(i+1), uint32(i+2))
		}
	}

	// Gram-Schmidt against the normal.
	for i := range vertices {
		n := vertices[i].Normal
		t := vertices[i].Tangent
		b := vertices[i].Bitangent

		t = t.Sub(n.Mul(n.Dot(t)))
		if t.LenSqr() < 1e-8 {
			if remath.Abs(n.X()) < 0.9 {
				t = mgl32.Vec3{1, 0, 0}.Sub(n.Mul(n.X()))
			} else {
				t = mgl32.Vec3{0, 1, 0}.Sub(n.Mul(n.Y()))
			}
		}
		vertices[i].Tangent = t.Normalize()

		if b.LenSqr() < 1e-8 {
			b = n.Cross(vertices[i].Tangent)
		}
		vertices[i].Bitangent = b.Normalize()
	}
}
