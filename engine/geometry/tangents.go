package geometry

import "github.com/chewxy/math32"

// computeTangents derives per-vertex tangents from the triangle texture coordinates.
// Face tangents are accumulated per vertex, orthogonalized against the normal and
// given a handedness sign in w. Vertices with degenerate UVs fall back to a tangent
// perpendicular to the normal.
func computeTangents(vertices []GPUVertex, indices []uint32) {
	tan := make([][3]float32, len(vertices))
	bitan := make([][3]float32, len(vertices))

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		v0, v1, v2 := vertices[i0], vertices[i1], vertices[i2]

		e1 := sub(v1.Position, v0.Position)
		e2 := sub(v2.Position, v0.Position)
		du1, dv1 := v1.TexCoord[0]-v0.TexCoord[0], v1.TexCoord[1]-v0.TexCoord[1]
		du2, dv2 := v2.TexCoord[0]-v0.TexCoord[0], v2.TexCoord[1]-v0.TexCoord[1]

		det := du1*dv2 - du2*dv1
		if math32.Abs(det) < 1e-12 {
			continue
		}
		r := 1 / det
		sdir := [3]float32{
			(dv2*e1[0] - dv1*e2[0]) * r,
			(dv2*e1[1] - dv1*e2[1]) * r,
			(dv2*e1[2] - dv1*e2[2]) * r,
		}
		tdir := [3]float32{
			(du1*e2[0] - du2*e1[0]) * r,
			(du1*e2[1] - du2*e1[1]) * r,
			(du1*e2[2] - du2*e1[2]) * r,
		}
		for _, i := range [3]uint32{i0, i1, i2} {
			tan[i] = add(tan[i], sdir)
			bitan[i] = add(bitan[i], tdir)
		}
	}

	for i := range vertices {
		n := vertices[i].Normal
		t := tan[i]
		// Gram-Schmidt
		t = sub(t, scale(n, dot(n, t)))
		if dot(t, t) < 1e-12 {
			t = perpendicular(n)
		}
		t = normalize(t)
		w := float32(1)
		if dot(cross(n, t), bitan[i]) < 0 {
			w = -1
		}
		vertices[i].Tangent = [4]float32{t[0], t[1], t[2], w}
	}
}

func perpendicular(n [3]float32) [3]float32 {
	if math32.Abs(n[0]) < 0.9 {
		return cross(n, [3]float32{1, 0, 0})
	}
	return cross(n, [3]float32{0, 1, 0})
}

func add(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale(a [3]float32, s float32) [3]float32 {
	return [3]float32{a[0] * s, a[1] * s, a[2] * s}
}

func dot(a, b [3]float32) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func cross(a, b [3]float32) [3]float32 {
	return [3]float32{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
