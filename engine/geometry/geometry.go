// Package geometry builds indexed triangle meshes for the primitive shapes.
// Vertex order, winding and texture coordinates follow the usual conventions of
// web 3D libraries: counter-clockwise front faces, v = 1 at the top edge.
package geometry

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-materials/common"
	"github.com/chewxy/math32"
)

// Geometry is an immutable indexed triangle list.
type Geometry interface {
	// Name returns a descriptive identifier, e.g. "sphere".
	//
	// Returns:
	//   - string: the name
	Name() string

	// Vertices returns the vertex array. The slice must not be modified.
	//
	// Returns:
	//   - []GPUVertex: the vertices
	Vertices() []GPUVertex

	// Indices returns the triangle index array. The slice must not be modified.
	//
	// Returns:
	//   - []uint32: three indices per triangle
	Indices() []uint32

	// VertexBytes returns the vertex array as bytes for a vertex buffer upload.
	//
	// Returns:
	//   - []byte: the interleaved vertex data
	VertexBytes() []byte

	// IndexBytes returns the index array as bytes for an index buffer upload.
	//
	// Returns:
	//   - []byte: the uint32 index data
	IndexBytes() []byte
}

type geometryImpl struct {
	mu *sync.Mutex

	name     string
	vertices []GPUVertex
	indices  []uint32
}

var _ Geometry = &geometryImpl{}

// newGeometry wraps generated data and fills in tangents derived from the texture coordinates.
func newGeometry(name string, vertices []GPUVertex, indices []uint32) Geometry {
	computeTangents(vertices, indices)
	return &geometryImpl{
		mu:       &sync.Mutex{},
		name:     name,
		vertices: vertices,
		indices:  indices,
	}
}

func (g *geometryImpl) Name() string {
	return g.name
}

func (g *geometryImpl) Vertices() []GPUVertex {
	return g.vertices
}

func (g *geometryImpl) Indices() []uint32 {
	return g.indices
}

func (g *geometryImpl) VertexBytes() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.SliceToBytes(g.vertices)
}

func (g *geometryImpl) IndexBytes() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return common.SliceToBytes(g.indices)
}

// Sphere builds a UV sphere centered on the origin.
// Rows run from the north pole (v = 1) to the south pole (v = 0); the pole rows are
// shifted half a segment in u and contribute a single triangle per quad.
//
// Parameters:
//   - radius: the sphere radius
//   - widthSegments: segments around the equator, at least 3
//   - heightSegments: segments from pole to pole, at least 2
//
// Returns:
//   - Geometry: (widthSegments+1)*(heightSegments+1) vertices
func Sphere(radius float32, widthSegments, heightSegments int) Geometry {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	vertices := make([]GPUVertex, 0, (widthSegments+1)*(heightSegments+1))
	grid := make([][]uint32, heightSegments+1)
	var index uint32

	for iy := 0; iy <= heightSegments; iy++ {
		v := float32(iy) / float32(heightSegments)
		var uOffset float32
		switch iy {
		case 0:
			uOffset = 0.5 / float32(widthSegments)
		case heightSegments:
			uOffset = -0.5 / float32(widthSegments)
		}

		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float32(ix) / float32(widthSegments)
			phi := u * 2 * math32.Pi
			theta := v * math32.Pi

			pos := [3]float32{
				-radius * math32.Cos(phi) * math32.Sin(theta),
				radius * math32.Cos(theta),
				radius * math32.Sin(phi) * math32.Sin(theta),
			}
			vertices = append(vertices, GPUVertex{
				Position: pos,
				Normal:   normalize(pos),
				TexCoord: [2]float32{u + uOffset, 1 - v},
			})
			row[ix] = index
			index++
		}
		grid[iy] = row
	}

	indices := make([]uint32, 0, widthSegments*(heightSegments-1)*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return newGeometry("sphere", vertices, indices)
}

// Plane builds a subdivided rectangle in the XY plane facing +Z, centered on the origin.
//
// Parameters:
//   - width: extent along X
//   - height: extent along Y
//   - widthSegments: subdivisions along X, at least 1
//   - heightSegments: subdivisions along Y, at least 1
//
// Returns:
//   - Geometry: (widthSegments+1)*(heightSegments+1) vertices
func Plane(width, height float32, widthSegments, heightSegments int) Geometry {
	gridX := max(widthSegments, 1)
	gridY := max(heightSegments, 1)
	gridX1, gridY1 := gridX+1, gridY+1
	segW := width / float32(gridX)
	segH := height / float32(gridY)

	vertices := make([]GPUVertex, 0, gridX1*gridY1)
	for iy := range gridY1 {
		y := float32(iy)*segH - height/2
		for ix := range gridX1 {
			x := float32(ix)*segW - width/2
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{x, -y, 0},
				Normal:   [3]float32{0, 0, 1},
				TexCoord: [2]float32{float32(ix) / float32(gridX), 1 - float32(iy)/float32(gridY)},
			})
		}
	}

	indices := make([]uint32, 0, gridX*gridY*6)
	for iy := range gridY {
		for ix := range gridX {
			a := uint32(ix + gridX1*iy)
			b := uint32(ix + gridX1*(iy+1))
			c := uint32(ix + 1 + gridX1*(iy+1))
			d := uint32(ix + 1 + gridX1*iy)
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return newGeometry("plane", vertices, indices)
}

// Torus builds a ring in the XY plane around the Z axis.
//
// Parameters:
//   - radius: distance from the center of the torus to the center of the tube
//   - tube: radius of the tube
//   - radialSegments: segments around the tube cross-section, at least 2
//   - tubularSegments: segments around the ring, at least 3
//
// Returns:
//   - Geometry: (radialSegments+1)*(tubularSegments+1) vertices
func Torus(radius, tube float32, radialSegments, tubularSegments int) Geometry {
	radialSegments = max(radialSegments, 2)
	tubularSegments = max(tubularSegments, 3)

	vertices := make([]GPUVertex, 0, (radialSegments+1)*(tubularSegments+1))
	for j := 0; j <= radialSegments; j++ {
		for i := 0; i <= tubularSegments; i++ {
			u := float32(i) / float32(tubularSegments) * 2 * math32.Pi
			v := float32(j) / float32(radialSegments) * 2 * math32.Pi

			ring := radius + tube*math32.Cos(v)
			pos := [3]float32{
				ring * math32.Cos(u),
				ring * math32.Sin(u),
				tube * math32.Sin(v),
			}
			center := [3]float32{radius * math32.Cos(u), radius * math32.Sin(u), 0}
			vertices = append(vertices, GPUVertex{
				Position: pos,
				Normal:   normalize([3]float32{pos[0] - center[0], pos[1] - center[1], pos[2] - center[2]}),
				TexCoord: [2]float32{float32(i) / float32(tubularSegments), float32(j) / float32(radialSegments)},
			})
		}
	}

	stride := uint32(tubularSegments + 1)
	indices := make([]uint32, 0, radialSegments*tubularSegments*6)
	for j := uint32(1); j <= uint32(radialSegments); j++ {
		for i := uint32(1); i <= uint32(tubularSegments); i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			indices = append(indices, a, b, d, b, c, d)
		}
	}
	return newGeometry("torus", vertices, indices)
}

func normalize(v [3]float32) [3]float32 {
	l := math32.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
	if l == 0 {
		return v
	}
	return [3]float32{v[0] / l, v[1] / l, v[2] / l}
}
