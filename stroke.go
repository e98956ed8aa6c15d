package springball

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// JoinMode controls how segments join in a stroked polyline.
type JoinMode uint8

const (
	// JoinMiter extends segment corners to a sharp point, clamped at 2x width.
	JoinMiter JoinMode = iota
	// JoinBevel keeps the averaged normal unscaled, flattening sharp corners.
	JoinBevel
)

// strokeMesh is a ribbon of triangles following a polyline, drawn with the
// white pixel and tinted by a single color. The zig-zag spring has sharp
// corners every segment, so joins matter.
type strokeMesh struct {
	Width float64
	Join  JoinMode

	verts   []ebiten.Vertex
	inds    []uint16
	drawBuf []ebiten.Vertex
}

// SetPoints rebuilds the ribbon. For N points: 2N vertices, 6(N-1) indices.
// Fewer than two points clears the mesh.
func (m *strokeMesh) SetPoints(points []Vec2) {
	if len(points) < 2 {
		m.verts = m.verts[:0]
		m.inds = m.inds[:0]
		return
	}

	n := len(points)
	numVerts := n * 2
	numInds := (n - 1) * 6

	// Grow vertex/index slices to high-water mark.
	if cap(m.verts) < numVerts {
		m.verts = make([]ebiten.Vertex, numVerts)
	}
	m.verts = m.verts[:numVerts]
	if cap(m.inds) < numInds {
		m.inds = make([]uint16, numInds)
	}
	m.inds = m.inds[:numInds]

	halfW := m.Width / 2

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch i {
		case 0:
			nx, ny = perpendicular(points[0], points[1])
		case n - 1:
			nx, ny = perpendicular(points[n-2], points[n-1])
		default:
			// Average of adjacent segment normals.
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > 1e-10 {
				nx /= ln
				ny /= ln
			} else {
				// Segment folds back on itself.
				nx, ny = nx0, ny0
			}
			if m.Join == JoinMiter {
				dot := nx0*nx + ny0*ny
				if dot > 0.1 {
					scale := math.Min(1.0/dot, 2.0)
					nx *= scale
					ny *= scale
				}
			}
		}

		vi := i * 2
		m.verts[vi] = ebiten.Vertex{
			DstX: float32(points[i].X + nx*halfW),
			DstY: float32(points[i].Y + ny*halfW),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
		m.verts[vi+1] = ebiten.Vertex{
			DstX: float32(points[i].X - nx*halfW),
			DstY: float32(points[i].Y - ny*halfW),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}

	// Two triangles per segment.
	for i := 0; i < n-1; i++ {
		ii := i * 6
		v := uint16(i * 2)
		m.inds[ii+0] = v
		m.inds[ii+1] = v + 1
		m.inds[ii+2] = v + 2
		m.inds[ii+3] = v + 1
		m.inds[ii+4] = v + 3
		m.inds[ii+5] = v + 2
	}
}

// Draw submits the ribbon translated by origin and tinted by c.
func (m *strokeMesh) Draw(dst *ebiten.Image, origin Vec2, c Color) {
	if len(m.inds) == 0 {
		return
	}
	if cap(m.drawBuf) < len(m.verts) {
		m.drawBuf = make([]ebiten.Vertex, len(m.verts))
	}
	m.drawBuf = m.drawBuf[:len(m.verts)]

	ox, oy := float32(origin.X), float32(origin.Y)
	cr := float32(c.R * c.A)
	cg := float32(c.G * c.A)
	cb := float32(c.B * c.A)
	ca := float32(c.A)
	for i := range m.verts {
		v := m.verts[i]
		v.DstX += ox
		v.DstY += oy
		v.ColorR *= cr
		v.ColorG *= cg
		v.ColorB *= cb
		v.ColorA *= ca
		m.drawBuf[i] = v
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(m.drawBuf, m.inds, ensureWhitePixel(), op)
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
