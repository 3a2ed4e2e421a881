// Package hull implements the QuickHull3D incremental convex hull engine:
// a half-edge polyhedral mesh, an outside-point conflict structure, horizon
// computation, new-face stitching, and two-pass adjacent-face merging.
package hull

import "quickhull3d/src/geometry"

// Mark is a face's lifecycle tag.
type Mark int

const (
	// Visible faces are part of the current hull boundary.
	Visible Mark = iota
	// NonConvex faces survived pass 1 of merging but were flagged
	// non-convex along an edge where only the smaller face of the pair
	// sees the other as non-convex; pass 2 revisits them.
	NonConvex
	// Deleted faces have been absorbed by a merge or superseded by new
	// faces during horizon processing. They remain in the face registry
	// (for bookkeeping) but are excluded from output.
	Deleted
)

// Vertex wraps one input point. Index is deliberately reused across the
// build (see Builder.extractResult): it is left at -1 until output
// extraction, then 0 marks "used by a surviving face", then the compacted
// output slot. InputIndex is never mutated after construction and is used
// to look up the original point behind a compacted output vertex.
type Vertex struct {
	Point      geometry.Point3D
	InputIndex int
	Index      int
	Face       *Face
	Prev, Next *Vertex
}

// HalfEdge is a directed edge belonging to exactly one face. Vertex is the
// edge's head; the tail is Prev's head.
type HalfEdge struct {
	Vertex     *Vertex
	Face       *Face
	Next, Prev *HalfEdge
	Opposite   *HalfEdge
}

// Tail returns the edge's tail vertex.
func (e *HalfEdge) Tail() *Vertex {
	return e.Prev.Vertex
}

// Head returns the edge's head vertex (equivalent to e.Vertex).
func (e *HalfEdge) Head() *Vertex {
	return e.Vertex
}

// OppositeFace returns the face on the other side of this edge.
func (e *HalfEdge) OppositeFace() *Face {
	return e.Opposite.Face
}

// LengthSquared returns the squared length of the edge.
func (e *HalfEdge) LengthSquared() float64 {
	d := geometry.Diff(e.Head().Point.Vector(), e.Tail().Point.Vector())
	return d.LengthSquared()
}

// OppFaceDistance returns the distance from this edge's face's plane to
// the centroid of the face across the edge.
func (e *HalfEdge) OppFaceDistance() float64 {
	return e.Face.DistanceToPlane(e.Opposite.Face.Centroid)
}

// Face is a convex polygon embedded in a plane, described by a cyclic ring
// of half-edges starting at FirstEdge.
type Face struct {
	FirstEdge   *HalfEdge
	Normal      geometry.Vector3
	PlaneOffset float64
	Centroid    geometry.Vector3
	Area        float64
	Count       int
	Mark        Mark
	Outside     *Vertex
}

// DistanceToPlane returns the signed distance from p to the face's plane;
// positive is outward along Normal.
func (f *Face) DistanceToPlane(p geometry.Vector3) float64 {
	return geometry.Dot(f.Normal, p) - f.PlaneOffset
}

// Edge returns the i-th half-edge of the face's boundary, walking from
// FirstEdge via Next. Only meant for small i (initial-simplex wiring).
func (f *Face) Edge(i int) *HalfEdge {
	e := f.FirstEdge
	for ; i > 0; i-- {
		e = e.Next
	}
	return e
}

func newTriangleFace(v0, v1, v2 *Vertex) *Face {
	face := &Face{Mark: Visible, Count: 3}
	e0 := &HalfEdge{Vertex: v1, Face: face}
	e1 := &HalfEdge{Vertex: v2, Face: face}
	e2 := &HalfEdge{Vertex: v0, Face: face}
	e0.Next, e1.Next, e2.Next = e1, e2, e0
	e0.Prev, e1.Prev, e2.Prev = e2, e0, e1
	face.FirstEdge = e0
	return face
}
