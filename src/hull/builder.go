package hull

import (
	"fmt"
	"math"

	"quickhull3d/src/geometry"
)

// Option configures how BuildResult formats its output indices. All
// default to off.
type Option func(*options)

type options struct {
	oneBased      bool
	clockwise     bool
	pointRelative bool
}

// WithOneBasedIndices makes polygon indices 1-based instead of 0-based.
func WithOneBasedIndices() Option {
	return func(o *options) { o.oneBased = true }
}

// WithClockwiseWinding reverses each polygon's vertex order.
func WithClockwiseWinding() Option {
	return func(o *options) { o.clockwise = true }
}

// WithPointRelativeIndexing makes polygon indices reference the original
// input point slice instead of the compacted output vertex slice.
func WithPointRelativeIndexing() Option {
	return func(o *options) { o.pointRelative = true }
}

// Builder owns the mesh, conflict lists, and face registry for one hull
// construction. It is not safe for concurrent use during Build; a single
// Builder value must not be shared between goroutines while a build is in
// progress. Independent Builders may run concurrently on disjoint inputs.
type Builder struct {
	opts options

	vertices []*Vertex
	faces    []*Face

	claimed, unclaimed VertexList

	tolerance float64
	minArea   float64
}

// NewBuilder constructs a Builder with the given output-formatting options.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, o := range opts {
		o(&b.opts)
	}
	return b
}

// BuildResult is the immutable outcome of a successful Build: the hull's
// vertices (a subset of the input, compacted and re-indexed) and its faces
// as index lists into Vertices, counter-clockwise around the outward
// normal by default.
type BuildResult struct {
	Vertices  []geometry.Point3D
	Polygons  [][]int
	Tolerance float64
}

// String summarizes the result as "N vertices, M faces, tolerance=T",
// useful for logging and the cmd/quickhull -summary mode.
func (r *BuildResult) String() string {
	return fmt.Sprintf("%d vertices, %d faces, tolerance=%g", len(r.Vertices), len(r.Polygons), r.Tolerance)
}

// Build computes the convex hull of points. len(points) must be at least
// 4; fewer returns an *InputError.
func (b *Builder) Build(points []geometry.Point3D) (*BuildResult, error) {
	if len(points) < 4 {
		return nil, newInputError(msgTooFewPoints)
	}

	b.vertices = make([]*Vertex, len(points))
	for i, p := range points {
		b.vertices[i] = &Vertex{Point: p, InputIndex: i, Index: -1}
	}
	b.faces = nil
	b.claimed = VertexList{}
	b.unclaimed = VertexList{}

	if err := b.createInitialSimplex(); err != nil {
		return nil, err
	}
	if err := b.buildHull(); err != nil {
		return nil, err
	}
	return b.extractResult(), nil
}

// BuildFromFloats interprets coords as k point triples (len(coords) ==
// 3*k) and computes their hull. k must be at least 4.
func (b *Builder) BuildFromFloats(coords []float64) (*BuildResult, error) {
	if len(coords)%3 != 0 {
		return nil, newInputError(msgBadCoordCount)
	}
	if len(coords)/3 < 4 {
		return nil, newInputError(msgTooFewPoints)
	}
	points := make([]geometry.Point3D, len(coords)/3)
	for i := range points {
		points[i] = geometry.Point3D{X: coords[3*i], Y: coords[3*i+1], Z: coords[3*i+2]}
	}
	return b.Build(points)
}

// createInitialSimplex estimates the working tolerance, picks four
// well-separated input points to seed a non-degenerate tetrahedron,
// orients its four triangular faces outward, and assigns every remaining
// point to whichever seed face it lies outside of.
func (b *Builder) createInitialSimplex() error {
	pts := make([]geometry.Point3D, len(b.vertices))
	for i, v := range b.vertices {
		pts[i] = v.Point
	}
	extremes := geometry.ComputeExtremes(pts)
	b.tolerance = geometry.Tolerance(extremes)
	b.minArea = 1000 * b.tolerance * b.tolerance

	extents := [3]float64{
		extremes.Max.X - extremes.Min.X,
		extremes.Max.Y - extremes.Min.Y,
		extremes.Max.Z - extremes.Min.Z,
	}
	axis, maxExtent := 0, extents[0]
	for i := 1; i < 3; i++ {
		if extents[i] > maxExtent {
			axis, maxExtent = i, extents[i]
		}
	}
	if maxExtent <= b.tolerance {
		return newInputError(msgCoincident)
	}

	var v0, v1 *Vertex
	minVal, maxVal := math.MaxFloat64, -math.MaxFloat64
	for _, v := range b.vertices {
		val := component(v.Point, axis)
		if val < minVal {
			minVal, v0 = val, v
		}
		if val > maxVal {
			maxVal, v1 = val, v
		}
	}

	lineDir := geometry.Diff(v1.Point.Vector(), v0.Point.Vector())
	var v2 *Vertex
	maxCrossSq := 0.0
	for _, v := range b.vertices {
		d := geometry.Diff(v.Point.Vector(), v0.Point.Vector())
		crossSq := geometry.Cross(lineDir, d).LengthSquared()
		if crossSq > maxCrossSq {
			maxCrossSq, v2 = crossSq, v
		}
	}
	if math.Sqrt(maxCrossSq) <= 100*b.tolerance {
		return newInputError(msgColinear)
	}

	n := geometry.Cross(
		geometry.Diff(v1.Point.Vector(), v0.Point.Vector()),
		geometry.Diff(v2.Point.Vector(), v0.Point.Vector()),
	).Normalize()
	v2Dot := geometry.Dot(v2.Point.Vector(), n)

	var v3 *Vertex
	maxDist := 0.0
	for _, v := range b.vertices {
		dist := math.Abs(geometry.Dot(v.Point.Vector(), n) - v2Dot)
		if dist > maxDist {
			maxDist, v3 = dist, v
		}
	}
	if maxDist <= 100*b.tolerance {
		return newInputError(msgCoplanar)
	}

	faces, err := b.buildTetrahedron(v0, v1, v2, v3, n, v2Dot)
	if err != nil {
		return err
	}

	for _, v := range b.vertices {
		if v == v0 || v == v1 || v == v2 || v == v3 {
			continue
		}
		var best *Face
		bestDist := b.tolerance
		for _, f := range faces {
			d := f.DistanceToPlane(v.Point.Vector())
			if d > bestDist {
				bestDist, best = d, f
			}
		}
		if best != nil {
			b.addPointToFace(v, best)
		}
	}
	return nil
}

// buildTetrahedron wires the four initial faces together, choosing one of
// two symmetric stitching patterns depending on which side of the
// v0,v1,v2 plane v3 falls on so every face's normal points away from the
// vertex it doesn't contain.
func (b *Builder) buildTetrahedron(v0, v1, v2, v3 *Vertex, n geometry.Vector3, v2Dot float64) ([]*Face, error) {
	var faces [4]*Face

	if geometry.Dot(v3.Point.Vector(), n)-v2Dot < 0 {
		faces[0] = newTriangleFace(v0, v1, v2)
		faces[1] = newTriangleFace(v3, v1, v0)
		faces[2] = newTriangleFace(v3, v2, v1)
		faces[3] = newTriangleFace(v3, v0, v2)

		pairOpposite(faces[0].Edge(0), faces[1].Edge(1)) // v0-v1
		pairOpposite(faces[0].Edge(1), faces[2].Edge(1)) // v1-v2
		pairOpposite(faces[0].Edge(2), faces[3].Edge(1)) // v2-v0
		pairOpposite(faces[1].Edge(0), faces[2].Edge(2)) // v1-v3
		pairOpposite(faces[1].Edge(2), faces[3].Edge(0)) // v0-v3
		pairOpposite(faces[2].Edge(0), faces[3].Edge(2)) // v2-v3
	} else {
		faces[0] = newTriangleFace(v0, v2, v1)
		faces[1] = newTriangleFace(v3, v0, v1)
		faces[2] = newTriangleFace(v3, v1, v2)
		faces[3] = newTriangleFace(v3, v2, v0)

		pairOpposite(faces[0].Edge(0), faces[3].Edge(1)) // v0-v2
		pairOpposite(faces[0].Edge(1), faces[2].Edge(1)) // v2-v1
		pairOpposite(faces[0].Edge(2), faces[1].Edge(1)) // v1-v0
		pairOpposite(faces[1].Edge(0), faces[3].Edge(2)) // v3-v0
		pairOpposite(faces[1].Edge(2), faces[2].Edge(0)) // v1-v3
		pairOpposite(faces[2].Edge(2), faces[3].Edge(0)) // v2-v3
	}

	for _, f := range faces {
		f.computeNormalAndCentroid(0)
		b.faces = append(b.faces, f)
	}

	vtx := [4]*Vertex{v0, v1, v2, v3}
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			if i == j {
				continue
			}
			if faces[i].DistanceToPlane(vtx[j].Point.Vector()) > b.tolerance {
				return nil, newInternalErrorf("initial simplex vertex %d lies outside face %d", j, i)
			}
		}
	}
	return faces[:], nil
}

func pairOpposite(a, b *HalfEdge) {
	a.Opposite = b
	b.Opposite = a
}

func component(p geometry.Point3D, axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

// buildHull runs QuickHull3D's incremental main loop, repeatedly picking
// an outside point and extending the hull to enclose it, until the
// conflict list is exhausted.
func (b *Builder) buildHull() error {
	for {
		eye := b.nextPointToAdd()
		if eye == nil {
			return nil
		}
		if err := b.addPointToHull(eye); err != nil {
			return err
		}
	}
}

// nextPointToAdd picks the next eye point: the vertex with greatest
// distance to its own face, restricted to the run belonging to the first
// non-empty face in the conflict list.
func (b *Builder) nextPointToAdd() *Vertex {
	if b.claimed.IsEmpty() {
		return nil
	}
	eyeFace := b.claimed.First().Face
	var eye *Vertex
	maxDist := 0.0
	for v := eyeFace.Outside; v != nil && v.Face == eyeFace; v = v.Next {
		dist := eyeFace.DistanceToPlane(v.Point.Vector())
		if dist > maxDist {
			maxDist, eye = dist, v
		}
	}
	return eye
}

// addPointToHull performs one iteration of the main loop: compute the
// horizon for eye, fan new faces across it, run the two merge passes, then
// resolve unclaimed points against the surviving new faces.
func (b *Builder) addPointToHull(eye *Vertex) error {
	eyeFace := eye.Face
	b.removePointFromFace(eye, eyeFace)
	eye.Face = nil

	var horizon []*HalfEdge
	b.computeHorizon(eye.Point.Vector(), nil, eyeFace, &horizon)

	newFaces := b.addNewFaces(eye, horizon)

	for _, f := range newFaces {
		if f.Mark != Visible {
			continue
		}
		for {
			merged, err := b.doAdjacentMerge(f, mergeNonConvexWRTLargerFace)
			if err != nil {
				return err
			}
			if !merged {
				break
			}
		}
	}
	for _, f := range newFaces {
		if f.Mark != NonConvex {
			continue
		}
		f.Mark = Visible
		for {
			merged, err := b.doAdjacentMerge(f, mergeNonConvex)
			if err != nil {
				return err
			}
			if !merged {
				break
			}
		}
	}

	b.resolveUnclaimedPoints(newFaces)
	return nil
}

// addNewFaces builds one triangle per horizon edge, pairing each new
// triangle's middle edge with the horizon edge's stable outer neighbor
// and ring-stitching the new triangles' side edges to each other.
func (b *Builder) addNewFaces(eye *Vertex, horizon []*HalfEdge) []*Face {
	n := len(horizon)
	newFaces := make([]*Face, n)
	left := make([]*HalfEdge, n)
	right := make([]*HalfEdge, n)

	for i, h := range horizon {
		face := newTriangleFace(eye, h.Tail(), h.Head())
		left[i] = face.FirstEdge
		mid := left[i].Next
		right[i] = mid.Next

		pairOpposite(mid, h.Opposite)

		face.computeNormalAndCentroid(b.minArea)
		b.faces = append(b.faces, face)
		newFaces[i] = face
	}

	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		pairOpposite(left[i], right[prev])
	}

	return newFaces
}

// resolveUnclaimedPoints re-tests every point that fell off a deleted or
// merged face and places it on whichever surviving new face it sits
// furthest above by more than tolerance; the scan stops early at the first
// face the point clears by more than 1000x tolerance. Points above no new
// face are dropped as interior.
func (b *Builder) resolveUnclaimedPoints(newFaces []*Face) {
	v := b.unclaimed.First()
	for v != nil {
		next := v.Next
		var best *Face
		bestDist := b.tolerance
		for _, f := range newFaces {
			if f.Mark != Visible {
				continue
			}
			d := f.DistanceToPlane(v.Point.Vector())
			if d > bestDist {
				bestDist, best = d, f
				if d > 1000*b.tolerance {
					break
				}
			}
		}
		if best != nil {
			b.addPointToFace(v, best)
		}
		v = next
	}
	b.unclaimed.Clear()
}

// extractResult compacts the surviving faces' vertices to 0..k-1 in
// first-appearance order and emits each face's boundary as an index list.
func (b *Builder) extractResult() *BuildResult {
	for _, v := range b.vertices {
		v.Index = -1
	}

	var visible []*Face
	for _, f := range b.faces {
		if f.Mark == Visible {
			visible = append(visible, f)
		}
	}

	for _, f := range visible {
		he := f.FirstEdge
		for {
			he.Vertex.Index = 0
			he = he.Next
			if he == f.FirstEdge {
				break
			}
		}
	}

	var outPoints []geometry.Point3D
	origOf := make([]int, 0, len(b.vertices))
	for _, v := range b.vertices {
		if v.Index == 0 {
			v.Index = len(outPoints)
			outPoints = append(outPoints, v.Point)
			origOf = append(origOf, v.InputIndex)
		}
	}

	polygons := make([][]int, 0, len(visible))
	for _, f := range visible {
		poly := make([]int, 0, f.Count)
		he := f.FirstEdge
		for {
			idx := he.Vertex.Index
			if b.opts.pointRelative {
				idx = origOf[idx]
			}
			if b.opts.oneBased {
				idx++
			}
			poly = append(poly, idx)
			he = he.Next
			if he == f.FirstEdge {
				break
			}
		}
		if b.opts.clockwise {
			for l, r := 0, len(poly)-1; l < r; l, r = l+1, r-1 {
				poly[l], poly[r] = poly[r], poly[l]
			}
		}
		polygons = append(polygons, poly)
	}

	return &BuildResult{Vertices: outPoints, Polygons: polygons, Tolerance: b.tolerance}
}
