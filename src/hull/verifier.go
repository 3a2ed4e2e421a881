package hull

import (
	"fmt"

	"quickhull3d/src/geometry"
)

// Verifier is a black-box diagnostic sink over a BuildResult and the
// original input point list: it derives face planes and adjacency purely
// from the polygon index lists and never touches the internal half-edge
// mesh.
type Verifier struct {
	result *BuildResult
	input  []geometry.Point3D
}

// NewVerifier builds a Verifier for result against the points originally
// passed to Build.
func NewVerifier(result *BuildResult, input []geometry.Point3D) *Verifier {
	return &Verifier{result: result, input: input}
}

type verifierFace struct {
	indices []int
	normal  geometry.Vector3
	offset  float64
}

// Check runs the full diagnostic suite, reporting every failure found to
// sink, and returns whether the hull passed. The tolerance defaults to the
// build's own tolerance and an optional explicit value overrides it. The
// convexity check uses that tolerance; the input-point containment check
// uses 10x that tolerance, since containment is deliberately coarser than
// construction itself.
func (v *Verifier) Check(sink func(string), tolerance ...float64) bool {
	tol := v.result.Tolerance
	if len(tolerance) > 0 {
		tol = tolerance[0]
	}

	ok := true
	report := func(format string, args ...interface{}) {
		ok = false
		sink(fmt.Sprintf(format, args...))
	}

	if len(v.result.Polygons) == 0 {
		report("result has no faces")
		return false
	}

	faces := make([]verifierFace, len(v.result.Polygons))
	for i, poly := range v.result.Polygons {
		if len(poly) < 3 {
			report("face %d has fewer than 3 vertices", i)
			continue
		}
		n, off := v.planeOf(poly)
		faces[i] = verifierFace{indices: poly, normal: n, offset: off}
	}

	v.checkConvexity(faces, tol, report)
	v.checkNoRedundantEdges(faces, report)
	v.checkContainment(faces, 10*tol, report)

	return ok
}

func (v *Verifier) planeOf(poly []int) (geometry.Vector3, float64) {
	p0 := v.result.Vertices[poly[0]].Vector()
	prev := geometry.Diff(v.result.Vertices[poly[1]].Vector(), p0)
	var normal geometry.Vector3
	for i := 2; i < len(poly); i++ {
		cur := geometry.Diff(v.result.Vertices[poly[i]].Vector(), p0)
		normal.Add(geometry.Cross(prev, cur))
		prev = cur
	}
	normal = normal.Normalize()
	var centroid geometry.Vector3
	for _, idx := range poly {
		centroid.Add(v.result.Vertices[idx].Vector())
	}
	centroid.Scale(1 / float64(len(poly)))
	return normal, geometry.Dot(normal, centroid)
}

// checkConvexity verifies edge-local convexity: for every directed edge of
// every face, the face across that edge (found by matching the reversed
// edge in another polygon) must not lie strictly outside this face's
// plane by more than tol.
func (v *Verifier) checkConvexity(faces []verifierFace, tol float64, report func(string, ...interface{})) {
	type edgeKey struct{ a, b int }
	owner := make(map[edgeKey]int, len(faces)*3)
	for fi, f := range faces {
		for i := range f.indices {
			a, b := f.indices[i], f.indices[(i+1)%len(f.indices)]
			owner[edgeKey{a, b}] = fi
		}
	}
	for fi, f := range faces {
		for i := range f.indices {
			a, b := f.indices[i], f.indices[(i+1)%len(f.indices)]
			nfi, ok := owner[edgeKey{b, a}]
			if !ok {
				report("face %d edge (%d,%d) has no matching reverse edge", fi, a, b)
				continue
			}
			nf := faces[nfi]
			for _, idx := range nf.indices {
				d := geometry.Dot(f.normal, v.result.Vertices[idx].Vector()) - f.offset
				if d > tol {
					report("face %d is non-convex with respect to face %d (vertex %d at distance %g)", fi, nfi, idx, d)
					break
				}
			}
		}
	}
}

// checkNoRedundantEdges verifies that no two edges of the same face share
// the same opposite face, which would indicate a merge that should have
// collapsed the shared edge.
func (v *Verifier) checkNoRedundantEdges(faces []verifierFace, report func(string, ...interface{})) {
	type edgeKey struct{ a, b int }
	owner := make(map[edgeKey]int, len(faces)*3)
	for fi, f := range faces {
		for i := range f.indices {
			a, b := f.indices[i], f.indices[(i+1)%len(f.indices)]
			owner[edgeKey{a, b}] = fi
		}
	}
	for fi, f := range faces {
		seen := make(map[int]int)
		for i := range f.indices {
			a, b := f.indices[i], f.indices[(i+1)%len(f.indices)]
			nfi, ok := owner[edgeKey{b, a}]
			if !ok {
				continue
			}
			if prev, dup := seen[nfi]; dup {
				report("face %d has redundant edges (%d,%d) both bordering face %d", fi, prev, i, nfi)
			}
			seen[nfi] = i
		}
	}
}

// checkContainment verifies that every original input point lies on or
// inside every face's plane, within tol.
func (v *Verifier) checkContainment(faces []verifierFace, tol float64, report func(string, ...interface{})) {
	for pi, p := range v.input {
		for fi, f := range faces {
			d := geometry.Dot(f.normal, p.Vector()) - f.offset
			if d > tol {
				report("input point %d lies outside face %d by %g", pi, fi, d)
			}
		}
	}
}
