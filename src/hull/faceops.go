package hull

import "quickhull3d/src/geometry"

// computeNormalAndCentroid recomputes a face's centroid, normal, plane
// offset, and vertex count from its current boundary ring. minArea is 0
// for the initial tetrahedron's faces, whose four vertices are chosen
// specifically to avoid degeneracy; every face created or reshaped
// afterward (new-face fan, merges) passes the module's fixed
// tolerance-derived threshold instead, since a thin sliver can appear at
// any point in the incremental process and the same degenerate-area
// stabilization guards all of them.
func (f *Face) computeNormalAndCentroid(minArea float64) {
	f.computeCentroid()
	f.computeNormal(minArea)
	f.PlaneOffset = geometry.Dot(f.Normal, f.Centroid)

	n := 0
	he := f.FirstEdge
	for {
		n++
		he = he.Next
		if he == f.FirstEdge {
			break
		}
	}
	f.Count = n
}

func (f *Face) computeCentroid() {
	var c geometry.Vector3
	n := 0
	he := f.FirstEdge
	for {
		c.Add(he.Head().Point.Vector())
		n++
		he = he.Next
		if he == f.FirstEdge {
			break
		}
	}
	c.Scale(1 / float64(n))
	f.Centroid = c
}

// computeNormal sums the cross products of a triangle fan anchored at the
// boundary's tail vertex, then normalizes. If the resulting area falls
// below minArea the normal is stabilized by projecting out the component
// along the face's longest edge before renormalizing.
func (f *Face) computeNormal(minArea float64) {
	p0 := f.FirstEdge.Tail().Point.Vector()
	prev := geometry.Diff(f.FirstEdge.Head().Point.Vector(), p0)

	var normal geometry.Vector3
	he := f.FirstEdge.Next
	for he != f.FirstEdge {
		cur := geometry.Diff(he.Head().Point.Vector(), p0)
		normal.Add(geometry.Cross(prev, cur))
		prev = cur
		he = he.Next
	}

	area := normal.Length()
	f.Area = area * 0.5
	if area > 0 {
		normal.Scale(1 / area)
	}
	if minArea > 0 && area < minArea {
		stabilizeNormal(f, &normal)
	}
	f.Normal = normal
}

func stabilizeNormal(f *Face, normal *geometry.Vector3) {
	var longest *HalfEdge
	maxLenSq := 0.0
	he := f.FirstEdge
	for {
		lenSq := he.LengthSquared()
		if lenSq > maxLenSq {
			maxLenSq = lenSq
			longest = he
		}
		he = he.Next
		if he == f.FirstEdge {
			break
		}
	}
	if longest == nil || maxLenSq == 0 {
		return
	}
	u := geometry.Diff(longest.Head().Point.Vector(), longest.Tail().Point.Vector()).Normalize()
	dot := geometry.Dot(*normal, u)
	normal.X -= dot * u.X
	normal.Y -= dot * u.Y
	normal.Z -= dot * u.Z
	*normal = normal.Normalize()
}

// mergeType selects which of doAdjacentMerge's two merge predicates
// applies: the first pass merges across an edge only when the larger face
// of the pair (by area) sees the other as non-convex, and marks the face
// NonConvex when only the smaller one does; the second pass merges
// whenever either face sees the other as non-convex. In both passes the
// neighbor is absorbed into the face being processed.
type mergeType int

const (
	mergeNonConvexWRTLargerFace mergeType = iota
	mergeNonConvex
)

// doAdjacentMerge attempts one merge of face with a neighbor across one of
// its boundary edges, per the predicate named by kind. It returns whether
// a merge happened; on merge, all of the absorbed face's (and any
// collaterally discarded faces') orphaned conflict points are reassigned
// to face or moved to unclaimed.
func (b *Builder) doAdjacentMerge(face *Face, kind mergeType) (bool, error) {
	he := face.FirstEdge
	convex := true
	for {
		oppFace := he.OppositeFace()
		merge := false

		switch kind {
		case mergeNonConvex:
			if he.OppFaceDistance() > -b.tolerance || he.Opposite.OppFaceDistance() > -b.tolerance {
				merge = true
			}
		default:
			if face.Area > oppFace.Area {
				if he.OppFaceDistance() > -b.tolerance {
					merge = true
				} else if he.Opposite.OppFaceDistance() > -b.tolerance {
					convex = false
				}
			} else {
				if he.Opposite.OppFaceDistance() > -b.tolerance {
					merge = true
				} else if he.OppFaceDistance() > -b.tolerance {
					convex = false
				}
			}
		}

		if merge {
			discarded, err := face.mergeAdjacentFace(he, b.minArea)
			if err != nil {
				return false, err
			}
			for _, d := range discarded {
				b.deleteFacePoints(d, face)
			}
			return true, nil
		}

		he = he.Next
		if he == face.FirstEdge {
			break
		}
	}
	if !convex {
		face.Mark = NonConvex
	}
	return false, nil
}

// mergeAdjacentFace absorbs the face across hedgeAdj into f: walk the
// shared boundary run, reassign the non-shared portion of the neighbor's
// edges to f, stitch the two remaining joins (which may collaterally
// collapse a redundant-edge neighbor), and recompute f's plane. It
// returns every face marked Deleted as a side effect.
func (f *Face) mergeAdjacentFace(hedgeAdj *HalfEdge, minArea float64) ([]*Face, error) {
	oppFace := hedgeAdj.OppositeFace()
	discarded := []*Face{oppFace}
	oppFace.Mark = Deleted

	hedgeOpp := hedgeAdj.Opposite

	hedgeAdjPrev := hedgeAdj.Prev
	hedgeAdjNext := hedgeAdj.Next
	hedgeOppPrev := hedgeOpp.Prev
	hedgeOppNext := hedgeOpp.Next

	for hedgeAdjPrev.OppositeFace() == oppFace {
		hedgeAdjPrev = hedgeAdjPrev.Prev
		hedgeOppNext = hedgeOppNext.Next
	}
	for hedgeAdjNext.OppositeFace() == oppFace {
		hedgeOppPrev = hedgeOppPrev.Prev
		hedgeAdjNext = hedgeAdjNext.Next
	}

	for he := hedgeOppNext; he != hedgeOppPrev.Next; he = he.Next {
		he.Face = f
	}

	if hedgeAdj == f.FirstEdge {
		f.FirstEdge = hedgeAdjNext
	}

	if d := f.connectHalfEdges(hedgeOppPrev, hedgeAdjNext, minArea); d != nil {
		discarded = append(discarded, d)
	}
	if d := f.connectHalfEdges(hedgeAdjPrev, hedgeOppNext, minArea); d != nil {
		discarded = append(discarded, d)
	}

	f.computeNormalAndCentroid(minArea)
	if err := f.checkConsistency(); err != nil {
		return nil, err
	}
	return discarded, nil
}

// connectHalfEdges joins hedgePrev to hedge. If the two already share the
// same opposite face, that neighbor has become redundant along this join;
// it is either deleted outright (if it was a triangle) or shrunk by one
// edge. A deleted neighbor is returned as collaterally discarded so the
// caller can propagate that too; otherwise the result is nil.
func (f *Face) connectHalfEdges(hedgePrev, hedge *HalfEdge, minArea float64) *Face {
	if hedgePrev.OppositeFace() != hedge.OppositeFace() {
		hedgePrev.Next = hedge
		hedge.Prev = hedgePrev
		return nil
	}

	oppFace := hedge.OppositeFace()
	var discarded *Face
	var hedgeOpp *HalfEdge

	if hedgePrev == f.FirstEdge {
		f.FirstEdge = hedge
	}

	if oppFace.Count == 3 {
		hedgeOpp = hedge.Opposite.Prev.Opposite
		oppFace.Mark = Deleted
		discarded = oppFace
	} else {
		hedgeOpp = hedge.Opposite.Next
		if oppFace.FirstEdge == hedgeOpp.Prev {
			oppFace.FirstEdge = hedgeOpp
		}
		hedgeOpp.Prev = hedgeOpp.Prev.Prev
		hedgeOpp.Prev.Next = hedgeOpp
	}

	hedge.Prev = hedgePrev.Prev
	hedge.Prev.Next = hedge

	hedge.Opposite = hedgeOpp
	hedgeOpp.Opposite = hedge

	if discarded == nil {
		oppFace.computeNormalAndCentroid(minArea)
	}
	return discarded
}

// checkConsistency verifies the half-edge invariants (opposite is an
// involution, tail/head agree with the neighboring edge, no face borders
// itself, the boundary ring's length matches its recorded count) for a
// single face's boundary ring.
func (f *Face) checkConsistency() error {
	he := f.FirstEdge
	n := 0
	for {
		if he.Opposite == nil {
			return newInternalErrorf("face has a half-edge with no opposite")
		}
		if he.Opposite.Opposite != he {
			return newInternalErrorf("opposite is not an involution")
		}
		if he.Opposite.Vertex != he.Tail() {
			return newInternalErrorf("half-edge/opposite tail mismatch")
		}
		if he.Vertex != he.Opposite.Tail() {
			return newInternalErrorf("half-edge/opposite head mismatch")
		}
		if he.OppositeFace() == f {
			return newInternalErrorf("face is its own neighbor")
		}
		n++
		he = he.Next
		if he == f.FirstEdge {
			break
		}
	}
	if n != f.Count {
		return newInternalErrorf("face vertex count mismatch: walked %d, recorded %d", n, f.Count)
	}
	if n < 3 {
		return newInternalErrorf("visible face has fewer than 3 vertices")
	}
	return nil
}
