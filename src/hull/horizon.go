package hull

import "quickhull3d/src/geometry"

// computeHorizon performs a depth-first walk outward from face, deleting
// every visible face reachable from eye and recording the boundary
// half-edges where visibility stops. edge0/face identify where the walk
// currently is; the top-level call passes edge0 == nil to start at
// face.FirstEdge. Recursion depth is bounded by the number of visible
// faces from eye, which Go's growable goroutine stacks accommodate without
// an explicit work-list.
func (b *Builder) computeHorizon(eye geometry.Vector3, edge0 *HalfEdge, face *Face, horizon *[]*HalfEdge) {
	b.deleteFacePoints(face, nil)
	face.Mark = Deleted

	var edge *HalfEdge
	if edge0 == nil {
		edge0 = face.FirstEdge
		edge = edge0
	} else {
		edge = edge0.Next
	}

	for {
		oppFace := edge.OppositeFace()
		if oppFace.Mark == Visible {
			if oppFace.DistanceToPlane(eye) > b.tolerance {
				b.computeHorizon(eye, edge.Opposite, oppFace, horizon)
			} else {
				*horizon = append(*horizon, edge)
			}
		}
		edge = edge.Next
		if edge == edge0 {
			break
		}
	}
}

// deleteFacePoints removes face's entire outside run from the conflict
// list. If absorbingFace is nil the points flow into the transient
// unclaimed list; otherwise each is reassigned to absorbingFace when it
// lies above that face's plane by more than tolerance, else it too flows
// to unclaimed.
func (b *Builder) deleteFacePoints(face, absorbingFace *Face) {
	run := b.removeAllPointsFromFace(face)
	if run == nil {
		return
	}
	if absorbingFace == nil {
		b.unclaimed.AddAll(run)
		return
	}
	for v := run; v != nil; {
		next := v.Next
		v.Next = nil
		if absorbingFace.DistanceToPlane(v.Point.Vector()) > b.tolerance {
			b.addPointToFace(v, absorbingFace)
		} else {
			b.unclaimed.Add(v)
		}
		v = next
	}
}
