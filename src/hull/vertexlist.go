package hull

// VertexList is an intrusive doubly linked list of vertices, used both as
// the global claimed (conflict) list, partitioned into contiguous per-face
// runs, and as the transient unclaimed list during horizon processing.
type VertexList struct {
	first, last *Vertex
}

// First returns the head of the list, or nil if empty.
func (l *VertexList) First() *Vertex {
	return l.first
}

// IsEmpty reports whether the list has no vertices.
func (l *VertexList) IsEmpty() bool {
	return l.first == nil
}

// Clear empties the list without touching the vertices it referenced.
func (l *VertexList) Clear() {
	l.first, l.last = nil, nil
}

// Add appends v to the tail of the list.
func (l *VertexList) Add(v *Vertex) {
	if l.first == nil {
		l.first = v
	} else {
		l.last.Next = v
	}
	v.Prev = l.last
	v.Next = nil
	l.last = v
}

// AddAll appends the chain starting at v (following v.Next) to the tail of
// the list.
func (l *VertexList) AddAll(v *Vertex) {
	if l.first == nil {
		l.first = v
	} else {
		l.last.Next = v
	}
	v.Prev = l.last
	end := v
	for end.Next != nil {
		end = end.Next
	}
	l.last = end
}

// Delete unlinks a single vertex from the list.
func (l *VertexList) Delete(v *Vertex) {
	if v.Prev == nil {
		l.first = v.Next
	} else {
		v.Prev.Next = v.Next
	}
	if v.Next == nil {
		l.last = v.Prev
	} else {
		v.Next.Prev = v.Prev
	}
}

// DeleteRange unlinks the contiguous run [v1..v2] from the list. v2 must be
// reachable from v1 by following Next.
func (l *VertexList) DeleteRange(v1, v2 *Vertex) {
	if v1.Prev == nil {
		l.first = v2.Next
	} else {
		v1.Prev.Next = v2.Next
	}
	if v2.Next == nil {
		l.last = v1.Prev
	} else {
		v2.Next.Prev = v1.Prev
	}
}

// InsertBefore splices v into the list immediately before target.
func (l *VertexList) InsertBefore(v, target *Vertex) {
	v.Prev = target.Prev
	v.Next = target
	if target.Prev == nil {
		l.first = v
	} else {
		target.Prev.Next = v
	}
	target.Prev = v
}

// addPointToFace assigns v to face f's outside set, keeping the invariant
// that a face's claimed vertices form a contiguous run headed by f.Outside:
// a newcomer is always inserted immediately before the existing head, and
// becomes the new head.
func (b *Builder) addPointToFace(v *Vertex, f *Face) {
	v.Face = f
	if f.Outside == nil {
		b.claimed.Add(v)
	} else {
		b.claimed.InsertBefore(v, f.Outside)
	}
	f.Outside = v
}

// removePointFromFace detaches v from face f's outside run.
func (b *Builder) removePointFromFace(v *Vertex, f *Face) {
	if v == f.Outside {
		if v.Next != nil && v.Next.Face == f {
			f.Outside = v.Next
		} else {
			f.Outside = nil
		}
	}
	b.claimed.Delete(v)
}

// removeAllPointsFromFace splices f's entire outside run out of the
// claimed list and returns its head (with Next-links among the run left
// intact so callers can walk it), or nil if f has no outside points.
func (b *Builder) removeAllPointsFromFace(f *Face) *Vertex {
	if f.Outside == nil {
		return nil
	}
	end := f.Outside
	for end.Next != nil && end.Next.Face == f {
		end = end.Next
	}
	b.claimed.DeleteRange(f.Outside, end)
	end.Next = nil
	run := f.Outside
	f.Outside = nil
	return run
}
