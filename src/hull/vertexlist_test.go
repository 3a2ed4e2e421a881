package hull

import (
	"testing"

	"github.com/stretchr/testify/require"

	"quickhull3d/src/geometry"
)

func newVertex(i int) *Vertex {
	return &Vertex{Point: geometry.Point3D{X: float64(i)}, InputIndex: i, Index: -1}
}

func TestVertexListAddAndDelete(t *testing.T) {
	var l VertexList
	require.True(t, l.IsEmpty())

	a, b, c := newVertex(0), newVertex(1), newVertex(2)
	l.Add(a)
	l.Add(b)
	l.Add(c)
	require.False(t, l.IsEmpty())
	require.Same(t, a, l.First())

	l.Delete(b)
	require.Same(t, a, l.first)
	require.Same(t, c, a.Next)
	require.Same(t, a, c.Prev)
}

func TestVertexListAddAllAndDeleteRange(t *testing.T) {
	var l VertexList
	a, b, c, d := newVertex(0), newVertex(1), newVertex(2), newVertex(3)
	l.Add(a)

	b.Next = c
	c.Prev = b
	l.AddAll(b)
	l.Add(d)
	require.Equal(t, []int{0, 1, 2, 3}, walkIndices(&l))

	l.DeleteRange(b, c)
	require.Equal(t, []int{0, 3}, walkIndices(&l))
}

func TestVertexListInsertBefore(t *testing.T) {
	var l VertexList
	a, b := newVertex(0), newVertex(1)
	l.Add(a)
	l.Add(b)

	x := newVertex(99)
	l.InsertBefore(x, b)
	require.Equal(t, []int{0, 99, 1}, walkIndices(&l))

	y := newVertex(-1)
	l.InsertBefore(y, a)
	require.Same(t, y, l.First())
	require.Equal(t, []int{-1, 0, 99, 1}, walkIndices(&l))
}

func TestAddPointToFaceMaintainsContiguousRun(t *testing.T) {
	b := &Builder{}
	f := &Face{}

	v1, v2, v3 := newVertex(1), newVertex(2), newVertex(3)
	b.addPointToFace(v1, f)
	b.addPointToFace(v2, f)
	b.addPointToFace(v3, f)

	require.Same(t, v3, f.Outside)
	require.Equal(t, []int{3, 2, 1}, walkIndices(&b.claimed))

	run := b.removeAllPointsFromFace(f)
	require.Same(t, v3, run)
	require.Nil(t, f.Outside)
	require.True(t, b.claimed.IsEmpty())
}

func TestRemovePointFromFaceUpdatesHeadWhenHeadRemoved(t *testing.T) {
	b := &Builder{}
	f := &Face{}
	v1, v2 := newVertex(1), newVertex(2)
	b.addPointToFace(v1, f)
	b.addPointToFace(v2, f) // v2 is head

	b.removePointFromFace(v2, f)
	require.Same(t, v1, f.Outside)
}

func walkIndices(l *VertexList) []int {
	var out []int
	for v := l.First(); v != nil; v = v.Next {
		out = append(out, v.InputIndex)
	}
	return out
}
