package hull

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"quickhull3d/src/geometry"
)

func triVertex(x, y, z float64, idx int) *Vertex {
	return &Vertex{Point: geometry.Point3D{X: x, Y: y, Z: z}, InputIndex: idx, Index: -1}
}

func TestComputeNormalAndCentroidRightTriangle(t *testing.T) {
	v0 := triVertex(0, 0, 0, 0)
	v1 := triVertex(1, 0, 0, 1)
	v2 := triVertex(0, 1, 0, 2)
	f := newTriangleFace(v0, v1, v2)

	f.computeNormalAndCentroid(0)

	require.InDelta(t, 0, f.Normal.X, 1e-12)
	require.InDelta(t, 0, f.Normal.Y, 1e-12)
	require.InDelta(t, 1, math.Abs(f.Normal.Z), 1e-12)
	require.InDelta(t, 0.5, f.Area, 1e-12)
	require.Equal(t, 3, f.Count)
	require.InDelta(t, 1.0/3, f.Centroid.X, 1e-12)
	require.InDelta(t, 1.0/3, f.Centroid.Y, 1e-12)
}

func TestComputeNormalStabilizesDegenerateArea(t *testing.T) {
	// Nearly colinear triangle: nonzero but tiny area.
	v0 := triVertex(0, 0, 0, 0)
	v1 := triVertex(1, 0, 0, 1)
	v2 := triVertex(2, 1e-9, 0, 2)
	f := newTriangleFace(v0, v1, v2)

	f.computeNormalAndCentroid(1e-3)

	require.InDelta(t, 1.0, f.Normal.Length(), 1e-9)
}

func TestDistanceToPlane(t *testing.T) {
	v0 := triVertex(0, 0, 0, 0)
	v1 := triVertex(1, 0, 0, 1)
	v2 := triVertex(0, 1, 0, 2)
	f := newTriangleFace(v0, v1, v2)
	f.computeNormalAndCentroid(0)

	above := geometry.Vector3{X: 0.2, Y: 0.2, Z: 3}
	require.InDelta(t, 3, f.DistanceToPlane(above), 1e-12)
}

func TestCheckConsistencyDetectsMissingOpposite(t *testing.T) {
	v0 := triVertex(0, 0, 0, 0)
	v1 := triVertex(1, 0, 0, 1)
	v2 := triVertex(0, 1, 0, 2)
	f := newTriangleFace(v0, v1, v2)

	err := f.checkConsistency()
	require.Error(t, err)
	var ie *InternalError
	require.ErrorAs(t, err, &ie)
}

func TestCheckConsistencyPassesOnClosedTetrahedron(t *testing.T) {
	b := NewBuilder()
	points := []geometry.Point3D{
		{X: 0, Y: 0, Z: 0}, {X: 4, Y: 0, Z: 0}, {X: 0, Y: 4, Z: 0}, {X: 0, Y: 0, Z: 4},
	}
	_, err := b.Build(points)
	require.NoError(t, err)
	require.Len(t, b.faces, 4)
	for _, f := range b.faces {
		require.NoError(t, f.checkConsistency())
	}
}
