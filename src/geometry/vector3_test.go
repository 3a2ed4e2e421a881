package geometry

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVector3InPlaceOps(t *testing.T) {
	for idx, tc := range []struct {
		start, arg, wantAdd, wantSub Vector3
		scale                        float64
		wantScale                    Vector3
	}{
		{
			start: Vector3{1, 2, 3}, arg: Vector3{1, 1, 1},
			wantAdd: Vector3{2, 3, 4}, wantSub: Vector3{0, 1, 2},
			scale: 2, wantScale: Vector3{2, 4, 6},
		},
		{
			start: Vector3{0, 0, 0}, arg: Vector3{-1, -2, -3},
			wantAdd: Vector3{-1, -2, -3}, wantSub: Vector3{1, 2, 3},
			scale: 0, wantScale: Vector3{0, 0, 0},
		},
	} {
		t.Run(tcName(idx), func(t *testing.T) {
			add := tc.start.Copy()
			add.Add(tc.arg)
			require.Equal(t, tc.wantAdd, add)

			sub := tc.start.Copy()
			sub.Sub(tc.arg)
			require.Equal(t, tc.wantSub, sub)

			scale := tc.start.Copy()
			scale.Scale(tc.scale)
			require.Equal(t, tc.wantScale, scale)
		})
	}
}

func TestCrossDotLength(t *testing.T) {
	x := Vector3{1, 0, 0}
	y := Vector3{0, 1, 0}
	z := Vector3{0, 0, 1}

	require.Equal(t, z, Cross(x, y))
	require.Equal(t, 0.0, Dot(x, y))
	require.Equal(t, 1.0, Dot(x, x))
	require.Equal(t, 1.0, x.Length())
	require.Equal(t, 25.0, Vector3{3, 4, 0}.LengthSquared())
	require.Equal(t, 5.0, Vector3{3, 4, 0}.Length())
}

func TestNormalize(t *testing.T) {
	n := Vector3{3, 4, 0}.Normalize()
	require.InDelta(t, 1.0, n.Length(), 1e-12)

	zero := Vector3{}.Normalize()
	require.Equal(t, Vector3{}, zero)
}

func tcName(i int) string {
	return "case_" + string(rune('a'+i))
}
