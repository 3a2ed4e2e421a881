package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"quickhull3d/src/hull"
)

func TestReadPointsFromFile(t *testing.T) {
	tmp := filepath.Join(t.TempDir(), "points.json")
	require.NoError(t, os.WriteFile(tmp, []byte(`[{"X":0,"Y":0,"Z":0},{"X":1,"Y":0,"Z":0}]`), 0o644))

	points, err := readPoints(tmp)
	require.NoError(t, err)
	require.Len(t, points, 2)
	require.Equal(t, 1.0, points[1].X)
}

func TestWriteMesh(t *testing.T) {
	result := &hull.BuildResult{
		Vertices: nil,
		Polygons: [][]int{{0, 1, 2}},
	}
	var buf bytes.Buffer
	require.NoError(t, writeMesh(&buf, result))
	require.True(t, strings.Contains(buf.String(), "\"faces\""))
}
