// Command quickhull computes the convex hull of a JSON point list read
// from stdin or a file, and writes the resulting mesh (or a one-line
// summary) to stdout.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"

	"quickhull3d/src/geometry"
	"quickhull3d/src/hull"
)

type inputPoint struct {
	X, Y, Z float64
}

type outputMesh struct {
	Vertices []inputPoint `json:"vertices"`
	Faces    [][]int      `json:"faces"`
}

func main() {
	inputPath := flag.String("input", "", "path to a JSON point list; defaults to stdin")
	summary := flag.Bool("summary", false, "print a one-line summary instead of the full mesh")
	oneBased := flag.Bool("one-based", false, "emit 1-based face indices")
	clockwise := flag.Bool("clockwise", false, "wind face indices clockwise")
	verify := flag.Bool("verify", false, "run the diagnostic verifier and print any findings to stderr")
	flag.Parse()

	if err := run(*inputPath, *summary, *oneBased, *clockwise, *verify); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(inputPath string, summary, oneBased, clockwise, verify bool) error {
	points, err := readPoints(inputPath)
	if err != nil {
		return errors.Wrap(err, "reading input points")
	}

	var opts []hull.Option
	if oneBased {
		opts = append(opts, hull.WithOneBasedIndices())
	}
	if clockwise {
		opts = append(opts, hull.WithClockwiseWinding())
	}

	b := hull.NewBuilder(opts...)
	result, err := b.Build(points)
	if err != nil {
		return errors.Wrap(err, "building hull")
	}

	if verify {
		v := hull.NewVerifier(result, points)
		v.Check(func(msg string) { fmt.Fprintln(os.Stderr, "verify:", msg) })
	}

	if summary {
		fmt.Println(result.String())
		return nil
	}
	return writeMesh(os.Stdout, result)
}

func readPoints(path string) ([]geometry.Point3D, error) {
	var r io.Reader = os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		defer f.Close()
		r = f
	}

	var raw []inputPoint
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, errors.WithStack(err)
	}

	points := make([]geometry.Point3D, len(raw))
	for i, p := range raw {
		points[i] = geometry.Point3D{X: p.X, Y: p.Y, Z: p.Z}
	}
	return points, nil
}

func writeMesh(w io.Writer, result *hull.BuildResult) error {
	mesh := outputMesh{
		Vertices: make([]inputPoint, len(result.Vertices)),
		Faces:    result.Polygons,
	}
	for i, p := range result.Vertices {
		mesh.Vertices[i] = inputPoint{X: p.X, Y: p.Y, Z: p.Z}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.WithStack(enc.Encode(mesh))
}
