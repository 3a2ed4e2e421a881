package geometry

// Point3D is the immutable input/output coordinate triple. Unlike
// Vector3 it carries no mutating methods; it is the wire form used at the
// edges of the hull package's API.
type Point3D struct {
	X, Y, Z float64
}

// Vector converts p to a Vector3 for use in arithmetic.
func (p Point3D) Vector() Vector3 {
	return Vector3{X: p.X, Y: p.Y, Z: p.Z}
}

// Extremes holds the axis-aligned bounding-box min/max over a point set.
type Extremes struct {
	Min, Max Point3D
}

// ComputeExtremes scans points for their axis-aligned bounding box.
// Panics if points is empty; callers are expected to have already
// checked the minimum-point-count precondition.
func ComputeExtremes(points []Point3D) Extremes {
	e := Extremes{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		if p.X < e.Min.X {
			e.Min.X = p.X
		}
		if p.Y < e.Min.Y {
			e.Min.Y = p.Y
		}
		if p.Z < e.Min.Z {
			e.Min.Z = p.Z
		}
		if p.X > e.Max.X {
			e.Max.X = p.X
		}
		if p.Y > e.Max.Y {
			e.Max.Y = p.Y
		}
		if p.Z > e.Max.Z {
			e.Max.Z = p.Z
		}
	}
	return e
}

// Tolerance computes the working epsilon per the fixed formula:
//
//	eps = 3 * 2^-52 * (max(|xmax|,|xmin|) + max(|ymax|,|ymin|) + max(|zmax|,|zmin|))
//
// The constant and its exact shape are load-bearing for the algorithm's
// robustness and must not be altered.
func Tolerance(e Extremes) float64 {
	const scale = 3 * epsMachine
	return scale * (absMax(e.Max.X, e.Min.X) + absMax(e.Max.Y, e.Min.Y) + absMax(e.Max.Z, e.Min.Z))
}

// epsMachine is 2^-52, the ULP of 1.0 in float64.
const epsMachine = 1.0 / (1 << 52)

func absMax(a, b float64) float64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	if a > b {
		return a
	}
	return b
}
