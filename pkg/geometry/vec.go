/*
 * Copyright 2018 The Trickster Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package geometry provides the pure vector, polygon and projection math used to
// place, measure and validate scene overlays. Every function is free of side
// effects; degenerate input yields a documented sentinel value instead of an error.
package geometry

import "math"

// Epsilon is the tolerance used to detect degenerate (zero-length) geometry
const Epsilon = 1e-12

// Vec3 represents a 3D point or vector
type Vec3 struct {
	X, Y, Z float64
}

// V3 is a convenience function to create a Vec3
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns the sum of two vectors
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

// Sub returns the difference of two vectors
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{X: v.X - w.X, Y: v.Y - w.Y, Z: v.Z - w.Z}
}

// Scale returns the vector multiplied by a scalar
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of two vectors
func (v Vec3) Dot(w Vec3) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

// Cross returns the cross product of two vectors
func (v Vec3) Cross(w Vec3) Vec3 {
	return Vec3{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

// Length returns the magnitude of the vector
func (v Vec3) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// Normalize returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < Epsilon {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// IsZero returns true if every component is within Epsilon of zero
func (v Vec3) IsZero() bool {
	return math.Abs(v.X) < Epsilon && math.Abs(v.Y) < Epsilon && math.Abs(v.Z) < Epsilon
}

// Approx returns true if v and w differ by no more than tol on every axis
func (v Vec3) Approx(w Vec3, tol float64) bool {
	return math.Abs(v.X-w.X) <= tol && math.Abs(v.Y-w.Y) <= tol && math.Abs(v.Z-w.Z) <= tol
}

// Point2 represents a 2D point, typically on a roof plane or the screen
type Point2 struct {
	X, Y float64
}

// P2 is a convenience function to create a Point2
func P2(x, y float64) Point2 {
	return Point2{X: x, Y: y}
}

// Vec3 lifts the point onto the z=0 plane
func (p Point2) Vec3() Vec3 {
	return Vec3{X: p.X, Y: p.Y}
}

// SurfaceNormal returns the unit normal of the plane through p1, p2 and p3,
// following the right-hand rule over the edges p1->p2 and p1->p3.
// Collinear or coincident points yield the zero vector; callers must check IsZero.
func SurfaceNormal(p1, p2, p3 Vec3) Vec3 {
	return p2.Sub(p1).Cross(p3.Sub(p1)).Normalize()
}

// AngleBetween returns the angle between two vectors in degrees, in [0, 180].
// If either vector has zero length, 0 is returned.
func AngleBetween(v1, v2 Vec3) float64 {
	if v1.Length()*v2.Length() < Epsilon {
		return 0
	}
	// atan2 stays accurate near 0 and 180 degrees, where acos does not
	return RadToDeg(math.Atan2(v1.Cross(v2).Length(), v1.Dot(v2)))
}

// Distance returns the euclidean distance between two points
func Distance(p1, p2 Vec3) float64 {
	return p2.Sub(p1).Length()
}

// SnapToGrid rounds each component of p to the nearest multiple of step.
// A step <= 0 returns p unchanged.
func SnapToGrid(p Vec3, step float64) Vec3 {
	if step <= 0 {
		return p
	}
	return Vec3{
		X: math.Round(p.X/step) * step,
		Y: math.Round(p.Y/step) * step,
		Z: math.Round(p.Z/step) * step,
	}
}

// DegToRad converts degrees to radians
func DegToRad(d float64) float64 {
	return d * math.Pi / 180
}

// RadToDeg converts radians to degrees
func RadToDeg(r float64) float64 {
	return r * 180 / math.Pi
}
