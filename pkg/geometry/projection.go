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

package geometry

import "math"

// Mat4 is a 4x4 matrix stored in row-major order. Points are treated as column
// vectors, so M.MulVec4(v) computes M * v and A.Mul(B) applies B first.
type Mat4 [16]float64

// Identity returns the identity matrix
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// At returns the element at the given row and column
func (m Mat4) At(row, col int) float64 {
	return m[row*4+col]
}

// Mul returns the matrix product m * n
func (m Mat4) Mul(n Mat4) Mat4 {
	var r Mat4
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[row*4+k] * n[k*4+col]
			}
			r[row*4+col] = s
		}
	}
	return r
}

// MulVec4 returns m * (x, y, z, w)
func (m Mat4) MulVec4(x, y, z, w float64) (float64, float64, float64, float64) {
	return m[0]*x + m[1]*y + m[2]*z + m[3]*w,
		m[4]*x + m[5]*y + m[6]*z + m[7]*w,
		m[8]*x + m[9]*y + m[10]*z + m[11]*w,
		m[12]*x + m[13]*y + m[14]*z + m[15]*w
}

// TransformPoint applies m to p with w=1 and performs the perspective divide.
// If the resulting w is zero, the undivided coordinates are returned with false.
func (m Mat4) TransformPoint(p Vec3) (Vec3, bool) {
	x, y, z, w := m.MulVec4(p.X, p.Y, p.Z, 1)
	if math.Abs(w) < Epsilon {
		return Vec3{X: x, Y: y, Z: z}, false
	}
	return Vec3{X: x / w, Y: y / w, Z: z / w}, true
}

// Invert returns the inverse of m. A singular matrix returns the zero matrix
// and false.
func (m Mat4) Invert() (Mat4, bool) {
	var inv Mat4
	inv[0] = m[5]*m[10]*m[15] - m[5]*m[11]*m[14] - m[9]*m[6]*m[15] +
		m[9]*m[7]*m[14] + m[13]*m[6]*m[11] - m[13]*m[7]*m[10]
	inv[4] = -m[4]*m[10]*m[15] + m[4]*m[11]*m[14] + m[8]*m[6]*m[15] -
		m[8]*m[7]*m[14] - m[12]*m[6]*m[11] + m[12]*m[7]*m[10]
	inv[8] = m[4]*m[9]*m[15] - m[4]*m[11]*m[13] - m[8]*m[5]*m[15] +
		m[8]*m[7]*m[13] + m[12]*m[5]*m[11] - m[12]*m[7]*m[9]
	inv[12] = -m[4]*m[9]*m[14] + m[4]*m[10]*m[13] + m[8]*m[5]*m[14] -
		m[8]*m[6]*m[13] - m[12]*m[5]*m[10] + m[12]*m[6]*m[9]
	inv[1] = -m[1]*m[10]*m[15] + m[1]*m[11]*m[14] + m[9]*m[2]*m[15] -
		m[9]*m[3]*m[14] - m[13]*m[2]*m[11] + m[13]*m[3]*m[10]
	inv[5] = m[0]*m[10]*m[15] - m[0]*m[11]*m[14] - m[8]*m[2]*m[15] +
		m[8]*m[3]*m[14] + m[12]*m[2]*m[11] - m[12]*m[3]*m[10]
	inv[9] = -m[0]*m[9]*m[15] + m[0]*m[11]*m[13] + m[8]*m[1]*m[15] -
		m[8]*m[3]*m[13] - m[12]*m[1]*m[11] + m[12]*m[3]*m[9]
	inv[13] = m[0]*m[9]*m[14] - m[0]*m[10]*m[13] - m[8]*m[1]*m[14] +
		m[8]*m[2]*m[13] + m[12]*m[1]*m[10] - m[12]*m[2]*m[9]
	inv[2] = m[1]*m[6]*m[15] - m[1]*m[7]*m[14] - m[5]*m[2]*m[15] +
		m[5]*m[3]*m[14] + m[13]*m[2]*m[7] - m[13]*m[3]*m[6]
	inv[6] = -m[0]*m[6]*m[15] + m[0]*m[7]*m[14] + m[4]*m[2]*m[15] -
		m[4]*m[3]*m[14] - m[12]*m[2]*m[7] + m[12]*m[3]*m[6]
	inv[10] = m[0]*m[5]*m[15] - m[0]*m[7]*m[13] - m[4]*m[1]*m[15] +
		m[4]*m[3]*m[13] + m[12]*m[1]*m[7] - m[12]*m[3]*m[5]
	inv[14] = -m[0]*m[5]*m[14] + m[0]*m[6]*m[13] + m[4]*m[1]*m[14] -
		m[4]*m[2]*m[13] - m[12]*m[1]*m[6] + m[12]*m[2]*m[5]
	inv[3] = -m[1]*m[6]*m[11] + m[1]*m[7]*m[10] + m[5]*m[2]*m[11] -
		m[5]*m[3]*m[10] - m[9]*m[2]*m[7] + m[9]*m[3]*m[6]
	inv[7] = m[0]*m[6]*m[11] - m[0]*m[7]*m[10] - m[4]*m[2]*m[11] +
		m[4]*m[3]*m[10] + m[8]*m[2]*m[7] - m[8]*m[3]*m[6]
	inv[11] = -m[0]*m[5]*m[11] + m[0]*m[7]*m[9] + m[4]*m[1]*m[11] -
		m[4]*m[3]*m[9] - m[8]*m[1]*m[7] + m[8]*m[3]*m[5]
	inv[15] = m[0]*m[5]*m[10] - m[0]*m[6]*m[9] - m[4]*m[1]*m[10] +
		m[4]*m[2]*m[9] + m[8]*m[1]*m[6] - m[8]*m[2]*m[5]

	det := m[0]*inv[0] + m[1]*inv[4] + m[2]*inv[8] + m[3]*inv[12]
	if math.Abs(det) < Epsilon {
		return Mat4{}, false
	}
	det = 1 / det
	for i := range inv {
		inv[i] *= det
	}
	return inv, true
}

// Perspective returns a right-handed perspective projection mapping the view
// frustum to normalized device coordinates in [-1, 1] on every axis.
// fovY is the vertical field of view in degrees.
func Perspective(fovY, aspect, near, far float64) Mat4 {
	f := 1 / math.Tan(DegToRad(fovY)/2)
	nf := 1 / (near - far)
	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, 2 * far * near * nf,
		0, 0, -1, 0,
	}
}

// LookAt returns a view matrix for a camera at eye looking toward target.
// The camera looks down its local -Z axis.
func LookAt(eye, target, up Vec3) Mat4 {
	z := eye.Sub(target).Normalize()
	x := up.Cross(z).Normalize()
	y := z.Cross(x)
	return Mat4{
		x.X, x.Y, x.Z, -x.Dot(eye),
		y.X, y.Y, y.Z, -y.Dot(eye),
		z.X, z.Y, z.Z, -z.Dot(eye),
		0, 0, 0, 1,
	}
}

// ViewTransform pairs a camera's view matrix with its projection
type ViewTransform struct {
	View       Mat4
	Projection Mat4
}

// NewViewTransform returns a ViewTransform for a perspective camera
func NewViewTransform(eye, target, up Vec3, fovY, aspect, near, far float64) ViewTransform {
	return ViewTransform{
		View:       LookAt(eye, target, up),
		Projection: Perspective(fovY, aspect, near, far),
	}
}

// Combined returns Projection * View
func (vt ViewTransform) Combined() Mat4 {
	return vt.Projection.Mul(vt.View)
}

// ScreenPoint is a position in pixel space. X grows right and Y grows down from
// the top-left corner. Depth is the normalized device depth in [-1, 1] and is
// needed to reverse the projection.
type ScreenPoint struct {
	X, Y  float64
	Depth float64
}

// Project maps a world-space point to screen coordinates for a viewport of the
// given size. Points on or behind the camera plane cannot be projected and
// return false.
func Project(p Vec3, vt ViewTransform, width, height float64) (ScreenPoint, bool) {
	x, y, z, w := vt.Combined().MulVec4(p.X, p.Y, p.Z, 1)
	if w < Epsilon {
		return ScreenPoint{}, false
	}
	x, y, z = x/w, y/w, z/w
	return ScreenPoint{
		X:     (x + 1) * 0.5 * width,
		Y:     (1 - y) * 0.5 * height,
		Depth: z,
	}, true
}

// Unproject maps a screen point produced by Project back to world space.
// It returns false if the view transform is singular or the viewport is empty.
func Unproject(sp ScreenPoint, vt ViewTransform, width, height float64) (Vec3, bool) {
	if width <= 0 || height <= 0 {
		return Vec3{}, false
	}
	inv, ok := vt.Combined().Invert()
	if !ok {
		return Vec3{}, false
	}
	return inv.TransformPoint(Vec3{
		X: sp.X/width*2 - 1,
		Y: 1 - sp.Y/height*2,
		Z: sp.Depth,
	})
}

// InFrustum reports whether p is inside the view frustum of vt
func InFrustum(p Vec3, vt ViewTransform) bool {
	x, y, z, w := vt.Combined().MulVec4(p.X, p.Y, p.Z, 1)
	if w < Epsilon {
		return false
	}
	return math.Abs(x) <= w && math.Abs(y) <= w && math.Abs(z) <= w
}
