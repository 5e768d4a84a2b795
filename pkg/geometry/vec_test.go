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

import (
	"math"
	"testing"
)

const tol = 1e-9

func TestVec3Ops(t *testing.T) {
	a, b := V3(1, 2, 3), V3(4, 5, 6)
	tests := []struct {
		name string
		got  Vec3
		want Vec3
	}{
		{"add", a.Add(b), V3(5, 7, 9)},
		{"sub", b.Sub(a), V3(3, 3, 3)},
		{"scale", a.Scale(2), V3(2, 4, 6)},
		{"cross", V3(1, 0, 0).Cross(V3(0, 1, 0)), V3(0, 0, 1)},
		{"normalize", V3(0, 3, 4).Normalize(), V3(0, 0.6, 0.8)},
		{"normalize zero", Vec3{}.Normalize(), Vec3{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Approx(tt.want, tol) {
				t.Errorf("expected %v got %v", tt.want, tt.got)
			}
		})
	}
	if d := a.Dot(b); d != 32 {
		t.Errorf("expected %v got %v", 32, d)
	}
}

func TestSurfaceNormal(t *testing.T) {
	n := SurfaceNormal(V3(0, 0, 0), V3(1, 0, 0), V3(0, 1, 0))
	if !n.Approx(V3(0, 0, 1), tol) {
		t.Errorf("expected %v got %v", V3(0, 0, 1), n)
	}
	n = SurfaceNormal(V3(0, 0, 0), V3(0, 1, 0), V3(1, 0, 0))
	if !n.Approx(V3(0, 0, -1), tol) {
		t.Errorf("expected %v got %v", V3(0, 0, -1), n)
	}
	// collinear
	n = SurfaceNormal(V3(0, 0, 0), V3(1, 1, 1), V3(2, 2, 2))
	if !n.IsZero() {
		t.Errorf("expected zero vector got %v", n)
	}
}

func TestAngleBetween(t *testing.T) {
	tests := []struct {
		name   string
		v1, v2 Vec3
		want   float64
	}{
		{"orthogonal", V3(1, 0, 0), V3(0, 1, 0), 90},
		{"parallel", V3(2, 0, 0), V3(5, 0, 0), 0},
		{"opposite", V3(1, 1, 0), V3(-1, -1, 0), 180},
		{"diagonal", V3(1, 0, 0), V3(1, 1, 0), 45},
		{"zero", Vec3{}, V3(1, 0, 0), 0},
		{"opposite scaled", V3(1, 2, 3), V3(-2, -4, -6), 180},
		{"nearly opposite", V3(1, 0, 0), V3(-1, 1e-7, 0), 180 - 1e-7*180/math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AngleBetween(tt.v1, tt.v2); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("expected %v got %v", tt.want, got)
			}
		})
	}

	// small angles keep their relative precision
	want := math.Atan(1e-7) * 180 / math.Pi
	if got := AngleBetween(V3(1, 0, 0), V3(1, 1e-7, 0)); math.Abs(got-want) > want*1e-9 {
		t.Errorf("expected %v got %v", want, got)
	}
}

func TestDistance(t *testing.T) {
	if d := Distance(V3(1, 2, 3), V3(1, 2, 3)); d != 0 {
		t.Errorf("expected 0 got %v", d)
	}
	if d := Distance(V3(0, 0, 0), V3(3, 4, 12)); d != 13 {
		t.Errorf("expected 13 got %v", d)
	}
}

func TestSnapToGrid(t *testing.T) {
	got := SnapToGrid(V3(1.26, -0.74, 3), 0.5)
	if !got.Approx(V3(1.5, -0.5, 3), tol) {
		t.Errorf("expected %v got %v", V3(1.5, -0.5, 3), got)
	}
	p := V3(1.26, 2, 3)
	if got := SnapToGrid(p, 0); got != p {
		t.Errorf("expected %v got %v", p, got)
	}
}
