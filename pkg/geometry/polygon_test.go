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

var unitSquare = []Point2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

func reversed(p []Point2) []Point2 {
	out := make([]Point2, len(p))
	for i := range p {
		out[len(p)-1-i] = p[i]
	}
	return out
}

func TestPolygonArea(t *testing.T) {
	if a := PolygonArea(unitSquare); a != 1 {
		t.Errorf("expected 1 got %v", a)
	}
	if a := PolygonArea(reversed(unitSquare)); a != 1 {
		t.Errorf("expected 1 got %v", a)
	}
	rotated := append(append([]Point2{}, unitSquare[2:]...), unitSquare[:2]...)
	if a := PolygonArea(rotated); a != 1 {
		t.Errorf("expected 1 got %v", a)
	}
	tri := []Point2{{0, 0}, {4, 0}, {0, 3}}
	if a := PolygonArea(tri); a != 6 {
		t.Errorf("expected 6 got %v", a)
	}
	if a := PolygonArea(unitSquare[:2]); a != 0 {
		t.Errorf("expected 0 got %v", a)
	}
}

func TestPerimeter(t *testing.T) {
	if p := Perimeter(unitSquare); p != 4 {
		t.Errorf("expected 4 got %v", p)
	}
	if p := Perimeter([]Point2{{0, 0}, {4, 0}, {0, 3}}); math.Abs(p-12) > tol {
		t.Errorf("expected 12 got %v", p)
	}
	if p := Perimeter(nil); p != 0 {
		t.Errorf("expected 0 got %v", p)
	}
}

func TestPointInPolygon(t *testing.T) {
	tests := []struct {
		name string
		p    Point2
		want bool
	}{
		{"center", P2(0.5, 0.5), true},
		{"outside", P2(1.5, 0.5), false},
		{"below", P2(0.5, -0.1), false},
		{"bottom edge", P2(0.5, 0), true},
		{"left edge", P2(0, 0.5), true},
		{"top edge", P2(0.5, 1), false},
		{"right edge", P2(1, 0.5), false},
		{"bottom left corner", P2(0, 0), true},
		{"top right corner", P2(1, 1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PointInPolygon(tt.p, unitSquare); got != tt.want {
				t.Errorf("ccw: expected %t got %t", tt.want, got)
			}
			if got := PointInPolygon(tt.p, reversed(unitSquare)); got != tt.want {
				t.Errorf("cw: expected %t got %t", tt.want, got)
			}
		})
	}
}

func TestPointInPolygonConcave(t *testing.T) {
	// L shape with the notch at the top right
	l := []Point2{{0, 0}, {2, 0}, {2, 1}, {1, 1}, {1, 2}, {0, 2}}
	if !PointInPolygon(P2(0.5, 1.5), l) {
		t.Error("expected point in upper arm to be inside")
	}
	if PointInPolygon(P2(1.5, 1.5), l) {
		t.Error("expected point in notch to be outside")
	}
	if PointInPolygon(P2(0.5, 0.5), l[:2]) {
		t.Error("expected degenerate polygon to contain nothing")
	}
}

func TestPolygonContains(t *testing.T) {
	inner := []Point2{{0.2, 0.2}, {0.4, 0.2}, {0.4, 0.4}}
	if !PolygonContains(unitSquare, inner) {
		t.Error("expected inner polygon to be contained")
	}
	if PolygonContains(unitSquare, append(inner, P2(2, 2))) {
		t.Error("expected polygon with outside vertex not to be contained")
	}
	if PolygonContains(unitSquare, nil) {
		t.Error("expected empty polygon not to be contained")
	}
}

func TestCentroid(t *testing.T) {
	c, ok := Centroid(unitSquare)
	if !ok || c != P2(0.5, 0.5) {
		t.Errorf("expected %v got %v", P2(0.5, 0.5), c)
	}
	if _, ok := Centroid(nil); ok {
		t.Error("expected false for empty input")
	}
}
