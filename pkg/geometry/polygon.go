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

// PolygonArea returns the area enclosed by the vertices using the shoelace formula.
// The result is independent of winding direction and of which vertex comes first.
// Fewer than 3 vertices yield 0.
func PolygonArea(vertices []Point2) float64 {
	n := len(vertices)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += vertices[i].X*vertices[j].Y - vertices[j].X*vertices[i].Y
	}
	return math.Abs(sum) / 2
}

// Perimeter returns the sum of the edge lengths, including the closing edge
// from the last vertex back to the first. Fewer than 2 vertices yield 0.
func Perimeter(vertices []Point2) float64 {
	n := len(vertices)
	if n < 2 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += math.Hypot(vertices[j].X-vertices[i].X, vertices[j].Y-vertices[i].Y)
	}
	return sum
}

// PointInPolygon reports whether p lies inside the polygon using the even-odd
// ray casting rule.
//
// Points exactly on an edge are classified by the half-open crossing test: for an
// axis-aligned rectangle, points on the bottom and left edges are inside while
// points on the top and right edges are outside. This keeps adjacent polygons
// that share an edge from both claiming the same point. Polygons with fewer than
// 3 vertices contain nothing.
func PointInPolygon(p Point2, polygon []Point2) bool {
	n := len(polygon)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := polygon[i], polygon[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xCross := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xCross {
				inside = !inside
			}
		}
	}
	return inside
}

// PolygonContains reports whether every vertex of inner lies inside outer
// per PointInPolygon
func PolygonContains(outer, inner []Point2) bool {
	if len(inner) == 0 {
		return false
	}
	for _, p := range inner {
		if !PointInPolygon(p, outer) {
			return false
		}
	}
	return true
}

// Centroid returns the arithmetic mean of the vertices. An empty input yields
// the origin and false.
func Centroid(vertices []Point2) (Point2, bool) {
	if len(vertices) == 0 {
		return Point2{}, false
	}
	var c Point2
	for _, v := range vertices {
		c.X += v.X
		c.Y += v.Y
	}
	n := float64(len(vertices))
	return Point2{X: c.X / n, Y: c.Y / n}, true
}
