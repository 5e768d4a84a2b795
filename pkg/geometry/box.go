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

// Box3 is an axis-aligned bounding box
type Box3 struct {
	Min    Vec3
	Max    Vec3
	Center Vec3
	Size   Vec3
}

// BoundingBox returns the smallest axis-aligned box containing every point.
// An empty input returns nil.
func BoundingBox(points []Vec3) *Box3 {
	if len(points) == 0 {
		return nil
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo.X, hi.X = math.Min(lo.X, p.X), math.Max(hi.X, p.X)
		lo.Y, hi.Y = math.Min(lo.Y, p.Y), math.Max(hi.Y, p.Y)
		lo.Z, hi.Z = math.Min(lo.Z, p.Z), math.Max(hi.Z, p.Z)
	}
	return newBox(lo, hi)
}

// BoundingBox2 returns the bounding box of planar points lifted onto z=0.
// An empty input returns nil.
func BoundingBox2(points []Point2) *Box3 {
	if len(points) == 0 {
		return nil
	}
	v := make([]Vec3, len(points))
	for i, p := range points {
		v[i] = p.Vec3()
	}
	return BoundingBox(v)
}

func newBox(lo, hi Vec3) *Box3 {
	size := hi.Sub(lo)
	return &Box3{
		Min:    lo,
		Max:    hi,
		Size:   size,
		Center: lo.Add(size.Scale(0.5)),
	}
}

// Contains returns true if p is inside or on the surface of the box. A nil box
// contains nothing.
func (b *Box3) Contains(p Vec3) bool {
	if b == nil {
		return false
	}
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects returns true if the boxes share interior volume. Boxes that only
// touch along a face, edge or corner do not intersect.
func (b *Box3) Intersects(o *Box3) bool {
	if b == nil || o == nil {
		return false
	}
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		// flat boxes on the same plane overlap when their footprints do
		(b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z ||
			b.Size.Z == 0 && o.Size.Z == 0 && b.Min.Z == o.Min.Z)
}
