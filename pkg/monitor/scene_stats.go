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

package monitor

// SceneStats are the renderer counters reported with each frame
type SceneStats struct {
	DrawCalls  int
	Triangles  int
	Textures   int
	Geometries int
	Programs   int
}

// clamped returns the stats with negative counts set to zero
func (s SceneStats) clamped() SceneStats {
	return SceneStats{
		DrawCalls:  max(s.DrawCalls, 0),
		Triangles:  max(s.Triangles, 0),
		Textures:   max(s.Textures, 0),
		Geometries: max(s.Geometries, 0),
		Programs:   max(s.Programs, 0),
	}
}

// Renderable is a node of a scene graph
type Renderable interface {
	// TriangleCount is the number of triangles drawn by this node alone
	TriangleCount() int
	Children() []Renderable
}

// CountTriangles totals the triangles of the nodes and all of their
// descendants. Nil nodes and negative counts contribute nothing.
func CountTriangles(nodes ...Renderable) int {
	var total int
	stack := make([]Renderable, 0, len(nodes))
	stack = append(stack, nodes...)
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if c := n.TriangleCount(); c > 0 {
			total += c
		}
		stack = append(stack, n.Children()...)
	}
	return total
}
