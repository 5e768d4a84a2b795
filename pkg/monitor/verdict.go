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

import "github.com/roofscape/visualizer/pkg/monitor/options"

// Rating is the overall health classification of a sample
type Rating int

const (
	// RatingExcellent means no threshold was crossed
	RatingExcellent Rating = iota
	// RatingGood means minor pressure
	RatingGood
	// RatingFair means noticeable degradation
	RatingFair
	// RatingPoor means the scene should be simplified now
	RatingPoor
)

var ratingNames = map[Rating]string{
	RatingExcellent: "excellent",
	RatingGood:      "good",
	RatingFair:      "fair",
	RatingPoor:      "poor",
}

func (r Rating) String() string {
	if s, ok := ratingNames[r]; ok {
		return s
	}
	return "unknown"
}

// Issues raised by Evaluate, in evaluation order
const (
	IssueVeryLowFPS        = "very low fps"
	IssueLowFPS            = "low fps"
	IssueCriticalMemory    = "critical memory"
	IssueHighMemory        = "high memory"
	IssueTooManyDrawCalls  = "too many draw calls"
	IssueVeryHighPolyCount = "very high polygon count"
	IssueHighPolyCount     = "high polygon count"
	IssueManyTextures      = "many textures loaded"
)

var recommendations = map[string]string{
	IssueVeryLowFPS:        "reduce scene complexity or the number of lights",
	IssueLowFPS:            "simplify geometry and textures",
	IssueCriticalMemory:    "clear the texture cache or reduce asset quality",
	IssueHighMemory:        "monitor memory usage closely",
	IssueTooManyDrawCalls:  "merge or instance geometry",
	IssueVeryHighPolyCount: "use level-of-detail meshes",
	IssueHighPolyCount:     "optimize geometry",
	IssueManyTextures:      "use texture atlases or compressed textures",
}

// Verdict is the classification of one sample. Issues and Recommendations
// are parallel slices.
type Verdict struct {
	Rating          Rating
	Issues          []string
	Recommendations []string
}

// HasIssue returns true if the verdict raised issue
func (v Verdict) HasIssue(issue string) bool {
	for _, i := range v.Issues {
		if i == issue {
			return true
		}
	}
	return false
}

func (v *Verdict) raise(issue string) {
	v.Issues = append(v.Issues, issue)
	v.Recommendations = append(v.Recommendations, recommendations[issue])
}

// floor lowers the rating to r unless it is already lower
func (v *Verdict) floor(r Rating) {
	if r > v.Rating {
		v.Rating = r
	}
}

// Evaluate classifies a sample. It is pure: the same sample and thresholds
// always produce the same verdict, with issues in a fixed order. The rating
// starts at excellent and is only ever lowered. Memory checks are skipped when
// the sample carries no memory telemetry.
func Evaluate(s Sample, th *options.Thresholds) Verdict {
	if th == nil {
		th = options.NewThresholds()
	}
	v := Verdict{Rating: RatingExcellent}

	switch {
	case s.FPS < th.VeryLowFPS:
		v.raise(IssueVeryLowFPS)
		v.floor(RatingPoor)
	case s.FPS < th.LowFPS:
		v.raise(IssueLowFPS)
		v.floor(RatingFair)
	case s.FPS < th.GoodFPS:
		v.floor(RatingGood)
	}

	if s.MemoryAvailable && s.MemoryLimitMB > 0 {
		ratio := s.MemoryUsedMB / s.MemoryLimitMB
		switch {
		case ratio > th.CriticalMemoryRatio:
			v.raise(IssueCriticalMemory)
			v.floor(RatingPoor)
		case ratio >= th.HighMemoryRatio:
			v.raise(IssueHighMemory)
			v.floor(RatingGood)
		}
	}

	if s.DrawCalls > th.MaxDrawCalls {
		v.raise(IssueTooManyDrawCalls)
		v.floor(RatingGood)
	}

	switch {
	case s.Triangles > th.VeryHighTriangles:
		v.raise(IssueVeryHighPolyCount)
		v.floor(RatingFair)
	case s.Triangles >= th.HighTriangles:
		v.raise(IssueHighPolyCount)
	}

	if s.Textures > th.MaxTextures {
		v.raise(IssueManyTextures)
	}
	return v
}
