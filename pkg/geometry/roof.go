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
	"strconv"
)

// RoofPitch returns the pitch angle in degrees of a slope with the given rise
// over run, i.e. atan2(rise, run)
func RoofPitch(rise, run float64) float64 {
	return RadToDeg(math.Atan2(rise, run))
}

// PitchToRatio converts a pitch angle in degrees to the carpentry notation
// "N:12", where N is the rise over a 12-unit run rounded to the nearest whole
// unit. The mapping is an approximate inverse of RoofPitch: RoofPitch(7, 12) is
// 30.26 degrees and PitchToRatio(30.26) is "7:12", but fractional rises are lost.
// Angles at or beyond +/-90 degrees have no ratio and return "".
func PitchToRatio(degrees float64) string {
	if math.IsNaN(degrees) || math.Abs(degrees) >= 90 {
		return ""
	}
	rise := math.Round(math.Tan(DegToRad(degrees)) * 12)
	if rise == 0 {
		// avoid "-0:12"
		rise = 0
	}
	return strconv.FormatFloat(rise, 'f', -1, 64) + ":12"
}

// RoofArea returns the sloped surface area of a roof plane whose horizontal
// footprint is length x width, pitched at pitchDegrees. A flat roof yields
// length*width. Pitches at or beyond +/-90 degrees are vertical and yield 0.
func RoofArea(length, width, pitchDegrees float64) float64 {
	if math.Abs(pitchDegrees) >= 90 {
		return 0
	}
	return length * width / math.Cos(DegToRad(pitchDegrees))
}

// SlopedArea returns the sloped surface area of an arbitrary horizontal
// footprint polygon pitched at pitchDegrees
func SlopedArea(footprint []Point2, pitchDegrees float64) float64 {
	if math.Abs(pitchDegrees) >= 90 {
		return 0
	}
	return PolygonArea(footprint) / math.Cos(DegToRad(pitchDegrees))
}
