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

package scene

import (
	"errors"
	"math"
	"time"

	"github.com/roofscape/visualizer/pkg/geometry"

	"github.com/google/uuid"
)

var (
	// ErrMissingTextureKey is returned for overlays without a texture
	ErrMissingTextureKey = errors.New("overlay texture key is required")
	// ErrInvalidFootprint is returned for footprints with fewer than three
	// vertices or no area
	ErrInvalidFootprint = errors.New("invalid product footprint")
	// ErrInvalidPitch is returned for pitches outside [0, 90)
	ErrInvalidPitch = errors.New("invalid roof pitch")
	// ErrInvalidOpacity is returned for opacities outside (0, 1]
	ErrInvalidOpacity = errors.New("invalid overlay opacity")
	// ErrInvalidIntensity is returned for negative or non-finite light intensities
	ErrInvalidIntensity = errors.New("invalid light intensity")
	// ErrInvalidColor is returned for color channels outside [0, 1]
	ErrInvalidColor = errors.New("invalid light color")
	// ErrInvalidPulse is returned for negative pulse periods
	ErrInvalidPulse = errors.New("invalid light pulse period")
)

// Color is a linear RGB color with channels in [0, 1]
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// White is the default light color
var White = Color{R: 1, G: 1, B: 1}

func (c Color) valid() bool {
	for _, v := range []float64{c.R, c.G, c.B} {
		if !(v >= 0 && v <= 1) {
			return false
		}
	}
	return true
}

// RoofProductOverlay is a roofing product textured onto a region of the roof
type RoofProductOverlay struct {
	ID           string            `json:"id"`
	TextureKey   string            `json:"textureKey"`
	Footprint    []geometry.Point2 `json:"footprint"`
	PitchDegrees float64           `json:"pitchDegrees"`
	Opacity      float64           `json:"opacity"`
}

// NewRoofProductOverlay returns a validated overlay with a new ID. An opacity
// of 0 means fully opaque.
func NewRoofProductOverlay(textureKey string, footprint []geometry.Point2,
	pitchDegrees, opacity float64) (*RoofProductOverlay, error) {
	o := &RoofProductOverlay{
		ID:           uuid.NewString(),
		TextureKey:   textureKey,
		Footprint:    append([]geometry.Point2(nil), footprint...),
		PitchDegrees: pitchDegrees,
		Opacity:      opacity,
	}
	if err := o.validate(); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *RoofProductOverlay) validate() error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.TextureKey == "" {
		return ErrMissingTextureKey
	}
	if !validFootprint(o.Footprint) {
		return ErrInvalidFootprint
	}
	if !(o.PitchDegrees >= 0 && o.PitchDegrees < 90) {
		return ErrInvalidPitch
	}
	if o.Opacity == 0 {
		o.Opacity = 1
	}
	if !(o.Opacity > 0 && o.Opacity <= 1) {
		return ErrInvalidOpacity
	}
	return nil
}

func validFootprint(p []geometry.Point2) bool {
	if len(p) < 3 {
		return false
	}
	for _, v := range p {
		if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
			return false
		}
	}
	return geometry.PolygonArea(p) > geometry.Epsilon
}

// LightFixture is a textured light source placed in the scene
type LightFixture struct {
	ID         string        `json:"id"`
	TextureKey string        `json:"textureKey"`
	Position   geometry.Vec3 `json:"position"`
	Color      Color         `json:"color"`
	Intensity  float64       `json:"intensity"`
	// PulsePeriod animates the intensity when non-zero
	PulsePeriod time.Duration `json:"pulsePeriod,omitempty"`
}

// NewLightFixture returns a validated light with a new ID. A zero color means
// white and a zero intensity means 1.
func NewLightFixture(textureKey string, position geometry.Vec3, color Color,
	intensity float64, pulsePeriod time.Duration) (*LightFixture, error) {
	f := &LightFixture{
		ID:          uuid.NewString(),
		TextureKey:  textureKey,
		Position:    position,
		Color:       color,
		Intensity:   intensity,
		PulsePeriod: pulsePeriod,
	}
	if err := f.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *LightFixture) validate() error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	if f.TextureKey == "" {
		return ErrMissingTextureKey
	}
	if f.Color == (Color{}) {
		f.Color = White
	}
	if !f.Color.valid() {
		return ErrInvalidColor
	}
	if f.Intensity == 0 {
		f.Intensity = 1
	}
	if !(f.Intensity > 0) || math.IsInf(f.Intensity, 0) {
		return ErrInvalidIntensity
	}
	if f.PulsePeriod < 0 {
		return ErrInvalidPulse
	}
	return nil
}

// IntensityAt returns the intensity t into the animation. A pulsing light
// oscillates between half and full intensity, starting at three quarters.
func (f *LightFixture) IntensityAt(t time.Duration) float64 {
	if f.PulsePeriod == 0 {
		return f.Intensity
	}
	phase := 2 * math.Pi * float64(t%f.PulsePeriod) / float64(f.PulsePeriod)
	return f.Intensity * (0.75 + 0.25*math.Sin(phase))
}
