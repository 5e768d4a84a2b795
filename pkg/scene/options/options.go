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

// Package options holds the configuration of the scene composer
package options

import (
	"errors"
	"math"
)

const (
	// DefaultGridStep is the placement grid, in scene units
	DefaultGridStep = 0.25
	// DefaultStateKeyPrefix namespaces saved scenes in the persistent tier
	DefaultStateKeyPrefix = "scene."
)

// ErrInvalidGridStep is returned when the grid step is negative or not finite
var ErrInvalidGridStep = errors.New("invalid grid step")

// Options is a collection of scene composer configurations
type Options struct {
	// GridStep is the spacing product footprints are snapped to. 0 disables snapping.
	GridStep float64 `yaml:"grid_step,omitempty"`
	// StateKeyPrefix is prepended to the lead identifier to form the saved state key
	StateKeyPrefix string `yaml:"state_key_prefix,omitempty"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		GridStep:       DefaultGridStep,
		StateKeyPrefix: DefaultStateKeyPrefix,
	}
}

// Clone returns a copy of the Options
func (o *Options) Clone() *Options {
	out := *o
	return &out
}

// Validate checks the options and fills an empty key prefix
func (o *Options) Validate() error {
	if o.GridStep < 0 || math.IsNaN(o.GridStep) || math.IsInf(o.GridStep, 0) {
		return ErrInvalidGridStep
	}
	if o.StateKeyPrefix == "" {
		o.StateKeyPrefix = DefaultStateKeyPrefix
	}
	return nil
}
