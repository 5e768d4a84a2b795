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

// Package options holds the configuration of the performance monitor
package options

import "errors"

const (
	// DefaultSampleEveryFrames is how many frames pass between samples
	DefaultSampleEveryFrames = 30
	// DefaultHistorySize is the capacity of the fps history
	DefaultHistorySize = 100
)

// ErrInvalidThresholds is returned when thresholds are out of order
var ErrInvalidThresholds = errors.New("invalid monitor thresholds")

// Options is a collection of performance monitor configurations
type Options struct {
	// SampleEveryFrames is the number of frames per sample
	SampleEveryFrames int `yaml:"sample_every_frames,omitempty"`
	// HistorySize is the number of fps values kept for the rolling average
	HistorySize int `yaml:"history_size,omitempty"`
	// Thresholds drive the verdict of every sample
	Thresholds *Thresholds `yaml:"thresholds,omitempty"`
}

// Thresholds are the limits a sample is judged against
type Thresholds struct {
	VeryLowFPS float64 `yaml:"very_low_fps,omitempty"`
	LowFPS     float64 `yaml:"low_fps,omitempty"`
	GoodFPS    float64 `yaml:"good_fps,omitempty"`
	// CriticalMemoryRatio and HighMemoryRatio are fractions of the memory limit
	CriticalMemoryRatio float64 `yaml:"critical_memory_ratio,omitempty"`
	HighMemoryRatio     float64 `yaml:"high_memory_ratio,omitempty"`
	MaxDrawCalls        int     `yaml:"max_draw_calls,omitempty"`
	VeryHighTriangles   int     `yaml:"very_high_triangles,omitempty"`
	HighTriangles       int     `yaml:"high_triangles,omitempty"`
	MaxTextures         int     `yaml:"max_textures,omitempty"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		SampleEveryFrames: DefaultSampleEveryFrames,
		HistorySize:       DefaultHistorySize,
		Thresholds:        NewThresholds(),
	}
}

// NewThresholds returns the default Thresholds
func NewThresholds() *Thresholds {
	return &Thresholds{
		VeryLowFPS:          30,
		LowFPS:              45,
		GoodFPS:             55,
		CriticalMemoryRatio: 0.9,
		HighMemoryRatio:     0.7,
		MaxDrawCalls:        200,
		VeryHighTriangles:   1000000,
		HighTriangles:       500000,
		MaxTextures:         50,
	}
}

// Clone returns a deep copy of the Options
func (o *Options) Clone() *Options {
	out := *o
	if o.Thresholds != nil {
		th := *o.Thresholds
		out.Thresholds = &th
	}
	return &out
}

// Validate fills zero values with defaults and checks the thresholds are ordered
func (o *Options) Validate() error {
	if o.SampleEveryFrames < 1 {
		o.SampleEveryFrames = DefaultSampleEveryFrames
	}
	if o.HistorySize < 1 {
		o.HistorySize = DefaultHistorySize
	}
	if o.Thresholds == nil {
		o.Thresholds = NewThresholds()
		return nil
	}
	d := NewThresholds()
	th := o.Thresholds
	if th.VeryLowFPS == 0 {
		th.VeryLowFPS = d.VeryLowFPS
	}
	if th.LowFPS == 0 {
		th.LowFPS = d.LowFPS
	}
	if th.GoodFPS == 0 {
		th.GoodFPS = d.GoodFPS
	}
	if th.CriticalMemoryRatio == 0 {
		th.CriticalMemoryRatio = d.CriticalMemoryRatio
	}
	if th.HighMemoryRatio == 0 {
		th.HighMemoryRatio = d.HighMemoryRatio
	}
	if th.MaxDrawCalls == 0 {
		th.MaxDrawCalls = d.MaxDrawCalls
	}
	if th.VeryHighTriangles == 0 {
		th.VeryHighTriangles = d.VeryHighTriangles
	}
	if th.HighTriangles == 0 {
		th.HighTriangles = d.HighTriangles
	}
	if th.MaxTextures == 0 {
		th.MaxTextures = d.MaxTextures
	}
	if th.VeryLowFPS > th.LowFPS || th.LowFPS > th.GoodFPS ||
		th.HighMemoryRatio > th.CriticalMemoryRatio || th.HighTriangles > th.VeryHighTriangles {
		return ErrInvalidThresholds
	}
	return nil
}
