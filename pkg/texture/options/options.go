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

// Package options holds the configuration of a texture cache
package options

import (
	"errors"
	"fmt"
	"strings"
	"time"

	fo "github.com/roofscape/visualizer/pkg/texture/fetch/options"
)

const (
	// DefaultMaxSizeBytes is the persistent usage budget (256 MiB)
	DefaultMaxSizeBytes = 256 << 20
	// DefaultMaxDimension is the largest width or height kept after optimization
	DefaultMaxDimension = 2048
	// DefaultSweepIntervalMS is how often the background sweeper runs
	DefaultSweepIntervalMS = 60000
	// DefaultIdleTimeoutMS is how long an unused memory-tier texture is kept
	DefaultIdleTimeoutMS = 600000
	// DefaultEvictionTargetRatio is the fraction of the budget an eviction pass drains to
	DefaultEvictionTargetRatio = 0.75
	// DefaultEncoding is the pixel encoding of persisted entries
	DefaultEncoding = "jpeg"
	// DefaultJPEGQuality is the quality of jpeg-encoded entries
	DefaultJPEGQuality = 85
	// DefaultAnisotropy is the default anisotropic filtering level
	DefaultAnisotropy = 4
)

var (
	// ErrInvalidEncoding indicates an unsupported entry encoding
	ErrInvalidEncoding = errors.New("invalid 'encoding' config")
	// ErrInvalidTargetRatio indicates an eviction target outside (0, 1]
	ErrInvalidTargetRatio = errors.New("invalid 'eviction_target_ratio' config")
	// ErrInvalidWrap indicates an unsupported wrap mode
	ErrInvalidWrap = errors.New("invalid wrap mode")
	// ErrInvalidFilter indicates an unsupported filter
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidColorSpace indicates an unsupported color space
	ErrInvalidColorSpace = errors.New("invalid 'color_space' config")
)

var validEncodings = map[string]bool{"jpeg": true, "png": true, "zstd": true,
	"snappy": true, "brotli": true}
var validWraps = map[string]bool{"clamp": true, "repeat": true, "mirror": true}
var validFilters = map[string]bool{"nearest": true, "linear": true, "linear_mipmap_linear": true}
var validColorSpaces = map[string]bool{"srgb": true, "linear": true}

// Options is a collection of texture cache configurations
type Options struct {
	// MaxSizeBytes is the usage budget of the persistent tier
	MaxSizeBytes int64 `yaml:"max_size_bytes,omitempty"`
	// MaxDimension bounds the width and height of optimized textures
	MaxDimension int `yaml:"max_dimension,omitempty"`
	// SweepIntervalMS is the background sweep interval; 0 disables periodic sweeps
	SweepIntervalMS int `yaml:"sweep_interval_ms,omitempty"`
	// IdleTimeoutMS is the age after which unused memory-tier textures are disposed
	IdleTimeoutMS int `yaml:"idle_timeout_ms,omitempty"`
	// EvictionTargetRatio is the fraction of MaxSizeBytes an eviction pass drains to
	EvictionTargetRatio float64 `yaml:"eviction_target_ratio,omitempty"`
	// Encoding is the pixel encoding of persisted entries: jpeg, png, zstd,
	// snappy or brotli
	Encoding string `yaml:"encoding,omitempty"`
	// JPEGQuality is used when Encoding is jpeg
	JPEGQuality int `yaml:"jpeg_quality,omitempty"`
	// Sampling holds the sampling defaults applied to every loaded texture
	Sampling *SamplingOptions `yaml:"sampling,omitempty"`
	// Source configures the origin fetcher
	Source *fo.Options `yaml:"source,omitempty"`
	// PreloadKeys are loaded when the daemon starts
	PreloadKeys []string `yaml:"preload_keys,omitempty"`

	SweepInterval time.Duration `yaml:"-"`
	IdleTimeout   time.Duration `yaml:"-"`
}

// SamplingOptions are the sampling defaults of loaded textures
type SamplingOptions struct {
	WrapS      string `yaml:"wrap_s,omitempty"`
	WrapT      string `yaml:"wrap_t,omitempty"`
	MinFilter  string `yaml:"min_filter,omitempty"`
	MagFilter  string `yaml:"mag_filter,omitempty"`
	MipMaps    bool   `yaml:"mipmaps,omitempty"`
	Anisotropy int    `yaml:"anisotropy,omitempty"`
	ColorSpace string `yaml:"color_space,omitempty"`
}

// NewSampling returns the default SamplingOptions
func NewSampling() *SamplingOptions {
	return &SamplingOptions{
		WrapS:      "clamp",
		WrapT:      "clamp",
		MinFilter:  "linear_mipmap_linear",
		MagFilter:  "linear",
		MipMaps:    true,
		Anisotropy: DefaultAnisotropy,
		ColorSpace: "srgb",
	}
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		MaxSizeBytes:        DefaultMaxSizeBytes,
		MaxDimension:        DefaultMaxDimension,
		SweepIntervalMS:     DefaultSweepIntervalMS,
		IdleTimeoutMS:       DefaultIdleTimeoutMS,
		EvictionTargetRatio: DefaultEvictionTargetRatio,
		Encoding:            DefaultEncoding,
		JPEGQuality:         DefaultJPEGQuality,
		Sampling:            NewSampling(),
		Source:              fo.New(),
		SweepInterval:       time.Duration(DefaultSweepIntervalMS) * time.Millisecond,
		IdleTimeout:         time.Duration(DefaultIdleTimeoutMS) * time.Millisecond,
	}
}

// Clone returns a deep copy of the Options
func (o *Options) Clone() *Options {
	out := *o
	if o.Sampling != nil {
		s := *o.Sampling
		out.Sampling = &s
	}
	if o.Source != nil {
		out.Source = o.Source.Clone()
	}
	if o.PreloadKeys != nil {
		out.PreloadKeys = make([]string, len(o.PreloadKeys))
		copy(out.PreloadKeys, o.PreloadKeys)
	}
	return &out
}

// Validate fills zero values with defaults, derives the durations and
// returns an error for values that cannot be used
func (o *Options) Validate() error {
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.EvictionTargetRatio == 0 {
		o.EvictionTargetRatio = DefaultEvictionTargetRatio
	}
	if o.EvictionTargetRatio < 0 || o.EvictionTargetRatio > 1 {
		return ErrInvalidTargetRatio
	}
	o.Encoding = strings.ToLower(strings.TrimSpace(o.Encoding))
	if o.Encoding == "" {
		o.Encoding = DefaultEncoding
	}
	if !validEncodings[o.Encoding] {
		return fmt.Errorf("%w: %s", ErrInvalidEncoding, o.Encoding)
	}
	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.Sampling == nil {
		o.Sampling = NewSampling()
	}
	if err := o.Sampling.Validate(); err != nil {
		return err
	}
	if o.Source == nil {
		o.Source = fo.New()
	}
	if err := o.Source.Validate(); err != nil {
		return err
	}
	if o.SweepIntervalMS < 0 {
		o.SweepIntervalMS = 0
	}
	if o.IdleTimeoutMS < 0 {
		o.IdleTimeoutMS = 0
	}
	o.SweepInterval = time.Duration(o.SweepIntervalMS) * time.Millisecond
	o.IdleTimeout = time.Duration(o.IdleTimeoutMS) * time.Millisecond
	return nil
}

// Validate normalizes the names and rejects unknown ones
func (s *SamplingOptions) Validate() error {
	d := NewSampling()
	norm := func(v *string, def string) {
		*v = strings.ToLower(strings.TrimSpace(*v))
		if *v == "" {
			*v = def
		}
	}
	norm(&s.WrapS, d.WrapS)
	norm(&s.WrapT, d.WrapT)
	norm(&s.MinFilter, d.MinFilter)
	norm(&s.MagFilter, d.MagFilter)
	norm(&s.ColorSpace, d.ColorSpace)
	if !validWraps[s.WrapS] {
		return fmt.Errorf("%w: %s", ErrInvalidWrap, s.WrapS)
	}
	if !validWraps[s.WrapT] {
		return fmt.Errorf("%w: %s", ErrInvalidWrap, s.WrapT)
	}
	if !validFilters[s.MinFilter] {
		return fmt.Errorf("%w: %s", ErrInvalidFilter, s.MinFilter)
	}
	// magnification never samples mip levels
	if !validFilters[s.MagFilter] || s.MagFilter == "linear_mipmap_linear" {
		return fmt.Errorf("%w: %s", ErrInvalidFilter, s.MagFilter)
	}
	if !validColorSpaces[s.ColorSpace] {
		return fmt.Errorf("%w: %s", ErrInvalidColorSpace, s.ColorSpace)
	}
	if s.Anisotropy < 1 {
		s.Anisotropy = 1
	}
	return nil
}
