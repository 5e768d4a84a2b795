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

package texture

import (
	"image"
	"sync/atomic"
)

// WrapMode is how texture coordinates outside [0,1] are resolved
type WrapMode int

const (
	// WrapClamp clamps to the edge texel
	WrapClamp WrapMode = iota
	// WrapRepeat tiles the texture
	WrapRepeat
	// WrapMirror tiles the texture, mirroring every other tile
	WrapMirror
)

var wrapNames = map[WrapMode]string{WrapClamp: "clamp", WrapRepeat: "repeat", WrapMirror: "mirror"}
var wrapValues = map[string]WrapMode{"clamp": WrapClamp, "repeat": WrapRepeat, "mirror": WrapMirror}

func (w WrapMode) String() string {
	if s, ok := wrapNames[w]; ok {
		return s
	}
	return "unknown"
}

// FilterMode is a texture minification or magnification filter
type FilterMode int

const (
	// FilterNearest samples the closest texel
	FilterNearest FilterMode = iota
	// FilterLinear blends the four closest texels
	FilterLinear
	// FilterLinearMipmapLinear blends between two mip levels
	FilterLinearMipmapLinear
)

var filterNames = map[FilterMode]string{
	FilterNearest:            "nearest",
	FilterLinear:             "linear",
	FilterLinearMipmapLinear: "linear_mipmap_linear",
}
var filterValues = map[string]FilterMode{
	"nearest":              FilterNearest,
	"linear":               FilterLinear,
	"linear_mipmap_linear": FilterLinearMipmapLinear,
}

func (f FilterMode) String() string {
	if s, ok := filterNames[f]; ok {
		return s
	}
	return "unknown"
}

// ColorSpace is the color space the pixel values are expressed in
type ColorSpace int

const (
	// ColorSpaceSRGB is gamma-encoded sRGB
	ColorSpaceSRGB ColorSpace = iota
	// ColorSpaceLinear is linear light
	ColorSpaceLinear
)

func (c ColorSpace) String() string {
	if c == ColorSpaceLinear {
		return "linear"
	}
	return "srgb"
}

func parseColorSpace(s string) ColorSpace {
	if s == "linear" {
		return ColorSpaceLinear
	}
	return ColorSpaceSRGB
}

// SamplingParams are the per-handle sampling settings of a texture
type SamplingParams struct {
	WrapS      WrapMode
	WrapT      WrapMode
	MinFilter  FilterMode
	MagFilter  FilterMode
	MipMaps    bool
	Anisotropy int
	ColorSpace ColorSpace
}

// PixelData is decoded, immutable pixel storage shared by a master texture and
// all of its clones. The buffer is dropped when the last holder releases it.
type PixelData struct {
	img  *image.NRGBA
	refs atomic.Int32
}

func newPixelData(img *image.NRGBA) *PixelData {
	pd := &PixelData{img: img}
	pd.refs.Store(1)
	return pd
}

// retain adds a holder unless the data was already released
func (pd *PixelData) retain() bool {
	for {
		n := pd.refs.Load()
		if n <= 0 {
			return false
		}
		if pd.refs.CompareAndSwap(n, n+1) {
			return true
		}
	}
}

func (pd *PixelData) release() {
	if pd.refs.Add(-1) == 0 {
		pd.img = nil
	}
}

// Refs returns the number of holders of the pixel data
func (pd *PixelData) Refs() int {
	return int(pd.refs.Load())
}

// ImageResource is a decoded, render-ready texture. Resources returned by
// Cache.Load are clones: they share the pixel data of the cached master but
// own their Sampling, so changing it never affects other handles.
type ImageResource struct {
	Key    string
	Width  int
	Height int
	// Format is the format the origin bytes were decoded from
	Format string
	// Opaque is true when every pixel has full alpha
	Opaque bool
	// PowerOfTwo is true when both dimensions are powers of two
	PowerOfTwo bool
	// MipLevels is the length of the mip chain, or 1 when mip-mapping is off
	MipLevels int
	Sampling  SamplingParams

	pixels   *PixelData
	released atomic.Bool
}

func newImageResource(key, format string, img *image.NRGBA, sp SamplingParams) *ImageResource {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	r := &ImageResource{
		Key:        key,
		Width:      w,
		Height:     h,
		Format:     format,
		Opaque:     img.Opaque(),
		PowerOfTwo: isPowerOfTwo(w) && isPowerOfTwo(h),
		MipLevels:  1,
		Sampling:   sp,
		pixels:     newPixelData(img),
	}
	if sp.MipMaps {
		r.MipLevels = MipLevels(w, h)
	}
	return r
}

// Image returns the decoded pixels, or nil once the resource is released
func (r *ImageResource) Image() *image.NRGBA {
	if r == nil || r.released.Load() {
		return nil
	}
	return r.pixels.img
}

// Pixels returns the shared pixel data
func (r *ImageResource) Pixels() *PixelData {
	return r.pixels
}

// SizeBytes is the decoded size of the pixel buffer
func (r *ImageResource) SizeBytes() int64 {
	return int64(r.Width) * int64(r.Height) * 4
}

// Clone returns a new handle sharing the pixel data, or nil when the resource
// has been released
func (r *ImageResource) Clone() *ImageResource {
	if r == nil || r.released.Load() || !r.pixels.retain() {
		return nil
	}
	return &ImageResource{
		Key:        r.Key,
		Width:      r.Width,
		Height:     r.Height,
		Format:     r.Format,
		Opaque:     r.Opaque,
		PowerOfTwo: r.PowerOfTwo,
		MipLevels:  r.MipLevels,
		Sampling:   r.Sampling,
		pixels:     r.pixels,
	}
}

// Release drops this handle's hold on the pixel data. It is safe to call more
// than once.
func (r *ImageResource) Release() {
	if r == nil || !r.released.CompareAndSwap(false, true) {
		return
	}
	r.pixels.release()
}

// Released returns true once Release was called
func (r *ImageResource) Released() bool {
	return r.released.Load()
}
