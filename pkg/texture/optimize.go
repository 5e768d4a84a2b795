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
	"bytes"
	"image"
	_ "image/gif"  // register gif decoding
	_ "image/jpeg" // register jpeg decoding
	_ "image/png"  // register png decoding
	"math"

	_ "golang.org/x/image/bmp" // register bmp decoding
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // register webp decoding
)

// Decode decodes origin bytes in any registered format
func Decode(b []byte) (image.Image, string, error) {
	return image.Decode(bytes.NewReader(b))
}

// Optimize returns the image as NRGBA, downscaled with CatmullRom so that
// neither dimension exceeds maxDim. The aspect ratio is preserved and no
// dimension drops below one pixel. A maxDim <= 0 disables downscaling.
func Optimize(src image.Image, maxDim int) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxDim > 0 && (w > maxDim || h > maxDim) {
		scale := float64(maxDim) / float64(max(w, h))
		nw := max(1, int(math.Round(float64(w)*scale)))
		nh := max(1, int(math.Round(float64(h)*scale)))
		dst := image.NewNRGBA(image.Rect(0, 0, nw, nh))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
		return dst
	}
	if n, ok := src.(*image.NRGBA); ok && b.Min == (image.Point{}) {
		return n
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}

// MipLevels returns the length of a full mip chain for a w x h texture
func MipLevels(w, h int) int {
	m := max(w, h)
	if m < 1 {
		return 1
	}
	return 1 + int(math.Floor(math.Log2(float64(m))))
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}
