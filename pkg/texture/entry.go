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
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/roofscape/visualizer/pkg/encoding/brotli"
	"github.com/roofscape/visualizer/pkg/encoding/snappy"
	"github.com/roofscape/visualizer/pkg/encoding/zstd"
)

//go:generate msgp

// Entry is the persistent-tier record of a texture. Entries are never
// modified once created.
type Entry struct {
	Key string `msg:"key"`
	// Data is the pixel data in Encoding
	Data []byte `msg:"data"`
	// Encoding is the pixel encoding of Data: jpeg, png, or one of the raw
	// codecs zstd, snappy and brotli
	Encoding     string `msg:"encoding"`
	Width        int    `msg:"width"`
	Height       int    `msg:"height"`
	ColorFormat  string `msg:"color_format"`
	SourceFormat string `msg:"source_format"`
	WrapS        int    `msg:"wrap_s"`
	WrapT        int    `msg:"wrap_t"`
	MinFilter    int    `msg:"min_filter"`
	MagFilter    int    `msg:"mag_filter"`
	MipMaps      bool   `msg:"mipmaps"`
	Anisotropy   int    `msg:"anisotropy"`
	ColorSpace   int    `msg:"color_space"`
	// Timestamp is when the entry was created
	Timestamp time.Time `msg:"timestamp"`
	// SizeBytes is the length of the serialized entry
	SizeBytes int64 `msg:"size_bytes"`
}

// newEntry encodes the master's pixels with the requested encoding. Images
// with transparency are never stored as jpeg and fall back to png.
func newEntry(r *ImageResource, img *image.NRGBA, encoding string, quality int,
	now time.Time) (*Entry, error) {
	e := &Entry{
		Key:          r.Key,
		Width:        img.Rect.Dx(),
		Height:       img.Rect.Dy(),
		ColorFormat:  "rgba",
		SourceFormat: r.Format,
		WrapS:        int(r.Sampling.WrapS),
		WrapT:        int(r.Sampling.WrapT),
		MinFilter:    int(r.Sampling.MinFilter),
		MagFilter:    int(r.Sampling.MagFilter),
		MipMaps:      r.Sampling.MipMaps,
		Anisotropy:   r.Sampling.Anisotropy,
		ColorSpace:   int(r.Sampling.ColorSpace),
		Timestamp:    now,
	}
	if encoding == "jpeg" && !r.Opaque {
		encoding = "png"
	}
	e.Encoding = encoding
	switch encoding {
	case "jpeg":
		buf := &bytes.Buffer{}
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, err
		}
		e.Data = buf.Bytes()
		e.ColorFormat = "rgb"
	case "png":
		buf := &bytes.Buffer{}
		enc := png.Encoder{CompressionLevel: png.BestSpeed}
		if err := enc.Encode(buf, img); err != nil {
			return nil, err
		}
		e.Data = buf.Bytes()
	default:
		rc, ok := rawCodecs[encoding]
		if !ok {
			return nil, fmt.Errorf("unsupported entry encoding: %s", encoding)
		}
		b, err := rc.encode(img.Pix)
		if err != nil {
			return nil, err
		}
		e.Data = b
	}
	return e, nil
}

// rawCodec compresses the NRGBA pixel buffer as is
type rawCodec struct {
	encode      func([]byte) ([]byte, error)
	decodeExact func([]byte, int) ([]byte, error)
}

var rawCodecs = map[string]rawCodec{
	"zstd": {
		encode:      func(b []byte) ([]byte, error) { return zstd.Encode(b), nil },
		decodeExact: zstd.DecodeExact,
	},
	"snappy": {
		encode:      func(b []byte) ([]byte, error) { return snappy.Encode(b), nil },
		decodeExact: snappy.DecodeExact,
	},
	"brotli": {
		encode:      brotli.Encode,
		decodeExact: brotli.DecodeExact,
	},
}

// Marshal serializes the entry, setting SizeBytes to the serialized length
func (e *Entry) Marshal() ([]byte, error) {
	var b []byte
	var err error
	// SizeBytes is part of the payload, so iterate until its own length settles
	for i := 0; i < 4; i++ {
		b, err = e.MarshalMsg(b[:0])
		if err != nil {
			return nil, err
		}
		if int64(len(b)) == e.SizeBytes {
			return b, nil
		}
		e.SizeBytes = int64(len(b))
	}
	return b, nil
}

// UnmarshalEntry deserializes an entry and checks its recorded size
func UnmarshalEntry(b []byte) (*Entry, error) {
	e := &Entry{}
	if _, err := e.UnmarshalMsg(b); err != nil {
		return nil, err
	}
	if e.SizeBytes != int64(len(b)) {
		return nil, fmt.Errorf("%w: size %d recorded as %d", ErrCorruptEntry, len(b), e.SizeBytes)
	}
	if e.Width <= 0 || e.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrCorruptEntry, e.Width, e.Height)
	}
	return e, nil
}

// Image decodes the entry's pixel data
func (e *Entry) Image() (*image.NRGBA, error) {
	switch e.Encoding {
	case "jpeg", "png":
		img, _, err := image.Decode(bytes.NewReader(e.Data))
		if err != nil {
			return nil, err
		}
		out := Optimize(img, 0)
		if out.Rect.Dx() != e.Width || out.Rect.Dy() != e.Height {
			return nil, fmt.Errorf("%w: decoded %dx%d, expected %dx%d", ErrCorruptEntry,
				out.Rect.Dx(), out.Rect.Dy(), e.Width, e.Height)
		}
		return out, nil
	}
	rc, ok := rawCodecs[e.Encoding]
	if !ok {
		return nil, fmt.Errorf("%w: unknown encoding %q", ErrCorruptEntry, e.Encoding)
	}
	pix, err := rc.decodeExact(e.Data, e.Width*e.Height*4)
	if err != nil {
		return nil, err
	}
	return &image.NRGBA{Pix: pix, Stride: e.Width * 4, Rect: image.Rect(0, 0, e.Width, e.Height)}, nil
}

// Sampling returns the sampling parameters recorded in the entry
func (e *Entry) Sampling() SamplingParams {
	return SamplingParams{
		WrapS:      WrapMode(e.WrapS),
		WrapT:      WrapMode(e.WrapT),
		MinFilter:  FilterMode(e.MinFilter),
		MagFilter:  FilterMode(e.MagFilter),
		MipMaps:    e.MipMaps,
		Anisotropy: e.Anisotropy,
		ColorSpace: ColorSpace(e.ColorSpace),
	}
}
