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

// Package zstd compresses raw pixel buffers with Zstandard
package zstd

import (
	"errors"

	"github.com/klauspost/compress/zstd"
)

// MaxDecodedBytes bounds the output of a single Decode
const MaxDecodedBytes = 256 << 20

// ErrSizeMismatch is returned by DecodeExact when the output has the wrong length
var ErrSizeMismatch = errors.New("decoded size mismatch")

var commonDecoder *zstd.Decoder
var commonEncoder *zstd.Encoder

func init() {
	commonDecoder, _ = zstd.NewReader(nil, zstd.WithDecoderMaxMemory(MaxDecodedBytes))
	commonEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
}

// Encode returns the encoded version of the byte slice
func Encode(in []byte) []byte {
	return commonEncoder.EncodeAll(in, make([]byte, 0, len(in)/2))
}

// Decode returns the decoded version of the encoded byte slice
func Decode(in []byte) ([]byte, error) {
	return commonDecoder.DecodeAll(in, nil)
}

// DecodeExact decodes in and requires the result to be exactly size bytes
func DecodeExact(in []byte, size int) ([]byte, error) {
	b, err := commonDecoder.DecodeAll(in, make([]byte, 0, size))
	if err != nil {
		return nil, err
	}
	if len(b) != size {
		return nil, ErrSizeMismatch
	}
	return b, nil
}
