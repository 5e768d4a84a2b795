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

package snappy

import (
	"bytes"
	"testing"
)

func TestDecodeEncode(t *testing.T) {
	const expected = "roof shingle roof shingle roof shingle"
	b := Encode([]byte(expected))
	out, err := Decode(b)
	if err != nil {
		t.Error(err)
	}
	if string(out) != expected {
		t.Errorf("expected %s got %s", expected, string(out))
	}
	if _, err = Decode([]byte("not snappy")); err == nil {
		t.Error("expected error")
	}
}

func TestDecodeExact(t *testing.T) {
	pix := bytes.Repeat([]byte{1, 2, 3, 255}, 64)
	b := Encode(pix)
	out, err := DecodeExact(b, len(pix))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, pix) {
		t.Error("decoded pixels differ")
	}
	if _, err = DecodeExact(b, len(pix)+4); err != ErrSizeMismatch {
		t.Errorf("expected %v got %v", ErrSizeMismatch, err)
	}
}
