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

package options

import (
	"errors"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	o := New()
	if o.MaxSizeBytes != 256*1024*1024 {
		t.Errorf("expected %d got %d", 256*1024*1024, o.MaxSizeBytes)
	}
	if o.IdleTimeout != 10*time.Minute {
		t.Errorf("expected %s got %s", 10*time.Minute, o.IdleTimeout)
	}
	if o.SweepInterval != time.Minute {
		t.Errorf("expected %s got %s", time.Minute, o.SweepInterval)
	}
	if err := o.Validate(); err != nil {
		t.Error(err)
	}
}

func TestValidate(t *testing.T) {
	o := &Options{Encoding: " ZSTD ", SweepIntervalMS: 50, IdleTimeoutMS: -1}
	if err := o.Validate(); err != nil {
		t.Fatal(err)
	}
	if o.Encoding != "zstd" {
		t.Errorf("expected %s got %s", "zstd", o.Encoding)
	}
	if o.SweepInterval != 50*time.Millisecond {
		t.Errorf("expected %s got %s", 50*time.Millisecond, o.SweepInterval)
	}
	if o.IdleTimeout != 0 {
		t.Errorf("expected %d got %d", 0, o.IdleTimeout)
	}
	if o.EvictionTargetRatio != DefaultEvictionTargetRatio {
		t.Errorf("expected %f got %f", DefaultEvictionTargetRatio, o.EvictionTargetRatio)
	}
	if o.JPEGQuality != DefaultJPEGQuality {
		t.Errorf("expected %d got %d", DefaultJPEGQuality, o.JPEGQuality)
	}
	if o.Sampling == nil || o.Sampling.Anisotropy != DefaultAnisotropy {
		t.Error("expected default sampling")
	}

	tests := []struct {
		o   *Options
		err error
	}{
		{&Options{Encoding: "webp"}, ErrInvalidEncoding},
		{&Options{EvictionTargetRatio: 1.5}, ErrInvalidTargetRatio},
		{&Options{Sampling: &SamplingOptions{WrapS: "spiral"}}, ErrInvalidWrap},
		{&Options{Sampling: &SamplingOptions{MagFilter: "linear_mipmap_linear"}}, ErrInvalidFilter},
		{&Options{Sampling: &SamplingOptions{ColorSpace: "cmyk"}}, ErrInvalidColorSpace},
	}
	for i, test := range tests {
		if err := test.o.Validate(); !errors.Is(err, test.err) {
			t.Errorf("test %d: expected %v got %v", i, test.err, err)
		}
	}
}

func TestClone(t *testing.T) {
	o := New()
	o.PreloadKeys = []string{"a.jpg"}
	o2 := o.Clone()
	o2.Sampling.WrapS = "repeat"
	o2.PreloadKeys[0] = "b.jpg"
	o2.Source.BaseURL = "http://example.com/"
	if o.Sampling.WrapS != "clamp" {
		t.Errorf("expected %s got %s", "clamp", o.Sampling.WrapS)
	}
	if o.PreloadKeys[0] != "a.jpg" {
		t.Errorf("expected %s got %s", "a.jpg", o.PreloadKeys[0])
	}
	if o.Source.BaseURL != "" {
		t.Errorf("expected empty base url got %s", o.Source.BaseURL)
	}
}
