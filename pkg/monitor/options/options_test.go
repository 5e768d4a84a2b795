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

import "testing"

func TestValidate(t *testing.T) {
	o := &Options{}
	if err := o.Validate(); err != nil {
		t.Error(err)
	}
	if o.SampleEveryFrames != DefaultSampleEveryFrames {
		t.Errorf("expected %d got %d", DefaultSampleEveryFrames, o.SampleEveryFrames)
	}
	if o.HistorySize != DefaultHistorySize {
		t.Errorf("expected %d got %d", DefaultHistorySize, o.HistorySize)
	}
	if o.Thresholds.MaxDrawCalls != 200 {
		t.Errorf("expected %d got %d", 200, o.Thresholds.MaxDrawCalls)
	}

	o = &Options{Thresholds: &Thresholds{LowFPS: 50}}
	if err := o.Validate(); err != nil {
		t.Error(err)
	}
	if o.Thresholds.GoodFPS != 55 {
		t.Errorf("expected %d got %f", 55, o.Thresholds.GoodFPS)
	}

	o = &Options{Thresholds: &Thresholds{LowFPS: 60}}
	if err := o.Validate(); err != ErrInvalidThresholds {
		t.Errorf("expected %v got %v", ErrInvalidThresholds, err)
	}
}

func TestClone(t *testing.T) {
	o := New()
	o2 := o.Clone()
	o2.Thresholds.MaxTextures = 1
	if o.Thresholds.MaxTextures != 50 {
		t.Errorf("expected %d got %d", 50, o.Thresholds.MaxTextures)
	}
}
