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
)

func TestValidate(t *testing.T) {
	o := New()
	if err := o.Validate(); err != nil {
		t.Error(err)
	}

	o = &Options{Provider: " FILE "}
	if err := o.Validate(); err != ErrMissingRoot {
		t.Errorf("expected %v got %v", ErrMissingRoot, err)
	}
	if o.Provider != "file" {
		t.Errorf("expected %s got %s", "file", o.Provider)
	}
	if o.MaxBodyBytes != DefaultMaxBodyBytes {
		t.Errorf("expected %d got %d", DefaultMaxBodyBytes, o.MaxBodyBytes)
	}

	o = &Options{Provider: "minio"}
	if err := o.Validate(); err != ErrMissingEndpoint {
		t.Errorf("expected %v got %v", ErrMissingEndpoint, err)
	}
	o.Minio = &MinioOptions{Endpoint: "localhost:9000"}
	if err := o.Validate(); err != ErrMissingBucket {
		t.Errorf("expected %v got %v", ErrMissingBucket, err)
	}
	o.Minio.Bucket = "textures"
	if err := o.Validate(); err != nil {
		t.Error(err)
	}
	if o.Minio.Region != DefaultMinioRegion {
		t.Errorf("expected %s got %s", DefaultMinioRegion, o.Minio.Region)
	}

	o = &Options{Provider: "ftp"}
	if err := o.Validate(); !errors.Is(err, ErrInvalidProvider) {
		t.Errorf("expected %v got %v", ErrInvalidProvider, err)
	}

	o = &Options{RequestsPerSecond: 5}
	if err := o.Validate(); err != nil {
		t.Error(err)
	}
	if o.Burst != 1 {
		t.Errorf("expected %d got %d", 1, o.Burst)
	}
}

func TestClone(t *testing.T) {
	o := New()
	o.Minio = &MinioOptions{Bucket: "a"}
	o2 := o.Clone()
	o2.Minio.Bucket = "b"
	if o.Minio.Bucket != "a" {
		t.Errorf("expected %s got %s", "a", o.Minio.Bucket)
	}
}
