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
	"fmt"
	"strings"
)

const (
	// DefaultProvider fetches textures over HTTP
	DefaultProvider = "http"
	// DefaultTimeoutMS is the default per-request timeout
	DefaultTimeoutMS = 30000
	// DefaultMaxBodyBytes caps a single origin response at 64 MiB
	DefaultMaxBodyBytes = 64 << 20
	// DefaultMinioRegion is used when no region is configured
	DefaultMinioRegion = "us-east-1"
)

var (
	// ErrInvalidProvider indicates an unsupported fetch provider
	ErrInvalidProvider = errors.New("invalid 'provider' config")
	// ErrMissingRoot indicates a file provider without a root directory
	ErrMissingRoot = errors.New("missing 'root' config for file provider")
	// ErrMissingEndpoint indicates a minio provider without an endpoint
	ErrMissingEndpoint = errors.New("missing 'endpoint' config for minio provider")
	// ErrMissingBucket indicates a minio provider without a bucket
	ErrMissingBucket = errors.New("missing 'bucket' config for minio provider")
)

// Options configures where texture bytes are fetched from
type Options struct {
	// Provider is one of "http", "file" or "minio"
	Provider string `yaml:"provider,omitempty"`
	// BaseURL is prepended to relative keys by the http provider
	BaseURL string `yaml:"base_url,omitempty"`
	// TimeoutMS is the http request timeout
	TimeoutMS int `yaml:"timeout_ms,omitempty"`
	// MaxBodyBytes caps the size of a fetched object
	MaxBodyBytes int64 `yaml:"max_body_bytes,omitempty"`
	// Root is the directory served by the file provider
	Root string `yaml:"root,omitempty"`
	// Minio holds the object store settings for the minio provider
	Minio *MinioOptions `yaml:"minio,omitempty"`
	// RequestsPerSecond limits origin fetches when > 0
	RequestsPerSecond float64 `yaml:"requests_per_second,omitempty"`
	// Burst is the rate limiter burst size; defaults to 1 when limiting
	Burst int `yaml:"burst,omitempty"`
}

// MinioOptions holds the settings of an S3-compatible object store
type MinioOptions struct {
	Endpoint        string `yaml:"endpoint,omitempty"`
	AccessKeyID     string `yaml:"access_key_id,omitempty"`
	SecretAccessKey string `yaml:"secret_access_key,omitempty"`
	Region          string `yaml:"region,omitempty"`
	Bucket          string `yaml:"bucket,omitempty"`
	Prefix          string `yaml:"prefix,omitempty"`
	UseSSL          bool   `yaml:"use_ssl,omitempty"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		Provider:     DefaultProvider,
		TimeoutMS:    DefaultTimeoutMS,
		MaxBodyBytes: DefaultMaxBodyBytes,
	}
}

// Clone returns a deep copy of the Options
func (o *Options) Clone() *Options {
	out := *o
	if o.Minio != nil {
		m := *o.Minio
		out.Minio = &m
	}
	return &out
}

// Validate normalizes the Options and returns an error when the selected
// provider lacks the settings it requires
func (o *Options) Validate() error {
	o.Provider = strings.ToLower(strings.TrimSpace(o.Provider))
	if o.Provider == "" {
		o.Provider = DefaultProvider
	}
	if o.TimeoutMS <= 0 {
		o.TimeoutMS = DefaultTimeoutMS
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if o.RequestsPerSecond > 0 && o.Burst < 1 {
		o.Burst = 1
	}
	switch o.Provider {
	case "http":
	case "file":
		if o.Root == "" {
			return ErrMissingRoot
		}
	case "minio":
		if o.Minio == nil || o.Minio.Endpoint == "" {
			return ErrMissingEndpoint
		}
		if o.Minio.Bucket == "" {
			return ErrMissingBucket
		}
		if o.Minio.Region == "" {
			o.Minio.Region = DefaultMinioRegion
		}
	default:
		return fmt.Errorf("%w: %s", ErrInvalidProvider, o.Provider)
	}
	return nil
}
