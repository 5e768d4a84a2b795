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

import "errors"

const (
	// DefaultTracerProvider disables tracing
	DefaultTracerProvider = "none"
	// DefaultTracerServiceName is the default service.name attribute on spans
	DefaultTracerServiceName = "visualizer"
	// DefaultSampleRate samples every span when tracing is enabled
	DefaultSampleRate = 1.0
)

// ErrInvalidProvider is returned when the tracing provider is not supported
var ErrInvalidProvider = errors.New("invalid tracing provider")

// Options is a Tracing Options collection
type Options struct {
	// Provider is the tracing exporter: "none" or "stdout"
	Provider string `yaml:"provider,omitempty"`
	// ServiceName is the service.name resource attribute
	ServiceName string `yaml:"service_name,omitempty"`
	// SampleRate is the ratio of spans to sample, between 0 and 1
	SampleRate float64 `yaml:"sample_rate,omitempty"`
	// PrettyPrint indents stdout exporter output
	PrettyPrint bool `yaml:"pretty_print,omitempty"`
	// Tags are added to every span's resource
	Tags map[string]string `yaml:"tags,omitempty"`
}

// New returns a new Options with default values
func New() *Options {
	return &Options{
		Provider:    DefaultTracerProvider,
		ServiceName: DefaultTracerServiceName,
		SampleRate:  DefaultSampleRate,
	}
}

// Validate checks the Options for invalid values
func (o *Options) Validate() error {
	switch o.Provider {
	case "", "none", "stdout":
	default:
		return ErrInvalidProvider
	}
	if o.SampleRate < 0 || o.SampleRate > 1 {
		return errors.New("sample_rate must be between 0 and 1")
	}
	if o.ServiceName == "" {
		o.ServiceName = DefaultTracerServiceName
	}
	return nil
}
