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


// Package tracing provides distributed tracing services to the visualizer
package tracing

import (
	"context"

	"github.com/roofscape/visualizer/pkg/observability/tracing/options"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	stdout "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// ShutdownFunc defines a function used to Flush a Tracer
type ShutdownFunc func(context.Context) error

// Tracer is a Tracer object used by the visualizer
type Tracer struct {
	trace.Tracer
	Name         string
	ShutdownFunc ShutdownFunc
	Options      *options.Options
}

// Shutdown flushes and stops the Tracer's provider, if any
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t == nil || t.ShutdownFunc == nil {
		return nil
	}
	return t.ShutdownFunc(ctx)
}

// New returns a Tracer for the provided options and installs its provider as
// the global otel TracerProvider, so packages using otel.Tracer pick it up
func New(name string, opts *options.Options) (*Tracer, error) {
	if opts == nil {
		opts = options.New()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if opts.Provider == "" || opts.Provider == "none" {
		return &Tracer{
			Name:    name,
			Tracer:  trace.NewNoopTracerProvider().Tracer(name),
			Options: opts,
		}, nil
	}

	o := []stdout.Option{}
	if opts.PrettyPrint {
		o = append(o, stdout.WithPrettyPrint())
	}
	exp, err := stdout.New(o...)
	if err != nil {
		return nil, err
	}

	var sampler sdktrace.Sampler
	switch opts.SampleRate {
	case 0:
		sampler = sdktrace.NeverSample()
	case 1:
		sampler = sdktrace.AlwaysSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(opts.SampleRate)
	}

	tags := make([]attribute.KeyValue, 1, len(opts.Tags)+1)
	tags[0] = attribute.String("service.name", opts.ServiceName)
	for k, v := range opts.Tags {
		tags = append(tags, attribute.String(k, v))
	}

	tp := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp),
		sdktrace.WithSampler(sampler),
		sdktrace.WithResource(resource.NewWithAttributes("", tags...)),
	)
	otel.SetTracerProvider(tp)

	return &Tracer{
		Name:         name,
		Tracer:       tp.Tracer(name),
		ShutdownFunc: tp.Shutdown,
		Options:      opts,
	}, nil
}
