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


package tracing

import (
	"context"
	"testing"

	"github.com/roofscape/visualizer/pkg/observability/tracing/options"
)

func TestNewNoop(t *testing.T) {
	tr, err := New("test", nil)
	if err != nil {
		t.Fatal(err)
	}
	_, span := tr.Start(context.Background(), "noop")
	span.End()
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
}

func TestNewStdout(t *testing.T) {
	tr, err := New("test", &options.Options{Provider: "stdout", SampleRate: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	if tr.ShutdownFunc == nil {
		t.Error("expected shutdown func")
	}
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
}

func TestNewInvalid(t *testing.T) {
	_, err := New("test", &options.Options{Provider: "jaeger"})
	if err != options.ErrInvalidProvider {
		t.Errorf("expected %v got %v", options.ErrInvalidProvider, err)
	}
	_, err = New("test", &options.Options{Provider: "stdout", SampleRate: 2})
	if err == nil {
		t.Error("expected error for invalid sample rate")
	}
}

func TestNilTracerShutdown(t *testing.T) {
	var tr *Tracer
	if err := tr.Shutdown(context.Background()); err != nil {
		t.Error(err)
	}
}
