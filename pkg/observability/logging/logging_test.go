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


package logging

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/roofscape/visualizer/pkg/observability/logging/options"
)

func TestConsoleLogger(t *testing.T) {

	testCases := []string{
		"debug",
		"info",
		"warn",
		"error",
		"none",
	}
	// it should create a logger for each level
	for _, tc := range testCases {
		t.Run(tc, func(t *testing.T) {
			l := ConsoleLogger(tc)
			if l.level != tc {
				t.Errorf("mismatch in log level: expected=%s actual=%s", tc, l.level)
			}
		})
	}
}

func TestConsoleLoggerUnknownLevel(t *testing.T) {
	l := ConsoleLogger("trace")
	if l.Level() != "info" {
		t.Errorf("expected %s got %s", "info", l.Level())
	}
}

func TestNewLogger_LogFile(t *testing.T) {
	td := t.TempDir()
	fileName := td + "/out.log"
	instanceFileName := td + "/out.1.log"
	// it should create a logger that outputs to an instance-specific log file
	l := New(&options.Options{LogFile: fileName, LogLevel: "info"}, 1)
	l.Info("test entry", Pairs{"testKey": "testVal"})
	if _, err := os.Stat(instanceFileName); err != nil {
		t.Error(err)
	}
	l.Close()
}

func TestNewNilOptions(t *testing.T) {
	l := New(nil, 0)
	if l.Level() != options.DefaultLogLevel {
		t.Errorf("expected %s got %s", options.DefaultLogLevel, l.Level())
	}
}

func TestStreamLoggerFiltersLevels(t *testing.T) {
	buf := &bytes.Buffer{}
	l := StreamLogger(buf, "warn")
	l.Debug("debug entry", Pairs{"k": "v"})
	l.Info("info entry", nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %s", buf.String())
	}
	l.Warn("warn entry", Pairs{"cacheName": "textures"})
	out := buf.String()
	if !strings.Contains(out, "event=\"warn entry\"") {
		t.Errorf("expected event in output, got %s", out)
	}
	if !strings.Contains(out, "cacheName=textures") {
		t.Errorf("expected detail pair in output, got %s", out)
	}
	if !strings.Contains(out, "level=warn") {
		t.Errorf("expected level in output, got %s", out)
	}
}

func TestWarnOnce(t *testing.T) {
	buf := &bytes.Buffer{}
	l := StreamLogger(buf, "info")

	if l.HasWarnedOnce("key") {
		t.Error("expected false")
	}
	if !l.WarnOnce("key", "first", nil) {
		t.Error("expected true")
	}
	if l.WarnOnce("key", "second", nil) {
		t.Error("expected false")
	}
	if !l.HasWarnedOnce("key") {
		t.Error("expected true")
	}
	if strings.Contains(buf.String(), "second") {
		t.Errorf("expected only one warning, got %s", buf.String())
	}
}

func TestNoopLogger(t *testing.T) {
	l := OrNoop(nil)
	l.Error("nothing", Pairs{"a": 1})
	if l.Level() != "none" {
		t.Errorf("expected %s got %s", "none", l.Level())
	}
	l.Close()
}
