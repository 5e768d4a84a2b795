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


// Package logging provides leveled, structured logging to the visualizer
package logging

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/roofscape/visualizer/pkg/observability/logging/options"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/go-stack/stack"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Pairs represents a key=value pair that helps to describe a log event
type Pairs map[string]interface{}

// Logger is a container for the underlying log provider
type Logger struct {
	logger log.Logger
	closer io.Closer
	level  string

	onceMutex      sync.Mutex
	onceRanEntries map[string]bool
}

func mapToArray(event string, detail Pairs) []interface{} {
	a := make([]interface{}, 0, (len(detail)*2)+2)

	// Ensure the event description is the first Pair in the output order (after prefixes)
	a = append(a, "event", event)
	for k, v := range detail {
		a = append(a, k, v)
	}
	return a
}

func newLogger(wr io.Writer, logLevel string) *Logger {
	l := &Logger{onceRanEntries: make(map[string]bool)}

	logger := log.NewLogfmtLogger(log.NewSyncWriter(wr))
	logger = log.With(logger,
		"time", log.DefaultTimestampUTC,
		"app", "visualizer",
		"caller", log.Valuer(func() interface{} {
			return pkgCaller{stack.Caller(6)}
		}),
	)

	l.level = strings.ToLower(logLevel)

	// wrap logger depending on log level
	switch l.level {
	case "debug":
		logger = level.NewFilter(logger, level.AllowDebug())
	case "info":
		logger = level.NewFilter(logger, level.AllowInfo())
	case "warn":
		logger = level.NewFilter(logger, level.AllowWarn())
	case "error":
		logger = level.NewFilter(logger, level.AllowError())
	case "none":
		logger = level.NewFilter(logger, level.AllowNone())
	default:
		l.level = options.DefaultLogLevel
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	l.logger = logger
	return l
}

// ConsoleLogger returns a Logger that prints log events to the Console
func ConsoleLogger(logLevel string) *Logger {
	return newLogger(os.Stdout, logLevel)
}

// StreamLogger returns a Logger that writes log events to the provided writer
func StreamLogger(w io.Writer, logLevel string) *Logger {
	return newLogger(w, logLevel)
}

// NoopLogger returns a Logger that discards all events
func NoopLogger() *Logger {
	return newLogger(io.Discard, "none")
}

// New returns a Logger for the provided logging configuration. The
// returned Logger will write to files distinguished from other Loggers by the
// instance ID.
func New(o *options.Options, instanceID int) *Logger {
	if o == nil {
		o = options.New()
	}
	if o.LogFile == "" {
		return ConsoleLogger(o.LogLevel)
	}

	logFile := o.LogFile
	if instanceID > 0 {
		logFile = strings.Replace(logFile, ".log", "."+strconv.Itoa(instanceID)+".log", 1)
	}

	wr := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    256,  // megabytes
		MaxBackups: 80,   // 256 megs @ 80 backups is 20GB of Logs
		MaxAge:     7,    // days
		Compress:   true, // Compress Rolled Backups
	}

	l := newLogger(wr, o.LogLevel)
	l.closer = wr
	return l
}

// OrNoop returns l, or a NoopLogger when l is nil
func OrNoop(l *Logger) *Logger {
	if l == nil {
		return NoopLogger()
	}
	return l
}

// Info sends an "INFO" event to the Logger
func (l *Logger) Info(event string, detail Pairs) {
	level.Info(l.logger).Log(mapToArray(event, detail)...)
}

// Warn sends a "WARN" event to the Logger
func (l *Logger) Warn(event string, detail Pairs) {
	level.Warn(l.logger).Log(mapToArray(event, detail)...)
}

// WarnOnce sends a "WARN" event to the Logger only once per key.
// Returns true if this invocation was the first, and thus sent to the Logger
func (l *Logger) WarnOnce(key string, event string, detail Pairs) bool {
	l.onceMutex.Lock()
	defer l.onceMutex.Unlock()
	key = "warn." + key
	if _, ok := l.onceRanEntries[key]; !ok {
		l.onceRanEntries[key] = true
		l.Warn(event, detail)
		return true
	}
	return false
}

// HasWarnedOnce returns true if a warning for the key has already been sent to the Logger
func (l *Logger) HasWarnedOnce(key string) bool {
	l.onceMutex.Lock()
	defer l.onceMutex.Unlock()
	_, ok := l.onceRanEntries["warn."+key]
	return ok
}

// Error sends an "ERROR" event to the Logger
func (l *Logger) Error(event string, detail Pairs) {
	level.Error(l.logger).Log(mapToArray(event, detail)...)
}

// Debug sends a "DEBUG" event to the Logger
func (l *Logger) Debug(event string, detail Pairs) {
	level.Debug(l.logger).Log(mapToArray(event, detail)...)
}

// Level returns the configured Log Level
func (l *Logger) Level() string {
	return l.level
}

// Close closes any opened file handles that were used for logging.
func (l *Logger) Close() {
	if l.closer != nil {
		l.closer.Close()
	}
}

// pkgCaller wraps a stack.Call to make the default string output include the
// package path.
type pkgCaller struct {
	c stack.Call
}

// String returns a path from the call stack that is relative to the root of the project
func (pc pkgCaller) String() string {
	return strings.TrimPrefix(fmt.Sprintf("%+v", pc.c), "github.com/roofscape/visualizer/pkg/")
}
