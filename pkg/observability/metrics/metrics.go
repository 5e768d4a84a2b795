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


// Package metrics implements prometheus metrics and exposes the metrics HTTP listener
package metrics

import (
	"fmt"
	"net/http"

	"github.com/roofscape/visualizer/pkg/observability/metrics/options"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	metricNamespace = "visualizer"
	cacheSubsystem  = "cache"
	renderSubsystem = "render"
	buildSubsystem  = "build"
	sceneSubsystem  = "scene"
)

// BuildInfo is a Gauge representing the binary build information of the running instance
var BuildInfo *prometheus.GaugeVec

// CacheObjectOperations is a Counter of operations (in # of objects) performed on a cache
var CacheObjectOperations *prometheus.CounterVec

// CacheByteOperations is a Counter of operations (in # of bytes) performed on a cache
var CacheByteOperations *prometheus.CounterVec

// CacheEvents is a Counter of events performed on a cache
var CacheEvents *prometheus.CounterVec

// CacheObjects is a Gauge representing the number of objects in a cache
var CacheObjects *prometheus.GaugeVec

// CacheBytes is a Gauge representing the number of bytes in a cache
var CacheBytes *prometheus.GaugeVec

// CacheMaxBytes is a Gauge for the cache's Max Byte Threshold for triggering an eviction exercise
var CacheMaxBytes *prometheus.GaugeVec

// CacheResidentBytes is a Gauge of decoded pixel bytes held by a texture memory tier
var CacheResidentBytes *prometheus.GaugeVec

// CacheLoadDuration is a Histogram of the time taken to materialize a texture, by source tier
var CacheLoadDuration *prometheus.HistogramVec

// RenderFPS is a Gauge of the most recently sampled frames per second
var RenderFPS prometheus.Gauge

// RenderFrameTime is a Gauge of the most recently sampled frame time in milliseconds
var RenderFrameTime prometheus.Gauge

// RenderDrawCalls is a Gauge of the most recently sampled draw call count
var RenderDrawCalls prometheus.Gauge

// RenderTriangles is a Gauge of the most recently sampled triangle count
var RenderTriangles prometheus.Gauge

// RenderRating is a Gauge of the current performance rating (0=excellent .. 3=poor)
var RenderRating prometheus.Gauge

// RenderIssues is a Counter of performance issues raised, by issue
var RenderIssues *prometheus.CounterVec

// SceneOverlays is a Gauge of overlays placed in the scene, by kind
var SceneOverlays *prometheus.GaugeVec

// GovernorActions is a Counter of cache reductions triggered by poor performance, by action
var GovernorActions *prometheus.CounterVec

// Default histogram buckets used for texture loads
var loadBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

func init() {

	BuildInfo = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: buildSubsystem,
			Name:      "info",
			Help: "A metric with a constant '1' value labeled by version," +
				"revision, and goversion from which the visualizer was built.",
		},
		[]string{"goversion", "revision", "version"},
	)

	CacheObjectOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "operation_objects_total",
			Help:      "Count (in # of objects) of operations performed on a cache.",
		},
		[]string{"cache_name", "provider", "operation", "status"},
	)

	CacheByteOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "operation_bytes_total",
			Help:      "Count (in bytes) of operations performed on a cache.",
		},
		[]string{"cache_name", "provider", "operation", "status"},
	)

	CacheEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "events_total",
			Help:      "Count of events performed on a cache.",
		},
		[]string{"cache_name", "provider", "event", "reason"},
	)

	CacheObjects = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "usage_objects",
			Help:      "Number of objects in a cache.",
		},
		[]string{"cache_name", "provider"},
	)

	CacheBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "usage_bytes",
			Help:      "Number of bytes in a cache.",
		},
		[]string{"cache_name", "provider"},
	)

	CacheMaxBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "max_usage_bytes",
			Help:      "Cache's Max Byte Threshold for triggering an eviction exercise.",
		},
		[]string{"cache_name", "provider"},
	)

	CacheResidentBytes = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "resident_bytes",
			Help:      "Decoded pixel bytes resident in a texture memory tier.",
		},
		[]string{"cache_name"},
	)

	CacheLoadDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricNamespace,
			Subsystem: cacheSubsystem,
			Name:      "load_duration_seconds",
			Help:      "Histogram of texture load durations by the tier that served them.",
			Buckets:   loadBuckets,
		},
		[]string{"cache_name", "tier"},
	)

	RenderFPS = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: renderSubsystem,
			Name:      "fps",
			Help:      "Most recently sampled frames per second.",
		},
	)

	RenderFrameTime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: renderSubsystem,
			Name:      "frame_time_ms",
			Help:      "Most recently sampled frame time in milliseconds.",
		},
	)

	RenderDrawCalls = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: renderSubsystem,
			Name:      "draw_calls",
			Help:      "Most recently sampled draw call count.",
		},
	)

	RenderTriangles = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: renderSubsystem,
			Name:      "triangles",
			Help:      "Most recently sampled triangle count.",
		},
	)

	RenderRating = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: renderSubsystem,
			Name:      "rating",
			Help:      "Current performance rating: 0=excellent, 1=good, 2=fair, 3=poor.",
		},
	)

	RenderIssues = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: renderSubsystem,
			Name:      "issues_total",
			Help:      "Count of performance issues raised by the monitor.",
		},
		[]string{"issue"},
	)

	SceneOverlays = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: metricNamespace,
			Subsystem: sceneSubsystem,
			Name:      "overlays",
			Help:      "Number of overlays placed in the scene.",
		},
		[]string{"kind"},
	)

	GovernorActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricNamespace,
			Subsystem: sceneSubsystem,
			Name:      "governor_actions_total",
			Help:      "Count of texture cache reductions triggered by poor performance.",
		},
		[]string{"action"},
	)

	// Register Metrics
	prometheus.MustRegister(BuildInfo)
	prometheus.MustRegister(CacheObjectOperations)
	prometheus.MustRegister(CacheByteOperations)
	prometheus.MustRegister(CacheEvents)
	prometheus.MustRegister(CacheObjects)
	prometheus.MustRegister(CacheBytes)
	prometheus.MustRegister(CacheMaxBytes)
	prometheus.MustRegister(CacheResidentBytes)
	prometheus.MustRegister(CacheLoadDuration)
	prometheus.MustRegister(RenderFPS)
	prometheus.MustRegister(RenderFrameTime)
	prometheus.MustRegister(RenderDrawCalls)
	prometheus.MustRegister(RenderTriangles)
	prometheus.MustRegister(RenderRating)
	prometheus.MustRegister(RenderIssues)
	prometheus.MustRegister(SceneOverlays)
	prometheus.MustRegister(GovernorActions)
}

// Handler returns the http handler for the listener
func Handler() http.Handler {
	return promhttp.Handler()
}

// NewServer returns an http.Server serving the /metrics route per the options,
// or nil if the listener is disabled
func NewServer(o *options.Options) *http.Server {
	if o == nil || o.ListenPort < 1 {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return &http.Server{
		Addr:    fmt.Sprintf("%s:%d", o.ListenAddress, o.ListenPort),
		Handler: mux,
	}
}
