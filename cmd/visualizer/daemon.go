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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/roofscape/visualizer/pkg/appinfo"
	"github.com/roofscape/visualizer/pkg/cache"
	"github.com/roofscape/visualizer/pkg/cache/registration"
	"github.com/roofscape/visualizer/pkg/config"
	"github.com/roofscape/visualizer/pkg/monitor"
	"github.com/roofscape/visualizer/pkg/observability/logging"
	"github.com/roofscape/visualizer/pkg/observability/metrics"
	"github.com/roofscape/visualizer/pkg/observability/tracing"
	"github.com/roofscape/visualizer/pkg/scene"
	"github.com/roofscape/visualizer/pkg/texture"
)

const shutdownTimeout = 5 * time.Second

// daemon holds the running components
type daemon struct {
	conf       *config.Config
	logger     *logging.Logger
	tracer     *tracing.Tracer
	store      cache.Client
	textures   *texture.Cache
	monitor    *monitor.Monitor
	governor   *scene.Governor
	metricsSrv *http.Server
	hups       chan os.Signal
}

func run(ctx context.Context, args []string, out io.Writer) error {
	conf, flags, err := config.Load(appinfo.Name, appinfo.Version, args)
	if err != nil {
		if flags != nil && !flags.ValidateConfig {
			printUsage(out)
		}
		return fmt.Errorf("could not load configuration: %w", err)
	}
	if flags.PrintVersion {
		printVersion(out)
		return nil
	}
	if flags.ValidateConfig {
		fmt.Fprintln(out, "visualizer configuration validation succeeded.")
		return nil
	}

	d, err := newDaemon(conf)
	if err != nil {
		return err
	}
	defer d.close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	signal.Notify(d.hups, syscall.SIGHUP)
	defer signal.Stop(d.hups)
	return d.serve(ctx)
}

func newDaemon(conf *config.Config) (*daemon, error) {
	if conf.Main.ServerName != "" {
		appinfo.SetServer(conf.Main.ServerName)
	}
	d := &daemon{conf: conf, hups: make(chan os.Signal, 1)}
	d.logger = logging.New(conf.Logging, conf.Main.InstanceID)
	for _, w := range conf.LoaderWarnings {
		d.logger.Warn(w, logging.Pairs{})
	}
	metrics.BuildInfo.WithLabelValues(runtime.Version(), appinfo.GitCommitID, appinfo.Version).Set(1)

	var err error
	if d.tracer, err = tracing.New(appinfo.Name, conf.Tracing); err != nil {
		d.close()
		return nil, fmt.Errorf("tracing: %w", err)
	}
	if d.store, err = registration.NewClient(conf.Cache.Name, conf.Cache, d.logger); err != nil {
		d.close()
		return nil, err
	}
	if d.textures, err = texture.New("textures", conf.Texture, nil, d.store, d.logger); err != nil {
		d.close()
		return nil, err
	}
	if d.monitor, err = monitor.New(conf.Monitor, monitor.RuntimeTelemetry{}, d.logger); err != nil {
		d.close()
		return nil, err
	}
	d.governor = scene.NewGovernor(d.textures, d.logger)
	d.governor.Attach(d.monitor)
	d.metricsSrv = metrics.NewServer(conf.Metrics)

	d.logger.Info("visualizer starting", logging.Pairs{"version": appinfo.Version,
		"server": appinfo.Server, "cacheProvider": conf.Cache.Provider,
		"textureSource": conf.Texture.Source.Provider})
	return d, nil
}

// preload warms the texture cache. A failure is logged and does not stop the daemon.
func (d *daemon) preload(ctx context.Context) {
	keys := d.conf.Texture.PreloadKeys
	if len(keys) == 0 {
		return
	}
	start := time.Now()
	handles, err := d.textures.Preload(ctx, keys)
	if err != nil {
		d.logger.Error("texture preload failed", logging.Pairs{"detail": err.Error(),
			"keys": len(keys)})
		return
	}
	for _, h := range handles {
		h.Release()
	}
	d.logger.Info("textures preloaded", logging.Pairs{"keys": len(keys),
		"elapsed": time.Since(start).String()})
}

func (d *daemon) logStatistics() {
	s := d.textures.Statistics()
	d.logger.Info("texture cache statistics", logging.Pairs{"hits": s.Hits,
		"misses": s.Misses, "hitRate": s.HitRate(), "loaded": s.TotalLoaded,
		"evictions": s.Evictions, "persistedBytes": s.MemoryUsageBytes,
		"residentBytes": s.ResidentBytes, "residentCount": s.ResidentCount})
}

// serve runs until ctx is cancelled or the metrics listener fails
func (d *daemon) serve(ctx context.Context) error {
	errs := make(chan error, 1)
	if d.metricsSrv != nil {
		d.logger.Info("metrics http endpoint starting", logging.Pairs{"address": d.metricsSrv.Addr})
		go func() {
			if err := d.metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
		}()
	}

	d.preload(ctx)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("visualizer shutting down", logging.Pairs{})
			d.logStatistics()
			return nil
		case err := <-errs:
			d.logger.Error("metrics http endpoint failed", logging.Pairs{"detail": err.Error()})
			return err
		case <-d.hups:
			d.textures.Reap()
			d.logStatistics()
		}
	}
}

// close releases everything newDaemon opened, in reverse order
func (d *daemon) close() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if d.metricsSrv != nil {
		d.metricsSrv.Shutdown(ctx)
	}
	// the texture cache closes the persistent tier it was given
	if d.textures != nil {
		if err := d.textures.Close(); err != nil {
			d.logger.Error("texture cache close failed", logging.Pairs{"detail": err.Error()})
		}
	} else if d.store != nil {
		if err := d.store.Close(); err != nil {
			d.logger.Error("persistent cache close failed", logging.Pairs{"detail": err.Error()})
		}
	}
	if d.tracer != nil {
		d.tracer.Shutdown(ctx)
	}
	if d.logger != nil {
		d.logger.Close()
	}
}
