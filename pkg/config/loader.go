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

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/roofscape/visualizer/pkg/texture/fetch/options"
)

// Load returns the Application Configuration, starting with a default config,
// then overriding with any provided config file, then env vars, and finally flags
func Load(applicationName string, applicationVersion string, arguments []string) (*Config, *Flags, error) {
	c := NewConfig()
	flags, err := parseFlags(applicationName, arguments) // Parse here to get config file path and version flags
	if err != nil {
		return nil, flags, err
	}
	if flags.PrintVersion {
		return nil, flags, nil
	}
	if err := c.loadFile(flags); err != nil {
		if flags.customPath || !errors.Is(err, fs.ErrNotExist) {
			// a config file exists or was asked for but couldn't be loaded
			return nil, flags, err
		}
	}

	c.loadEnvVars()
	c.loadFlags(flags) // load parsed flags to override file and envs

	if err := c.validate(); err != nil {
		return nil, flags, err
	}
	return c, flags, nil
}

// applyTextureSource points the origin at a URL or a local directory
func applyTextureSource(o *options.Options, source string) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		o.Provider = "http"
		o.BaseURL = source
		return
	}
	o.Provider = "file"
	o.Root = source
}

// validate checks every section and fills derived values
func (c *Config) validate() error {
	if c.Main == nil {
		c.Main = &MainConfig{}
	}
	if c.Logging == nil {
		c.Logging = NewConfig().Logging
	}
	if !c.Logging.Validate() {
		c.LoaderWarnings = append(c.LoaderWarnings,
			"unknown log level, using "+c.Logging.LogLevel)
	}
	if c.Metrics == nil {
		c.Metrics = NewConfig().Metrics
	}
	if c.Tracing == nil {
		c.Tracing = NewConfig().Tracing
	}
	if err := c.Tracing.Validate(); err != nil {
		return fmt.Errorf("tracing: %w", err)
	}
	if c.Cache == nil {
		c.Cache = NewConfig().Cache
	}
	if err := c.Cache.Initialize(DefaultCacheName); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	if c.Texture == nil {
		c.Texture = NewConfig().Texture
	}
	if c.Texture.Source == nil {
		c.Texture.Source = options.New()
	}
	if c.providedTextureSource != "" {
		applyTextureSource(c.Texture.Source, c.providedTextureSource)
	}
	if err := c.Texture.Validate(); err != nil {
		return fmt.Errorf("texture: %w", err)
	}
	if c.Monitor == nil {
		c.Monitor = NewConfig().Monitor
	}
	if err := c.Monitor.Validate(); err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	if c.Scene == nil {
		c.Scene = NewConfig().Scene
	}
	if err := c.Scene.Validate(); err != nil {
		return fmt.Errorf("scene: %w", err)
	}
	return nil
}
