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

// Package config provides visualizer configuration abilities, including
// parsing configuration files, command line parameters, and environment
// variables, as well as default values.
package config

import (
	"fmt"
	"os"

	co "github.com/roofscape/visualizer/pkg/cache/options"
	mo "github.com/roofscape/visualizer/pkg/monitor/options"
	lo "github.com/roofscape/visualizer/pkg/observability/logging/options"
	metrics "github.com/roofscape/visualizer/pkg/observability/metrics/options"
	tracing "github.com/roofscape/visualizer/pkg/observability/tracing/options"
	so "github.com/roofscape/visualizer/pkg/scene/options"
	to "github.com/roofscape/visualizer/pkg/texture/options"

	"gopkg.in/yaml.v2"
)

// Config is the main configuration object
type Config struct {
	// Main is the primary MainConfig section
	Main *MainConfig `yaml:"main,omitempty"`
	// Logging provides configurations that affect logging behavior
	Logging *lo.Options `yaml:"logging,omitempty"`
	// Metrics provides configurations for collecting Metrics about the application
	Metrics *metrics.Options `yaml:"metrics,omitempty"`
	// Tracing provides the distributed tracing configuration
	Tracing *tracing.Options `yaml:"tracing,omitempty"`
	// Cache configures the persistent tier shared by textures and saved scenes
	Cache *co.Options `yaml:"cache,omitempty"`
	// Texture configures the texture cache and its origin
	Texture *to.Options `yaml:"texture,omitempty"`
	// Monitor configures the performance monitor
	Monitor *mo.Options `yaml:"monitor,omitempty"`
	// Scene configures the scene composer
	Scene *so.Options `yaml:"scene,omitempty"`

	// LoaderWarnings are conditions the loader recovered from
	LoaderWarnings []string `yaml:"-"`

	providedTextureSource string
}

// MainConfig is a collection of general configuration values.
type MainConfig struct {
	// InstanceID represents a unique ID for the current instance, when multiple instances on the same host
	InstanceID int `yaml:"instance_id,omitempty"`
	// ServerName identifies this instance in build info and logs; defaults to os.Hostname
	ServerName string `yaml:"server_name,omitempty"`

	configFilePath string
}

// NewConfig returns a Config initialized with default values.
func NewConfig() *Config {
	hn, _ := os.Hostname()
	return &Config{
		Main:    &MainConfig{ServerName: hn},
		Logging: lo.New(),
		Metrics: metrics.New(),
		Tracing: tracing.New(),
		Cache:   co.New(),
		Texture: to.New(),
		Monitor: mo.New(),
		Scene:   so.New(),
	}
}

// Clone returns an exact copy of the subject *Config
func (c *Config) Clone() *Config {
	out := &Config{
		Main:                  &MainConfig{},
		Logging:               c.Logging.Clone(),
		Metrics:               c.Metrics.Clone(),
		Cache:                 c.Cache.Clone(),
		Texture:               c.Texture.Clone(),
		Monitor:               c.Monitor.Clone(),
		Scene:                 c.Scene.Clone(),
		providedTextureSource: c.providedTextureSource,
	}
	*out.Main = *c.Main
	if c.Tracing != nil {
		t := *c.Tracing
		if c.Tracing.Tags != nil {
			t.Tags = make(map[string]string, len(c.Tracing.Tags))
			for k, v := range c.Tracing.Tags {
				t.Tags[k] = v
			}
		}
		out.Tracing = &t
	}
	if len(c.LoaderWarnings) > 0 {
		out.LoaderWarnings = append([]string(nil), c.LoaderWarnings...)
	}
	return out
}

// ConfigFilePath returns the file path from which this configuration is based
func (c *Config) ConfigFilePath() string {
	if c.Main != nil {
		return c.Main.configFilePath
	}
	return ""
}

// loadFile loads application configuration from a YAML-formatted file.
func (c *Config) loadFile(flags *Flags) error {
	b, err := os.ReadFile(flags.ConfigPath)
	if err != nil {
		return err
	}
	if err = c.loadYAML(b); err != nil {
		return fmt.Errorf("%s: %w", flags.ConfigPath, err)
	}
	c.Main.configFilePath = flags.ConfigPath
	return nil
}

// loadYAML overlays the document onto the current values
func (c *Config) loadYAML(b []byte) error {
	return yaml.Unmarshal(b, c)
}

// String returns the YAML form of the running configuration
func (c *Config) String() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		return ""
	}
	return string(b)
}
