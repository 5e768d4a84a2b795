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
	"flag"
	"io"
	"strings"
)

const (
	// Command-line flags
	cfConfig        = "config"
	cfVersion       = "version"
	cfValidate      = "validate-config"
	cfLogLevel      = "log-level"
	cfInstanceID    = "instance-id"
	cfMetricsPort   = "metrics-port"
	cfCacheProvider = "cache-provider"
	cfTextureSource = "texture-source"
	cfPreload       = "preload"
)

// Flags holds the values for whitelisted flags
type Flags struct {
	PrintVersion      bool
	ValidateConfig    bool
	customPath        bool
	MetricsListenPort int
	InstanceID        int
	ConfigPath        string
	LogLevel          string
	CacheProvider     string
	TextureSource     string
	Preload           string
}

func parseFlags(applicationName string, arguments []string) (*Flags, error) {
	flags := &Flags{}
	flagSet := flag.NewFlagSet(applicationName, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	flagSet.BoolVar(&flags.PrintVersion, cfVersion, false,
		"Prints the visualizer version")
	flagSet.BoolVar(&flags.ValidateConfig, cfValidate, false,
		"Validates a visualizer config and exits")
	flagSet.StringVar(&flags.ConfigPath, cfConfig, "",
		"Path to visualizer Config File")
	flagSet.StringVar(&flags.LogLevel, cfLogLevel, "",
		"Level of Logging to use (debug, info, warn, error)")
	flagSet.IntVar(&flags.InstanceID, cfInstanceID, 0,
		"Instance ID is for running multiple visualizer processes"+
			" from the same config while logging to their own files")
	flagSet.IntVar(&flags.MetricsListenPort, cfMetricsPort, 0,
		"Port that the /metrics endpoint will listen on")
	flagSet.StringVar(&flags.CacheProvider, cfCacheProvider, "",
		"Persistent tier provider (memory, filesystem, bbolt, badger, redis)")
	flagSet.StringVar(&flags.TextureSource, cfTextureSource, "",
		"Texture origin: an http(s) base URL or a local directory")
	flagSet.StringVar(&flags.Preload, cfPreload, "",
		"Comma-separated texture keys to load at startup")

	err := flagSet.Parse(arguments)
	if err != nil {
		return nil, err
	}
	if flags.ConfigPath != "" {
		flags.customPath = true
	} else {
		flags.ConfigPath = DefaultConfigPath
	}
	return flags, nil
}

// loadFlags loads configuration from command line flags.
func (c *Config) loadFlags(flags *Flags) {
	if flags.LogLevel != "" {
		c.Logging.LogLevel = flags.LogLevel
	}
	if flags.InstanceID > 0 {
		c.Main.InstanceID = flags.InstanceID
	}
	if flags.MetricsListenPort > 0 {
		c.Metrics.ListenPort = flags.MetricsListenPort
	}
	if flags.CacheProvider != "" {
		c.Cache.Provider = flags.CacheProvider
	}
	if flags.TextureSource != "" {
		c.providedTextureSource = flags.TextureSource
	}
	if flags.Preload != "" {
		keys := strings.Split(flags.Preload, ",")
		c.Texture.PreloadKeys = c.Texture.PreloadKeys[:0]
		for _, k := range keys {
			if k = strings.TrimSpace(k); k != "" {
				c.Texture.PreloadKeys = append(c.Texture.PreloadKeys, k)
			}
		}
	}
}
