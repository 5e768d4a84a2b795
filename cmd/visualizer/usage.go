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
	"fmt"
	"io"
	"runtime"

	"github.com/roofscape/visualizer/pkg/appinfo"
)

const usageText = `
Visualizer Usage:

 Print Version Info:
  visualizer -version

 Validate a configuration file:
  visualizer -config /path/to/visualizer.yaml -validate-config

 Run the texture cache daemon:
  visualizer [-config /path/to/visualizer.yaml] [-log-level debug|info|warn|error]
    [-metrics-port 8481] [-cache-provider memory|filesystem|bbolt|badger|redis]
    [-texture-source https://cdn.example.com/textures|/srv/textures]
    [-preload house.jpg,shingle.png] [-instance-id 1]

------

 Environment variables VIS_LOG_LEVEL, VIS_METRICS_PORT, VIS_CACHE_PROVIDER and
 VIS_TEXTURE_SOURCE override the configuration file; flags override both.

 The daemon reaps the texture cache and logs its statistics on SIGHUP, and shuts
 down on SIGINT or SIGTERM.
`

func version() string {
	return fmt.Sprintf("%s version: %s, buildInfo: %s %s, goVersion: %s",
		appinfo.Name, appinfo.Version,
		appinfo.BuildTime, appinfo.GitCommitID,
		runtime.Version(),
	)
}

func printVersion(w io.Writer) {
	fmt.Fprintln(w, version())
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
