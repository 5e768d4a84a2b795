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


package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/roofscape/visualizer/pkg/observability/metrics/options"
)

func TestHandler(t *testing.T) {
	RenderFPS.Set(59)
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	Handler().ServeHTTP(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("expected %d got %d", http.StatusOK, w.Code)
	}
	if !strings.Contains(w.Body.String(), "visualizer_render_fps 59") {
		t.Error("expected render fps gauge in output")
	}
}

func TestNewServer(t *testing.T) {
	if s := NewServer(nil); s != nil {
		t.Error("expected nil server for nil options")
	}
	if s := NewServer(&options.Options{ListenPort: 0}); s != nil {
		t.Error("expected nil server for disabled listener")
	}
	s := NewServer(&options.Options{ListenAddress: "127.0.0.1", ListenPort: 9999})
	if s == nil {
		t.Fatal("expected server")
	}
	if s.Addr != "127.0.0.1:9999" {
		t.Errorf("expected %s got %s", "127.0.0.1:9999", s.Addr)
	}
}
