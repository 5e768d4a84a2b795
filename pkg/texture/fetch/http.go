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

package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTP fetches textures with GET requests. Keys that are absolute URLs are
// requested as-is; other keys are appended to BaseURL.
type HTTP struct {
	Client       *http.Client
	BaseURL      string
	MaxBodyBytes int64
}

// NewHTTP returns an HTTP fetcher
func NewHTTP(baseURL string, timeoutMS int, maxBodyBytes int64) *HTTP {
	return &HTTP{
		Client:       &http.Client{Timeout: time.Duration(timeoutMS) * time.Millisecond},
		BaseURL:      baseURL,
		MaxBodyBytes: maxBodyBytes,
	}
}

func (h *HTTP) url(key string) string {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return key
	}
	if h.BaseURL == "" {
		return key
	}
	return strings.TrimSuffix(h.BaseURL, "/") + "/" + strings.TrimPrefix(key, "/")
}

// Fetch performs the GET and returns the body
func (h *HTTP) Fetch(ctx context.Context, key string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url(key), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unexpected status fetching %s: %s", key, resp.Status)
	}
	return readLimited(resp.Body, h.MaxBodyBytes)
}

func readLimited(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > limit {
		return nil, ErrTooLarge
	}
	return b, nil
}
