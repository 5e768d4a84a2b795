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
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// File reads textures from files beneath Root. Keys may not escape Root.
type File struct {
	Root         string
	MaxBodyBytes int64
}

// NewFile returns a File fetcher
func NewFile(root string, maxBodyBytes int64) *File {
	return &File{Root: root, MaxBodyBytes: maxBodyBytes}
}

func (f *File) path(key string) (string, error) {
	for _, part := range strings.Split(filepath.ToSlash(key), "/") {
		if part == ".." {
			return "", ErrInvalidKey
		}
	}
	return filepath.Join(f.Root, filepath.Clean("/"+filepath.FromSlash(key))), nil
}

// Fetch reads the file for key
func (f *File) Fetch(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	fh, err := os.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	st, err := fh.Stat()
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, ErrInvalidKey
	}
	return readLimited(fh, f.MaxBodyBytes)
}
