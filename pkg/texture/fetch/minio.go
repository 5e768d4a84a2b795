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
	"path"
	"strings"

	"github.com/roofscape/visualizer/pkg/texture/fetch/options"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Minio fetches textures from an S3-compatible object store
type Minio struct {
	client       *minio.Client
	bucket       string
	prefix       string
	maxBodyBytes int64
}

// NewMinio returns a Minio fetcher connected per the options
func NewMinio(o *options.MinioOptions, maxBodyBytes int64) (*Minio, error) {
	if o == nil || o.Endpoint == "" {
		return nil, options.ErrMissingEndpoint
	}
	client, err := minio.New(o.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(o.AccessKeyID, o.SecretAccessKey, ""),
		Secure: o.UseSSL,
		Region: o.Region,
	})
	if err != nil {
		return nil, err
	}
	return NewMinioWithClient(client, o.Bucket, o.Prefix, maxBodyBytes), nil
}

// NewMinioWithClient returns a Minio fetcher using an existing client
func NewMinioWithClient(client *minio.Client, bucket, prefix string, maxBodyBytes int64) *Minio {
	return &Minio{
		client:       client,
		bucket:       bucket,
		prefix:       prefix,
		maxBodyBytes: maxBodyBytes,
	}
}

func (m *Minio) objectName(key string) string {
	return path.Join(m.prefix, strings.TrimPrefix(key, "/"))
}

// Fetch downloads the object for key
func (m *Minio) Fetch(ctx context.Context, key string) ([]byte, error) {
	name := m.objectName(key)
	info, err := m.client.StatObject(ctx, m.bucket, name, minio.StatObjectOptions{})
	if err != nil {
		return nil, minioError(err)
	}
	if m.maxBodyBytes > 0 && info.Size > m.maxBodyBytes {
		return nil, ErrTooLarge
	}
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, minioError(err)
	}
	defer obj.Close()
	b, err := readLimited(obj, m.maxBodyBytes)
	if err != nil {
		return nil, minioError(err)
	}
	return b, nil
}

func minioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NotFound", "NoSuchBucket":
		return ErrNotFound
	}
	return err
}
