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

package zstd

import (
	"bytes"
	"sync"
	"testing"
)

func TestDecodeEncode(t *testing.T) {
	const expected = "visualizer"
	b, err := Decode(Encode([]byte(expected)))
	if err != nil {
		t.Error(err)
	}
	if string(b) != expected {
		t.Errorf("expected %s got %s", expected, string(b))
	}
}

func TestDecodeExact(t *testing.T) {
	pix := bytes.Repeat([]byte{255, 0, 0, 255}, 64)
	enc := Encode(pix)
	b, err := DecodeExact(enc, len(pix))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, pix) {
		t.Error("decoded pixels differ")
	}
	_, err = DecodeExact(enc, len(pix)-4)
	if err != ErrSizeMismatch {
		t.Errorf("expected %v got %v", ErrSizeMismatch, err)
	}
	_, err = DecodeExact([]byte("not zstd"), 4)
	if err == nil {
		t.Error("expected error for invalid input")
	}
}

// the shared encoder and decoder are used from many goroutines at once
func TestConcurrentEncodeDecode(t *testing.T) {
	testData := [][]byte{
		bytes.Repeat([]byte("test data 1"), 100),
		bytes.Repeat([]byte("different pattern 2"), 150),
		bytes.Repeat([]byte("yet another test 3"), 200),
		bytes.Repeat([]byte("final test pattern 4"), 250),
	}

	const goroutines = 50
	const iterations = 10

	var wg sync.WaitGroup
	errs := make(chan error, goroutines*iterations)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(data []byte, idx int) {
			defer wg.Done()
			for j := 0; j < iterations; j++ {
				decoded, err := Decode(Encode(data))
				if err != nil {
					errs <- err
					return
				}
				if !bytes.Equal(decoded, data) {
					t.Errorf("data corruption: goroutine %d iteration %d", idx, j)
					return
				}
			}
		}(testData[i%len(testData)], i)
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}
