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

// Package locks provides named read/write locks, so work on one key can be
// serialized without blocking work on other keys
package locks

import (
	"errors"
	"sync"
)

// ErrInvalidLockName is returned when acquiring a lock with an empty name
var ErrInvalidLockName = errors.New("invalid lock name")

// NamedLocker hands out locks by name
type NamedLocker interface {
	Acquire(string) (NamedLock, error)
	RAcquire(string) (NamedLock, error)
	Len() int
}

// NamedLock is a lock returned by a NamedLocker
type NamedLock interface {
	Release()
	RRelease()
}

type namedLocker struct {
	mtx   sync.Mutex
	locks map[string]*namedLock
}

type namedLock struct {
	sync.RWMutex
	name   string
	queue  int
	locker *namedLocker
}

// NewNamedLocker returns a new NamedLocker
func NewNamedLocker() NamedLocker {
	return &namedLocker{locks: make(map[string]*namedLock)}
}

func (lk *namedLocker) get(name string) (*namedLock, error) {
	if name == "" {
		return nil, ErrInvalidLockName
	}
	lk.mtx.Lock()
	nl, ok := lk.locks[name]
	if !ok {
		nl = &namedLock{name: name, locker: lk}
		lk.locks[name] = nl
	}
	nl.queue++
	lk.mtx.Unlock()
	return nl, nil
}

// done drops the lock from the locker once nobody holds or waits on it
func (lk *namedLocker) done(nl *namedLock) {
	lk.mtx.Lock()
	nl.queue--
	if nl.queue == 0 {
		delete(lk.locks, nl.name)
	}
	lk.mtx.Unlock()
}

// Acquire blocks until the write lock for name is held
func (lk *namedLocker) Acquire(name string) (NamedLock, error) {
	nl, err := lk.get(name)
	if err != nil {
		return nil, err
	}
	nl.Lock()
	return nl, nil
}

// RAcquire blocks until a read lock for name is held
func (lk *namedLocker) RAcquire(name string) (NamedLock, error) {
	nl, err := lk.get(name)
	if err != nil {
		return nil, err
	}
	nl.RLock()
	return nl, nil
}

// Len returns the number of names currently locked or awaited
func (lk *namedLocker) Len() int {
	lk.mtx.Lock()
	defer lk.mtx.Unlock()
	return len(lk.locks)
}

// Release releases the write lock
func (nl *namedLock) Release() {
	nl.Unlock()
	nl.locker.done(nl)
}

// RRelease releases a read lock
func (nl *namedLock) RRelease() {
	nl.RUnlock()
	nl.locker.done(nl)
}
