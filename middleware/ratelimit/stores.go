// Copyright 2026 The Strada Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ratelimit

import (
	"sync"
	"time"
)

// MemoryStore is an in-process fixed-window counter store. Counters roll
// over when their window expires; a background sweeper removes entries
// that have been idle for two full windows.
type MemoryStore struct {
	mu      sync.Mutex
	window  time.Duration
	entries map[string]*windowEntry
	done    chan struct{}
	once    sync.Once
}

type windowEntry struct {
	count       int
	windowStart time.Time
}

// NewMemoryStore creates a memory store for the given window duration.
// Call Close when the store is no longer needed to stop the sweeper.
func NewMemoryStore(window time.Duration) *MemoryStore {
	s := &MemoryStore{
		window:  window,
		entries: make(map[string]*windowEntry),
		done:    make(chan struct{}),
	}
	go s.sweep()
	return s
}

// Increment bumps the counter for key in the current window, starting a
// fresh window when the previous one has expired.
func (s *MemoryStore) Increment(key string) (int, error) {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok || now.Sub(e.windowStart) >= s.window {
		e = &windowEntry{windowStart: now}
		s.entries[key] = e
	}
	e.count++
	return e.count, nil
}

// Decrement returns one unit of quota to key within its current window.
func (s *MemoryStore) Decrement(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok && e.count > 0 {
		e.count--
	}
	return nil
}

// Reset clears the counter for key.
func (s *MemoryStore) Reset(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

// Close stops the background sweeper. Safe to call multiple times.
func (s *MemoryStore) Close() {
	s.once.Do(func() { close(s.done) })
}

func (s *MemoryStore) sweep() {
	ticker := time.NewTicker(s.window)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for key, e := range s.entries {
				if now.Sub(e.windowStart) >= 2*s.window {
					delete(s.entries, key)
				}
			}
			s.mu.Unlock()
		}
	}
}
