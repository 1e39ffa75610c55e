// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package abuselimiter tracks failed public-share password attempts per
// (client IP, share token) pair and enforces a windowed attempt cap plus an
// exponential failure backoff, entirely in process memory.
package abuselimiter

import (
	"fmt"
	"sync"
	"time"
)

// entry is the per-key attempt state. All fields are guarded by the owning
// Limiter's mutex.
type entry struct {
	windowStart time.Time
	windowCount int

	attempts     int
	blockedUntil time.Time
}

// Limiter enforces the public-share password abuse policy described for
// key (client IP, share token): a fixed-window attempt cap (the window
// restarts once windowTTL has elapsed since it opened), and an
// exponential backoff once three consecutive password failures accrue.
type Limiter struct {
	mu        sync.Mutex
	entries   map[string]*entry
	windowTTL time.Duration
	windowMax int
}

// New constructs a Limiter from the application's rate-limit configuration.
// A windowMax of 0 disables the window cap; the failure backoff always
// applies.
func New(windowTTL time.Duration, windowMax int) *Limiter {
	return &Limiter{
		entries:   make(map[string]*entry),
		windowTTL: windowTTL,
		windowMax: windowMax,
	}
}

func key(ip, token string) string {
	return ip + "|" + token
}

// Attempt admits or rejects a password-bearing request for (ip, token).
// Call it before verifying the supplied password. A rejection carries the
// number of seconds the caller should wait before retrying.
func (l *Limiter) Attempt(ip, token string) (allowed bool, retryAfterSeconds int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	k := key(ip, token)
	e, found := l.entries[k]
	if !found {
		e = &entry{windowStart: now}
		l.entries[k] = e
	}

	if !e.blockedUntil.IsZero() && now.Before(e.blockedUntil) {
		return false, int(e.blockedUntil.Sub(now).Seconds()) + 1
	}

	if now.Sub(e.windowStart) > l.windowTTL {
		e.windowStart = now
		e.windowCount = 0
	}

	if l.windowMax > 0 && e.windowCount >= l.windowMax {
		retryAfter := l.windowTTL - now.Sub(e.windowStart)
		return false, int(retryAfter.Seconds()) + 1
	}

	e.windowCount++
	return true, 0
}

// RecordResult reports the outcome of a password verification admitted by a
// prior Attempt call. A successful verification clears both counters for
// the key. A failure increments the consecutive-attempts counter and
// computes a backoff of min(300, 2^attempts) seconds; once attempts reaches
// 3, blockedUntil is set that far out, rejected is true and waitSeconds
// holds the active backoff. Earlier failures set no block.
func (l *Limiter) RecordResult(ip, token string, success bool) (rejected bool, waitSeconds int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(ip, token)
	e, found := l.entries[k]
	if !found {
		e = &entry{windowStart: time.Now()}
		l.entries[k] = e
	}

	if success {
		delete(l.entries, k)
		return false, 0
	}

	e.attempts++
	backoff := time.Duration(1<<uint(e.attempts)) * time.Second
	if backoff > 300*time.Second {
		backoff = 300 * time.Second
	}

	if e.attempts >= 3 {
		e.blockedUntil = time.Now().Add(backoff)
		return true, int(backoff.Seconds())
	}

	return false, 0
}

// ErrTooManyAttempts formats the window-exceeded rejection message.
func ErrTooManyAttempts(waitSeconds int) error {
	return fmt.Errorf("too many password attempts, retry in %ds", waitSeconds)
}

// ErrBlocked formats the backoff-active rejection message.
func ErrBlocked(waitSeconds int) error {
	return fmt.Errorf("too many failed password attempts, retry in %ds", waitSeconds)
}

// Run blocks forever, sweeping expired entries every five minutes so
// the map does not grow unbounded under sustained traffic from many
// distinct (ip, token) pairs.
func (l *Limiter) Run() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		l.sweep()
	}
}

// sweep removes entries that are neither inside their attempt window nor
// still blocked.
func (l *Limiter) sweep() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for k, e := range l.entries {
		expired := now.Sub(e.windowStart) > l.windowTTL
		blocked := !e.blockedUntil.IsZero() && now.Before(e.blockedUntil)
		if expired && !blocked {
			delete(l.entries, k)
		}
	}
}
