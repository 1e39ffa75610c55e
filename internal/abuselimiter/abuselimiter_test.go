// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package abuselimiter

import (
	"testing"
	"time"
)

func TestAttempt_WithinWindow(t *testing.T) {
	l := New(time.Minute, 10)

	for i := 0; i < 10; i++ {
		if allowed, wait := l.Attempt("1.2.3.4", "tok"); !allowed {
			t.Fatalf("attempt %d: expected allowed, got blocked for %ds", i, wait)
		}
	}

	if allowed, wait := l.Attempt("1.2.3.4", "tok"); allowed {
		t.Fatalf("expected 11th attempt in window to be rejected, wait=%d", wait)
	}
}

func TestAttempt_WindowIsPerKey(t *testing.T) {
	l := New(time.Minute, 1)

	if allowed, _ := l.Attempt("1.2.3.4", "tok-a"); !allowed {
		t.Fatalf("expected first attempt on tok-a to be allowed")
	}
	if allowed, _ := l.Attempt("1.2.3.4", "tok-b"); !allowed {
		t.Fatalf("expected first attempt on a different token to be allowed")
	}
}

func TestRecordResult_SuccessClearsState(t *testing.T) {
	l := New(time.Minute, 10)

	l.RecordResult("1.2.3.4", "tok", false)
	l.RecordResult("1.2.3.4", "tok", false)
	l.RecordResult("1.2.3.4", "tok", true)

	if rejected, _ := l.RecordResult("1.2.3.4", "tok", false); rejected {
		t.Fatalf("expected fresh failure count after success to not yet trip backoff")
	}
}

func TestRecordResult_BackoffTripsAtThreeFailures(t *testing.T) {
	l := New(time.Minute, 100)

	if rejected, _ := l.RecordResult("1.2.3.4", "tok", false); rejected {
		t.Fatalf("1st failure: expected not rejected")
	}
	if rejected, _ := l.RecordResult("1.2.3.4", "tok", false); rejected {
		t.Fatalf("2nd failure: expected not rejected")
	}
	rejected, wait := l.RecordResult("1.2.3.4", "tok", false)
	if !rejected {
		t.Fatalf("3rd failure: expected rejected")
	}
	if wait != 8 {
		t.Fatalf("3rd failure: expected 8s backoff (2^3), got %ds", wait)
	}

	if allowed, remaining := l.Attempt("1.2.3.4", "tok"); allowed || remaining <= 0 {
		t.Fatalf("expected subsequent attempt to be blocked with positive wait, got allowed=%v wait=%d", allowed, remaining)
	}
}

func TestRecordResult_BackoffCapsAt300Seconds(t *testing.T) {
	l := New(time.Minute, 1000)

	var wait int
	for i := 0; i < 10; i++ {
		_, wait = l.RecordResult("1.2.3.4", "tok", false)
	}

	if wait != 300 {
		t.Fatalf("expected backoff to cap at 300s, got %ds", wait)
	}
}

func TestSweep_RemovesExpiredUnblockedEntries(t *testing.T) {
	l := New(10*time.Millisecond, 10)
	l.Attempt("1.2.3.4", "tok")

	time.Sleep(20 * time.Millisecond)
	l.sweep()

	l.mu.Lock()
	_, found := l.entries["1.2.3.4|tok"]
	l.mu.Unlock()

	if found {
		t.Fatalf("expected expired entry to be swept")
	}
}
