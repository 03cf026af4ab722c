package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/studysync/studysync/internal/app/system/ratelimit"
)

func TestLimiter_Allow(t *testing.T) {
	l := ratelimit.New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("key") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("key") {
		t.Error("fourth attempt should be blocked")
	}
	// Other keys have their own window.
	if !l.Allow("other") {
		t.Error("unrelated key should be allowed")
	}
}

func TestLimiter_Reset(t *testing.T) {
	l := ratelimit.New(1, time.Minute)

	if !l.Allow("key") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("key") {
		t.Fatal("second attempt should be blocked")
	}
	l.Reset("key")
	if !l.Allow("key") {
		t.Error("attempt after reset should be allowed")
	}
}

func TestLimiter_WindowExpiry(t *testing.T) {
	l := ratelimit.New(1, 20*time.Millisecond)

	if !l.Allow("key") {
		t.Fatal("first attempt should be allowed")
	}
	if l.Allow("key") {
		t.Fatal("second attempt should be blocked")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow("key") {
		t.Error("attempt after window expiry should be allowed")
	}
}

func TestClientIP(t *testing.T) {
	cases := []struct {
		name  string
		setup func(r *http.Request)
		want  string
	}{
		{"x-forwarded-for first hop", func(r *http.Request) {
			r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		}, "203.0.113.9"},
		{"x-real-ip", func(r *http.Request) {
			r.Header.Set("X-Real-IP", "203.0.113.7")
		}, "203.0.113.7"},
		{"remote addr", func(r *http.Request) {}, "192.0.2.1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			tc.setup(r)
			if got := ratelimit.ClientIP(r); got != tc.want {
				t.Errorf("ClientIP = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoginLimiter_EmailBudget(t *testing.T) {
	ll := ratelimit.NewLoginLimiter()

	r := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	for i := 0; i < 5; i++ {
		ok, _ := ll.Check(r, "target@example.com")
		if !ok {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	ok, reason := ll.Check(r, "target@example.com")
	if ok {
		t.Fatal("sixth attempt for one account should be blocked")
	}
	if reason == "" {
		t.Error("expected a caller-facing reason")
	}

	ll.ResetEmail("target@example.com")
	if ok, _ := ll.Check(r, "target@example.com"); !ok {
		t.Error("attempt after successful login reset should be allowed")
	}
}
