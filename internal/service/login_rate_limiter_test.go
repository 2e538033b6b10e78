package service

import (
	"testing"
	"time"
)

func TestLoginRateLimiterAllow(t *testing.T) {
	l := NewLoginRateLimiter(time.Minute, 2)

	if !l.Allow("ana@x.com") || !l.Allow("ana@x.com") {
		t.Fatalf("expected attempts within max to be allowed")
	}
	if l.Allow("ana@x.com") {
		t.Fatalf("expected attempt over max to be denied")
	}
	// Claves distintas no comparten la ventana.
	if !l.Allow("otra@x.com") {
		t.Fatalf("expected independent key to be allowed")
	}
}
