package support

import (
	"net/http/httptest"
	"testing"
)

func TestClientIP(t *testing.T) {
	t.Run("prefers first forwarded entry", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		r.RemoteAddr = "192.0.2.1:4321"

		if got := ClientIP(r); got != "203.0.113.9" {
			t.Fatalf("ClientIP returned %q, want 203.0.113.9", got)
		}
	})

	t.Run("trims forwarded whitespace", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("X-Forwarded-For", "  203.0.113.9  ,10.0.0.1")

		if got := ClientIP(r); got != "203.0.113.9" {
			t.Fatalf("ClientIP returned %q, want 203.0.113.9", got)
		}
	})

	t.Run("falls back to peer address", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = "192.0.2.1:4321"

		if got := ClientIP(r); got != "192.0.2.1" {
			t.Fatalf("ClientIP returned %q, want 192.0.2.1", got)
		}
	})

	t.Run("unknown when nothing is available", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.RemoteAddr = ""

		if got := ClientIP(r); got != UnknownAddress {
			t.Fatalf("ClientIP returned %q, want %q", got, UnknownAddress)
		}
	})
}
