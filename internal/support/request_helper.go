package support

import (
	"net"
	"net/http"
	"strings"
)

// UnknownAddress is reported when no client address can be resolved from
// the request.
const UnknownAddress = "unknown"

// ClientIP resolves the originating client address of a request. The first
// entry of X-Forwarded-For wins when present, otherwise the transport peer
// address is used.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil && host != "" {
		return host
	}
	if r.RemoteAddr != "" {
		return r.RemoteAddr
	}
	return UnknownAddress
}

// UserAgent returns the request's user agent header, empty when absent.
func UserAgent(r *http.Request) string {
	return r.Header.Get("User-Agent")
}
