package websocket

import (
	"net/http"
	"net/url"
	"strings"
)

// checkOrigin accepts same-host pages, clients that send no Origin, and the configured browser origins.
// Patterns may hold a single "*" wildcard, the way the http router's cors allowlist does.
func (that *Server) checkOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}

	if u, err := url.Parse(origin); err == nil && strings.EqualFold(u.Host, req.Host) {
		return true
	}

	if originAllowed(origin, that.options.AllowedOrigins) {
		return true
	}

	that.logger.Warn("origin rejected", "method", "checkOrigin", "origin", origin)

	return false
}

func originAllowed(origin string, patterns []string) bool {
	origin = strings.ToLower(origin)

	for _, pattern := range patterns {
		pattern = strings.ToLower(pattern)

		if pattern == "*" || pattern == origin {
			return true
		}

		prefix, suffix, found := strings.Cut(pattern, "*")
		if found && len(origin) >= len(prefix)+len(suffix) &&
			strings.HasPrefix(origin, prefix) && strings.HasSuffix(origin, suffix) {
			return true
		}
	}

	return false
}
