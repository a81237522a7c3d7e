package origin

import (
	"net/url"
	"strings"
)

// Wildcard matches any single host label, or any origin when used alone.
const Wildcard = "*"

// Pattern is one allowed origin entry.
type Pattern struct {
	scheme string   // empty matches http and https
	labels []string // host labels, "*" matches exactly one label
	port   string   // empty or "*" matches any port
	any    bool
}

// Matcher checks request origins against a fixed allow list.
// It is safe for concurrent use.
type Matcher struct {
	patterns []Pattern
}

// ParsePattern parses an allow list entry. Accepted forms:
//
//	*
//	example.com
//	*.example.com
//	https://*.example.com
//	http://localhost:3000
//
// Entries that cannot be parsed return ok=false.
func ParsePattern(s string) (Pattern, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return Pattern{}, false
	}
	if s == Wildcard {
		return Pattern{any: true}, true
	}

	var scheme string
	if before, after, found := strings.Cut(s, "://"); found {
		scheme, s = before, after
		if scheme != "http" && scheme != "https" {
			return Pattern{}, false
		}
	}
	s = strings.TrimSuffix(s, "/")
	if strings.ContainsAny(s, "/?#@") {
		return Pattern{}, false
	}

	host, port := splitHostPort(s)
	if host == "" {
		return Pattern{}, false
	}

	labels := strings.Split(host, ".")
	for _, l := range labels {
		if l == "" {
			return Pattern{}, false
		}
	}

	return Pattern{scheme: scheme, labels: labels, port: port}, true
}

// Match reports whether an Origin header value is allowed by the pattern.
func (p Pattern) Match(origin string) bool {
	if p.any {
		return true
	}

	u, err := url.Parse(strings.ToLower(strings.TrimSpace(origin)))
	if err != nil || u.Host == "" {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if p.scheme != "" && p.scheme != u.Scheme {
		return false
	}
	if p.port != "" && p.port != Wildcard && p.port != u.Port() {
		return false
	}

	labels := strings.Split(u.Hostname(), ".")
	if len(labels) != len(p.labels) {
		return false
	}
	for i, l := range p.labels {
		if l != Wildcard && l != labels[i] {
			return false
		}
	}
	return true
}

// New builds a Matcher from allow list entries. Invalid entries are skipped.
func New(entries ...string) *Matcher {
	m := &Matcher{}
	for _, e := range entries {
		if p, ok := ParsePattern(e); ok {
			m.patterns = append(m.patterns, p)
		}
	}
	return m
}

// Parse builds a Matcher from a comma separated allow list.
func Parse(list string) *Matcher {
	return New(strings.Split(list, ",")...)
}

// Allowed reports whether origin matches any configured pattern.
// An empty Matcher allows nothing.
func (m *Matcher) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	for _, p := range m.patterns {
		if p.Match(origin) {
			return true
		}
	}
	return false
}

// Empty reports whether no valid patterns are configured.
func (m *Matcher) Empty() bool {
	return len(m.patterns) == 0
}

// splitHostPort separates an optional trailing port without requiring one,
// unlike net.SplitHostPort.
func splitHostPort(s string) (host, port string) {
	i := strings.LastIndexByte(s, ':')
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}
