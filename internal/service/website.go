package service

import (
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

const trackingPrefix = "utm_"

var idnaProfile = idna.Lookup

// normalizeWebsite canonicalizes an organization website: https is assumed when no scheme is
// given, the host is lowercased and punycoded, and utm_ tracking parameters are dropped.
// Values that do not parse as a host URL are kept as trimmed text.
func normalizeWebsite(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	u, ok := sanitizeURL(raw)
	if !ok {
		return &raw
	}
	stripTracking(u)

	out := u.String()
	return &out
}

func sanitizeURL(raw string) (*url.URL, bool) {
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return nil, false
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, false
	}
	u.Scheme = scheme

	host, err := idnaProfile.ToASCII(strings.TrimSuffix(u.Hostname(), "."))
	if err != nil || !strings.Contains(host, ".") {
		return nil, false
	}
	host = strings.ToLower(host)
	if port := u.Port(); port != "" {
		host += ":" + port
	}
	u.Host = host
	return u, true
}

func stripTracking(u *url.URL) {
	query := u.Query()
	changed := false
	for key := range query {
		if strings.HasPrefix(strings.ToLower(key), trackingPrefix) {
			query.Del(key)
			changed = true
		}
	}
	if changed {
		u.RawQuery = query.Encode()
	}
}
