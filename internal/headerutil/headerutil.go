// Package headerutil parses the pagination and throttling headers shared by
// the REST providers this service talks to.
package headerutil

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// ParseRetryAfter interprets a Retry-After header value. Providers send
// either a number of seconds or an HTTP date; anything unparsable yields 0.
func ParseRetryAfter(value string) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0
	}
	if secs, err := strconv.Atoi(value); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(value); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// ParseLink splits an RFC 5988 style Link header into rel -> url pairs, e.g.
//
//	<https://api.example.com/orders?page=2>; rel="next", <...>; rel="last"
//
// Unrecognized segments are skipped.
func ParseLink(header string) map[string]string {
	links := make(map[string]string)
	for _, part := range strings.Split(header, ",") {
		sections := strings.Split(part, ";")
		if len(sections) < 2 {
			continue
		}
		url := strings.Trim(strings.TrimSpace(sections[0]), "<>")
		if url == "" {
			continue
		}
		for _, attr := range sections[1:] {
			attr = strings.TrimSpace(attr)
			if !strings.HasPrefix(attr, "rel=") {
				continue
			}
			rel := strings.Trim(strings.TrimPrefix(attr, "rel="), `"`)
			if rel != "" {
				links[rel] = url
			}
		}
	}
	return links
}
