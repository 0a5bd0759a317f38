package lifecycle

import (
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// NormalizeTarget turns a marketplace reference into its identifier.
// Plain identifiers are lower-cased; hostnames and URLs are reduced to the
// registrable domain's first label, so "https://www.ebay.co.uk/itm/1" and
// "ebay.com" both become "ebay".
func NormalizeTarget(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" || !strings.ContainsAny(t, "./:") {
		return t
	}
	host := t
	if strings.Contains(t, "://") {
		u, err := url.Parse(t)
		if err != nil || u.Hostname() == "" {
			return t
		}
		host = u.Hostname()
	} else if i := strings.IndexAny(t, "/:"); i >= 0 {
		host = t[:i]
	}
	registrable, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		registrable = host
	}
	if label, _, ok := strings.Cut(registrable, "."); ok && label != "" {
		return label
	}
	return registrable
}

// normalizeTargets keeps first-seen order and drops empties and duplicates.
func normalizeTargets(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, raw := range in {
		t := NormalizeTarget(raw)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
