// Package url provides location-string handling for the browser stores.
package url

import (
	"net/url"
	"strings"
)

// Blank is the safe placeholder every rejected location collapses to.
const Blank = "about:blank"

var dangerousSchemes = map[string]struct{}{
	"javascript": {},
	"data":       {},
	"vbscript":   {},
}

var internalSchemes = map[string]struct{}{
	"about":   {},
	"browser": {},
	"bezier":  {},
	"chrome":  {},
	"edge":    {},
}

// Normalize adds an https:// prefix to scheme-less input that names a host:
// anything URL-like, plus bare hosts such as "localhost" or "intranet:8080".
// Input that already carries a scheme, or that contains whitespace, is
// returned unchanged.
func Normalize(input string) string {
	input = strings.TrimSpace(input)
	if input == "" || hasScheme(input) {
		return input
	}
	if LooksLikeURL(input) {
		return "https://" + input
	}
	if _, _, ok := splitHost(input); ok {
		return "https://" + input
	}
	return input
}

// LooksLikeURL checks if the input appears to be a URL rather than a search
// query: it has a scheme, names localhost or a host:port, or contains a dot
// and no spaces.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if hasScheme(input) {
		return true
	}
	if host, port, ok := splitHost(input); ok && (port != "" || strings.EqualFold(host, "localhost")) {
		return true
	}
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

// Sanitize returns input unchanged when it is an absolute URL with a safe
// scheme, and Blank otherwise. It never fails.
func Sanitize(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Blank
	}
	parsed, err := url.Parse(trimmed)
	if err != nil || parsed.Scheme == "" {
		return Blank
	}
	if _, bad := dangerousSchemes[strings.ToLower(parsed.Scheme)]; bad {
		return Blank
	}
	return trimmed
}

// Resolve turns free-form address-bar input into a safe location.
// URL-like input is normalized; anything else becomes a search using
// searchTemplate, where %s is replaced by the escaped query. Without a
// template a non-URL input resolves to Blank.
func Resolve(input, searchTemplate string) string {
	input = strings.TrimSpace(input)
	if input == "" {
		return Blank
	}
	if LooksLikeURL(input) {
		return Sanitize(Normalize(input))
	}
	if searchTemplate == "" {
		return Blank
	}
	return Sanitize(strings.Replace(searchTemplate, "%s", url.QueryEscape(input), 1))
}

// IsInternal reports whether the location points at a browser-internal page.
func IsInternal(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	_, ok := internalSchemes[strings.ToLower(parsed.Scheme)]
	return ok
}

// ExtractDomain extracts the normalized domain (host) from a URL string.
// Normalizes by stripping "www." prefix so youtube.com and www.youtube.com
// resolve to the same value.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
}

// FaviconURL returns the favicon service address for a location's domain.
func FaviconURL(rawURL string) string {
	domain := ExtractDomain(rawURL)
	if domain == "" {
		return ""
	}
	return "https://www.google.com/s2/favicons?domain=" + url.QueryEscape(domain) + "&sz=32"
}

// MatchesDomain reports whether rawURL's domain equals domain or is a
// subdomain of it.
func MatchesDomain(rawURL, domain string) bool {
	host := ExtractDomain(rawURL)
	domain = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(domain)), "www.")
	if host == "" || domain == "" {
		return false
	}
	return host == domain || strings.HasSuffix(host, "."+domain)
}

func hasScheme(input string) bool {
	i := strings.Index(input, ":")
	if i <= 0 {
		return false
	}
	for j, r := range input[:i] {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if j == 0 && !isAlpha {
			return false
		}
		if !isAlpha && (r < '0' || r > '9') && r != '+' && r != '-' && r != '.' {
			return false
		}
	}
	// "localhost:8080" and "example.com:443" are host:port, not schemes.
	rest := input[i+1:]
	if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		return false
	}
	return true
}

// splitHost parses scheme-less input of the form host[:port][/path...].
// The host may hold letters, digits, dots and dashes; the port only digits.
func splitHost(input string) (host, port string, ok bool) {
	authority := input
	if i := strings.IndexAny(input, "/?#"); i >= 0 {
		authority = input[:i]
	}
	host = authority
	if i := strings.LastIndex(authority, ":"); i >= 0 {
		host, port = authority[:i], authority[i+1:]
		if port == "" {
			return "", "", false
		}
		for _, r := range port {
			if r < '0' || r > '9' {
				return "", "", false
			}
		}
	}
	if host == "" || strings.ContainsAny(input, " \t\n") {
		return "", "", false
	}
	for _, r := range host {
		isAlnum := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !isAlnum && r != '-' && r != '.' {
			return "", "", false
		}
	}
	return host, port, true
}
