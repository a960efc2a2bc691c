package util

import (
	"net/url"
	"path"
	"strings"
)

// IsValidHostURL reports whether hostURL is a well formed absolute http or
// https URL. Purely lexical, the host is never contacted. The scheme must be
// lower case, the lister relies on the same prefix check.
func IsValidHostURL(hostURL string) bool {
	if !strings.HasPrefix(hostURL, "http://") && !strings.HasPrefix(hostURL, "https://") {
		return false
	}

	parsed, err := url.Parse(hostURL)
	if err != nil {
		return false
	}

	return parsed.IsAbs() && parsed.Host != "" && parsed.Hostname() != ""
}

// ResolveURLPath resolves a path or absolute URL against a base URL.
// If pathOrURL is already an absolute URL it is returned as-is, otherwise it is
// joined with the base URL's path, preserving any path prefix in the base URL.
//
// url.ResolveReference() treats paths starting with "/" as absolute references
// per RFC 3986 and would drop a base prefix such as a reverse proxy mount.
//
// Examples:
//   - ResolveURLPath("http://localhost:8080/localai/", "/v1/models") -> "http://localhost:8080/localai/v1/models"
//   - ResolveURLPath("http://localhost:8080/", "http://other:9000/models") -> "http://other:9000/models"
func ResolveURLPath(baseURL, pathOrURL string) string {
	if baseURL == "" {
		return pathOrURL
	}
	if pathOrURL == "" {
		return baseURL
	}

	if parsed, err := url.Parse(pathOrURL); err == nil && parsed.IsAbs() {
		return pathOrURL
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return pathOrURL
	}

	base.Path = path.Join(base.Path, pathOrURL)
	return base.String()
}
