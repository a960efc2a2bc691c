package util

import "testing"

func TestIsValidHostURL(t *testing.T) {
	tests := []struct {
		name     string
		hostURL  string
		expected bool
	}{
		{"empty", "", false},
		{"loopback with port", "http://127.0.0.1:8080", true},
		{"localhost https", "https://localhost", true},
		{"with path", "http://localhost:8080/localai/", true},
		{"upper case scheme", "HTTP://localhost:8080", false},
		{"mixed case scheme", "Https://localhost", false},
		{"missing scheme", "127.0.0.1:8080", false},
		{"bare host", "localhost", false},
		{"ftp scheme", "ftp://localhost", false},
		{"http lookalike scheme", "httpx://localhost", false},
		{"opaque http", "http:localhost", false},
		{"scheme only", "http://", false},
		{"port only", "http://:8080", false},
		{"leading whitespace", " http://localhost", false},
		{"bad escape", "http://local%zzhost", false},
		{"partially typed", "htt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsValidHostURL(tt.hostURL); got != tt.expected {
				t.Errorf("IsValidHostURL(%q) = %v, expected %v", tt.hostURL, got, tt.expected)
			}
		})
	}
}

func TestResolveURLPath(t *testing.T) {
	tests := []struct {
		name      string
		baseURL   string
		pathOrURL string
		expected  string
	}{
		{
			name:      "base with trailing slash, path with leading slash",
			baseURL:   "http://localhost:8080/localai/",
			pathOrURL: "/v1/models",
			expected:  "http://localhost:8080/localai/v1/models",
		},
		{
			name:      "base without trailing slash",
			baseURL:   "http://127.0.0.1:8080",
			pathOrURL: "/v1/models",
			expected:  "http://127.0.0.1:8080/v1/models",
		},
		{
			name:      "path without leading slash",
			baseURL:   "http://127.0.0.1:8080/",
			pathOrURL: "v1/models",
			expected:  "http://127.0.0.1:8080/v1/models",
		},
		{
			name:      "empty base",
			baseURL:   "",
			pathOrURL: "/v1/models",
			expected:  "/v1/models",
		},
		{
			name:      "empty path",
			baseURL:   "http://127.0.0.1:8080",
			pathOrURL: "",
			expected:  "http://127.0.0.1:8080",
		},
		{
			name:      "absolute URL wins",
			baseURL:   "http://127.0.0.1:8080/",
			pathOrURL: "https://api.example.com/v1/models",
			expected:  "https://api.example.com/v1/models",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveURLPath(tt.baseURL, tt.pathOrURL); got != tt.expected {
				t.Errorf("ResolveURLPath(%q, %q) = %q, expected %q", tt.baseURL, tt.pathOrURL, got, tt.expected)
			}
		})
	}
}
