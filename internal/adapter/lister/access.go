package lister

import (
	"fmt"
	"strings"

	"github.com/thushan/llmsource/internal/core/domain"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderOrganization  = "OpenAI-Organization"
	HeaderHelicone      = "Helicone-Auth"
)

// normaliseHost prepends https:// to scheme-less hosts and trims trailing slashes
func normaliseHost(host string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("host URL cannot be empty")
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	return strings.TrimRight(host, "/"), nil
}

// accessHeaders only carries the credentials that are actually set, LocalAI
// sources leave all of them empty
func accessHeaders(access domain.Access) map[string]string {
	headers := make(map[string]string, 3)
	if access.OAIKey != "" {
		headers[HeaderAuthorization] = "Bearer " + access.OAIKey
	}
	if access.OAIOrg != "" {
		headers[HeaderOrganization] = access.OAIOrg
	}
	if access.HeliKey != "" {
		headers[HeaderHelicone] = "Bearer " + access.HeliKey
	}
	return headers
}
