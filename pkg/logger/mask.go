package logger

import (
	"crypto/sha256"
	"fmt"
	"net/url"
	"strings"
)

// MaskEndpoint reduces a provider endpoint to host plus a short hash so logs
// never carry paths or query strings. Comma-separated lists are masked per entry.
func MaskEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}
	if strings.Contains(endpoint, ",") {
		parts := strings.Split(endpoint, ",")
		for i, p := range parts {
			parts[i] = MaskEndpoint(strings.TrimSpace(p))
		}
		return strings.Join(parts, ",")
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Host == "" {
		return "endpoint#" + shortHash(endpoint)
	}
	return fmt.Sprintf("%s#%s", parsed.Host, shortHash(endpoint))
}

// MaskSecret keeps only the last four characters of a secret.
func MaskSecret(secret string) string {
	switch {
	case secret == "":
		return ""
	case len(secret) <= 8:
		return "****"
	default:
		return "****" + secret[len(secret)-4:]
	}
}

func shortHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return fmt.Sprintf("%x", sum)[:8]
}
