package middleware

import (
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/bryanwahyu/credcheck/internal/domain/history"
)

// Input validation and sanitization utilities

// MaxQueryLength caps the history search term.
const MaxQueryLength = 200

// ValidateURL checks that rawURL is an absolute http(s) URL that does not
// point at localhost or a private range.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s (allowed: http, https)", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL must include a host")
	}

	// SSRF protection for when extraction becomes real
	host := strings.ToLower(u.Hostname())
	blocked := []string{"localhost", "127.0.0.1", "0.0.0.0", "::1"}
	for _, b := range blocked {
		if host == b {
			return fmt.Errorf("localhost/internal IPs are not allowed")
		}
	}
	if strings.HasPrefix(host, "10.") ||
		strings.HasPrefix(host, "192.168.") ||
		strings.HasPrefix(host, "172.16.") ||
		strings.HasPrefix(host, "172.31.") {
		return fmt.Errorf("private IP ranges are not allowed")
	}

	return nil
}

// ValidateCredibility accepts the history filter bands.
func ValidateCredibility(v string) error {
	switch strings.ToLower(v) {
	case "", history.CredibilityAll, history.CredibilityHigh, history.CredibilityMedium, history.CredibilityLow:
		return nil
	}
	return fmt.Errorf("invalid credibility: %s (allowed: all, high, medium, low)", v)
}

// ValidateQuery bounds the history search term.
func ValidateQuery(q string) error {
	if utf8.RuneCountInString(q) > MaxQueryLength {
		return fmt.Errorf("query too long (max %d characters)", MaxQueryLength)
	}
	return nil
}

// SanitizeString removes dangerous characters from strings
func SanitizeString(input string) string {
	input = strings.ReplaceAll(input, "\x00", "")

	var result strings.Builder
	for _, r := range input {
		if r >= 32 || r == '\t' || r == '\n' {
			result.WriteRune(r)
		}
	}

	return strings.TrimSpace(result.String())
}
