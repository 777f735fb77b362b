package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// prefixRegex matches valid icon set prefixes: lower case letters, digits
// and single hyphens, starting with a letter or digit.
var prefixRegex = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// iconNameRegex matches valid icon names. Names may contain a provider-less
// "prefix:" part when they come from search results.
var iconNameRegex = regexp.MustCompile(`^([a-z0-9]+(-[a-z0-9]+)*:)?[a-z0-9]+(-[a-z0-9]+)*$`)

// providerRegex matches provider identifiers. The empty provider is the
// default public API and is valid.
var providerRegex = regexp.MustCompile(`^[a-z0-9]*([-_][a-z0-9]+)*$`)

// ValidatePrefix validates an icon set prefix before it is used as a
// storage key, file name or URL segment.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidPrefix, "prefix cannot be empty")
	}
	if len(prefix) > 64 {
		return New(ErrCodeInvalidPrefix, "prefix too long (max 64 characters)")
	}
	if !prefixRegex.MatchString(prefix) {
		return New(ErrCodeInvalidPrefix, "invalid prefix: %q", prefix)
	}
	return nil
}

// ValidateProvider validates a provider identifier.
func ValidateProvider(provider string) error {
	if len(provider) > 64 {
		return New(ErrCodeInvalidProvider, "provider too long (max 64 characters)")
	}
	if !providerRegex.MatchString(provider) {
		return New(ErrCodeInvalidProvider, "invalid provider: %q", provider)
	}
	return nil
}

// ValidateIconName validates an icon name.
func ValidateIconName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "icon name cannot be empty")
	}
	if !iconNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid icon name: %q", name)
	}
	return nil
}

// ValidateKeyword validates a search keyword.
//
// The validation rules are intentionally conservative:
//   - Maximum length of 128 characters
//   - No control characters
func ValidateKeyword(keyword string) error {
	if len(keyword) > 128 {
		return New(ErrCodeInvalidInput, "keyword too long (max 128 characters)")
	}
	for _, r := range keyword {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "keyword contains invalid control characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}
