package errors

import (
	"net/url"
	"strings"
	"unicode"
)

// ValidateBaseURL validates the photo server base URL.
// It must be an absolute http or https URL without query or fragment.
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return New(ErrCodeInvalidConfig, "server URL cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return Wrap(ErrCodeInvalidConfig, err, "server URL is malformed")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return New(ErrCodeInvalidConfig, "server URL must use http or https scheme")
	}
	if u.Host == "" {
		return New(ErrCodeInvalidConfig, "server URL has no host")
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return New(ErrCodeInvalidConfig, "server URL cannot carry a query or fragment")
	}
	return nil
}

// maxCodeLength bounds redeem codes; the server generates short ones.
const maxCodeLength = 128

// ValidateRedeemCode validates an access code before it is sent to the
// token servlet. Codes are joined with ':' in the token cookie, so the
// separator and whitespace are rejected.
func ValidateRedeemCode(code string) error {
	if code == "" {
		return New(ErrCodeInvalidInput, "access code cannot be empty")
	}
	if len(code) > maxCodeLength {
		return New(ErrCodeInvalidInput, "access code too long (max %d characters)", maxCodeLength)
	}
	if strings.Contains(code, ":") {
		return New(ErrCodeInvalidInput, "access code cannot contain ':'")
	}
	for _, r := range code {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "access code contains invalid characters")
		}
	}
	return nil
}

// ValidateFilePath validates a local path handed to the upload command.
func ValidateFilePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}
	return nil
}
