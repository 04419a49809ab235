// validator.go — Field-level input validation.
//
// Each validator is a pure function over a raw string: it either returns the
// accepted, normalized value or a *ValidationError naming the field and the
// reason. Optional fields (phone, mobile, website, logo path) accept the
// empty string without error — emptiness signals "omit" or "use default".
package signature

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// emailPattern requires a local part, an @, and a domain containing at
// least one dot, with no whitespace anywhere. Case is preserved.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// supportedLogoExts lists the image formats the logo loader can decode.
var supportedLogoExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// ValidateRequired checks that a required free-form field (name, position,
// address) is non-empty after trimming. Returns the trimmed value.
func ValidateRequired(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{
			Field:  field,
			Value:  value,
			Reason: field + " is required and cannot be empty or whitespace only",
		}
	}
	return trimmed, nil
}

// ValidateName checks the name field.
func ValidateName(value string) (string, error) {
	return ValidateRequired("name", value)
}

// ValidateEmail checks that the value has a local@domain shape with a dotted
// domain and no whitespace. The accepted value keeps its original case.
func ValidateEmail(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &ValidationError{
			Field:  "email",
			Value:  value,
			Reason: "email is required and cannot be empty",
		}
	}
	if !emailPattern.MatchString(trimmed) {
		return "", &ValidationError{
			Field:  "email",
			Value:  value,
			Reason: "email must contain an @ and a dotted domain (e.g. user@example.com)",
		}
	}
	return trimmed, nil
}

// ValidatePhone checks a phone number: digits, an optional leading +, and
// the separators space, hyphen and parentheses. At least 7 digits must
// remain after stripping separators. Empty input is accepted as "omitted".
// The accepted value keeps its original formatting.
func ValidatePhone(field, value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}

	digits := 0
	for i, r := range trimmed {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+':
			if i != 0 {
				return "", &ValidationError{
					Field:  field,
					Value:  value,
					Reason: "a + is only allowed at the start of the number",
				}
			}
		case r == ' ' || r == '-' || r == '(' || r == ')':
			// separator
		default:
			return "", &ValidationError{
				Field:  field,
				Value:  value,
				Reason: fmt.Sprintf("unexpected character %q: only digits, a leading +, spaces, hyphens and parentheses are allowed", r),
			}
		}
	}

	if digits < 7 {
		return "", &ValidationError{
			Field:  field,
			Value:  value,
			Reason: fmt.Sprintf("too short: %d digits, at least 7 required", digits),
		}
	}

	return trimmed, nil
}

// ValidateURL checks the website field. Empty input is not an error — it
// signals "use the configured default". A non-empty value must parse as a
// host-like string, optionally with an http(s) scheme, and the host must
// contain a dot.
func ValidateURL(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}
	if strings.ContainsAny(trimmed, " \t") {
		return "", &ValidationError{
			Field:  "website",
			Value:  value,
			Reason: "website must not contain whitespace",
		}
	}

	candidate := trimmed
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Host == "" {
		return "", &ValidationError{
			Field:  "website",
			Value:  value,
			Reason: "website must be a valid host like www.example.com",
		}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", &ValidationError{
			Field:  "website",
			Value:  value,
			Reason: fmt.Sprintf("unsupported scheme %q: only http and https are allowed", u.Scheme),
		}
	}
	if !strings.Contains(u.Hostname(), ".") {
		return "", &ValidationError{
			Field:  "website",
			Value:  value,
			Reason: "website host must contain a dot (e.g. www.example.com)",
		}
	}

	return trimmed, nil
}

// ValidateLogoPath checks that a logo path, when provided, references an
// existing readable file in a supported image format. Empty input is
// accepted: rendering then proceeds without a logo.
func ValidateLogoPath(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", nil
	}

	cleaned := filepath.Clean(trimmed)

	ext := strings.ToLower(filepath.Ext(cleaned))
	if !supportedLogoExts[ext] {
		return "", &ValidationError{
			Field:  "logo_path",
			Value:  value,
			Reason: fmt.Sprintf("unsupported image extension %q: expected one of png, jpg, jpeg, gif, bmp, tif", ext),
		}
	}

	info, err := os.Stat(cleaned)
	if err != nil {
		return "", &ValidationError{
			Field:  "logo_path",
			Value:  value,
			Reason: fmt.Sprintf("file does not exist or is not accessible: %v", err),
		}
	}
	if !info.Mode().IsRegular() {
		return "", &ValidationError{
			Field:  "logo_path",
			Value:  value,
			Reason: "path is not a regular file",
		}
	}

	f, err := os.Open(cleaned)
	if err != nil {
		return "", &ValidationError{
			Field:  "logo_path",
			Value:  value,
			Reason: fmt.Sprintf("file is not readable: %v", err),
		}
	}
	f.Close()

	return cleaned, nil
}
