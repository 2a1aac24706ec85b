package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateSignatureInput performs a cheap syntactic screen of a signature
// string before it reaches the real parser. It rejects inputs that could
// only come from garbage or abuse; structural validation is the diagram
// decoder's job.
//
// The validation rules are intentionally conservative:
//   - No empty signatures
//   - No control characters or null bytes
//   - Only the signature alphabet (digits, +, -, l, u, s, c, :, ,, ;)
//   - Maximum length of 64 KiB
func ValidateSignatureInput(sig string) error {
	if sig == "" {
		return New(ErrCodeInvalidSignature, "signature cannot be empty")
	}

	const maxSignatureLength = 64 * 1024
	if len(sig) > maxSignatureLength {
		return New(ErrCodeInvalidSignature, "signature too long (max %d bytes)", maxSignatureLength)
	}

	for _, r := range sig {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidSignature, "signature contains control characters")
		}
	}

	if !signatureAlphabetRegex.MatchString(sig) {
		return New(ErrCodeInvalidSignature, "signature contains characters outside the encoding alphabet")
	}

	return nil
}

// signatureAlphabetRegex matches strings built only from signature tokens.
var signatureAlphabetRegex = regexp.MustCompile(`^[0-9+\-lusc:,;]+$`)

// diagramNameRegex matches the named starting diagrams accepted by the
// CLI and API.
var diagramNameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*$`)

// ValidateDiagramName validates a named-diagram identifier. The set of
// names that actually resolve is the diagram package's concern; this only
// screens the shape.
func ValidateDiagramName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidInput, "diagram name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidInput, "diagram name too long (max 64 characters)")
	}

	if !diagramNameRegex.MatchString(name) {
		return New(ErrCodeInvalidInput, "invalid diagram name: %q", name)
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidInput, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidInput, "path cannot contain backslashes")
	}

	return nil
}
