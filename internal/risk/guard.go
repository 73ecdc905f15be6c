package risk

import (
	"regexp"
	"strings"
)

var denylistTokens = []string{
	".env",
	".pem",
	".key",
	"SOUL.md",
	"AGENTS.md",
	"node_modules",
	".git",
}

// IsPathAllowed reports whether path is safe to touch, rejecting
// traversal sequences, denylisted tokens, and anything outside roots.
// roots defaults to ["workspace/"] when empty.
func IsPathAllowed(path string, roots ...string) bool {
	if len(roots) == 0 {
		roots = []string{"workspace/"}
	}
	if strings.Contains(path, "../") || strings.Contains(path, `..\`) {
		return false
	}
	for _, tok := range denylistTokens {
		if strings.Contains(path, tok) {
			return false
		}
	}
	for _, root := range roots {
		if strings.HasPrefix(path, root) {
			return true
		}
	}
	return false
}

// Ordered so that longer/more specific patterns (JWT) are tried before
// the generic bearer-token pattern that would otherwise also match them.
var redactions = []struct {
	pattern     *regexp.Regexp
	replacement string
}{
	{regexp.MustCompile(`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\b`), "[REDACTED_JWT]"},
	{regexp.MustCompile(`(?i)\bBearer\s+[A-Za-z0-9._-]+`), "Bearer [REDACTED_TOKEN]"},
	{regexp.MustCompile(`\bsk-[A-Za-z0-9]{20,}\b`), "[REDACTED_API_KEY]"},
	{regexp.MustCompile(`(?i)\b(?:api[_-]?key)\s*[:=]\s*["']?[A-Za-z0-9._-]{8,}["']?`), "api_key=[REDACTED]"},
	{regexp.MustCompile(`(?i)\bpassword\s*=\s*\S+`), "password=[REDACTED]"},
}

// Redact applies the ordered substitution list to text, masking
// API-key-shaped tokens, bearer tokens, JWTs, and password=... pairs.
// Redaction is lossy; only ever applied to outbound log/user-facing
// strings, never to agent input.
func Redact(text string) string {
	out := text
	for _, r := range redactions {
		out = r.pattern.ReplaceAllString(out, r.replacement)
	}
	return out
}
