// Package secrets holds the patterns used to detect and mask credential
// material. The secret-scan check uses the compiled patterns to flag files;
// the logging handler uses the key/prefix heuristics to redact attribute
// values before they reach a log sink.
package secrets

import (
	"regexp"
	"strings"
)

// KeyPatterns contains substrings that indicate a key likely holds sensitive
// data. Keys are matched case-insensitively.
var KeyPatterns = []string{
	"TOKEN",
	"KEY",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"API_KEY",
	"PRIVATE",
}

// TokenPrefixes contains known API token prefixes that mark a value as
// sensitive regardless of its key name.
var TokenPrefixes = []string{
	"ghp_",  // GitHub personal access token
	"gho_",  // GitHub OAuth token
	"ghs_",  // GitHub server-to-server token
	"sk-",   // OpenAI/Anthropic keys
	"AKIA",  // AWS access key ID
	"ASIA",  // AWS temporary access key ID
	"xoxb-", // Slack bot token
	"xoxp-", // Slack user token
}

// ValuePatterns are the content patterns the secret-scan check matches
// against source files. Each pattern describes one class of credential.
var ValuePatterns = []ValuePattern{
	{Name: "aws access key id", Pattern: regexp.MustCompile(`\b(AKIA|ASIA)[0-9A-Z]{16}\b`)},
	{Name: "aws secret access key", Pattern: regexp.MustCompile(`(?i)aws[_-]?secret[_-]?access[_-]?key\s*[:=]\s*['"]?[A-Za-z0-9/+=]{40}`)},
	{Name: "github token", Pattern: regexp.MustCompile(`\bgh[pos]_[A-Za-z0-9]{36,}\b`)},
	{Name: "private key block", Pattern: regexp.MustCompile(`-----BEGIN (?:RSA |EC |OPENSSH )?PRIVATE KEY-----`)},
	{Name: "generic api key assignment", Pattern: regexp.MustCompile(`(?i)(api[_-]?key|secret|token|password)\s*[:=]\s*['"][^'"\s]{16,}['"]`)},
	{Name: "slack token", Pattern: regexp.MustCompile(`\bxox[bpar]-[A-Za-z0-9-]{10,}\b`)},
}

// ValuePattern pairs a human-readable name with a compiled content regex.
type ValuePattern struct {
	Name    string
	Pattern *regexp.Regexp
}

// MatchValue returns the name of the first pattern matching content, or the
// empty string if nothing matches.
func MatchValue(content []byte) string {
	for _, vp := range ValuePatterns {
		if vp.Pattern.Match(content) {
			return vp.Name
		}
	}
	return ""
}

// ShouldMask returns true if the key name suggests it contains sensitive
// data. Matching is case-insensitive.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, pattern := range KeyPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// ContainsTokenPrefix returns true if the value starts with a known token
// prefix. This catches values that are clearly tokens even when the key name
// gives nothing away.
func ContainsTokenPrefix(value string) bool {
	for _, prefix := range TokenPrefixes {
		if strings.HasPrefix(value, prefix) {
			return true
		}
	}
	return false
}

// MaskValue masks a potentially sensitive string value. Values with 4 or
// fewer characters are fully masked; longer values keep the last 4
// characters visible.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}
