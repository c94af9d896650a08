package security

import "regexp"

// Static blocklists for request inspection. These are best-effort
// heuristics, not a security guarantee; false positives and negatives are
// expected and acceptable.

var sqlPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE|DROP|CREATE|ALTER|EXEC|UNION|SCRIPT)\b`),
	regexp.MustCompile(`(?i)\b(OR|AND)\s+\d+\s*=\s*\d+`),
	regexp.MustCompile(`['"]\s*;\s*--`),
	regexp.MustCompile(`(?i)\bunion\b.*\bselect\b`),
	regexp.MustCompile(`(?i)\b(exec|execute)\s*\(`),
}

var xssPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)on\w+\s*=`),
	regexp.MustCompile(`(?i)<iframe[^>]*>`),
	regexp.MustCompile(`(?i)expression\s*\(`),
}

var traversalPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.\./`),
	regexp.MustCompile(`\.\.\\`),
	regexp.MustCompile(`(?i)\.\.%2f`),
	regexp.MustCompile(`(?i)\.\.%5c`),
}

var suspiciousAgents = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bot`),
	regexp.MustCompile(`(?i)crawler`),
	regexp.MustCompile(`(?i)spider`),
	regexp.MustCompile(`(?i)scanner`),
	regexp.MustCompile(`(?i)sqlmap`),
	regexp.MustCompile(`(?i)nmap`),
	regexp.MustCompile(`(?i)nikto`),
	regexp.MustCompile(`(?i)burp`),
	regexp.MustCompile(`(?i)w3af`),
	regexp.MustCompile(`(?i)owasp`),
}

// SuspiciousPayload reports whether raw matches any SQL-injection,
// script-injection, or path-traversal pattern.
func SuspiciousPayload(raw string) bool {
	for _, group := range [][]*regexp.Regexp{sqlPatterns, xssPatterns, traversalPatterns} {
		for _, p := range group {
			if p.MatchString(raw) {
				return true
			}
		}
	}
	return false
}

// SuspiciousUserAgent reports whether ua matches a known bot or scanner
// signature. An empty user agent is treated as suspicious.
func SuspiciousUserAgent(ua string) bool {
	if ua == "" {
		return true
	}
	for _, p := range suspiciousAgents {
		if p.MatchString(ua) {
			return true
		}
	}
	return false
}
