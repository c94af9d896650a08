package security

import (
	"encoding/json"
	"html"
	"regexp"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeString strips markup and HTML-escapes the remainder.
func SanitizeString(s string) string {
	return html.EscapeString(tagPattern.ReplaceAllString(s, ""))
}

// SanitizeJSON decodes raw, sanitizes every string value in place
// (recursively through objects and arrays), and re-encodes. Non-JSON input
// is returned unchanged: binding will reject it later with a proper
// validation error.
func SanitizeJSON(raw []byte) []byte {
	if len(raw) == 0 {
		return raw
	}
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return raw
	}
	out, err := json.Marshal(sanitizeValue(doc))
	if err != nil {
		return raw
	}
	return out
}

func sanitizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return SanitizeString(val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = sanitizeValue(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = sanitizeValue(item)
		}
		return val
	default:
		return v
	}
}
