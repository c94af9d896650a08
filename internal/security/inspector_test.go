package security

import (
	"strings"
	"testing"
)

func TestSuspiciousPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    bool
	}{
		{"plain text", `{"name":"Budi Santoso","email":"budi@example.com"}`, false},
		{"sql keyword", `{"q":"1 UNION SELECT password FROM users"}`, true},
		{"tautology", `{"q":"x OR 1=1"}`, true},
		{"comment terminator", `{"q":"'; --"}`, true},
		{"exec call", `{"q":"exec(cmd)"}`, true},
		{"script tag", `{"bio":"<script>alert(1)</script>"}`, true},
		{"javascript uri", `{"link":"javascript:void(0)"}`, true},
		{"event handler", `{"html":"<img onerror=hack()>"}`, true},
		{"iframe", `{"html":"<iframe src=x>"}`, true},
		{"traversal", `{"path":"../../etc/passwd"}`, true},
		{"encoded traversal", `{"path":"..%2f..%2fetc"}`, true},
		{"homework text", `{"description":"Selesaikan bab 3 dan kumpulkan besok"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SuspiciousPayload(tt.payload); got != tt.want {
				t.Errorf("SuspiciousPayload(%q) = %v, want %v", tt.payload, got, tt.want)
			}
		})
	}
}

func TestSuspiciousUserAgent(t *testing.T) {
	tests := []struct {
		ua   string
		want bool
	}{
		{"", true},
		{"Mozilla/5.0 (X11; Linux x86_64) Firefox/128.0", false},
		{"sqlmap/1.7", true},
		{"Googlebot/2.1", true},
		{"nikto/2.5.0", true},
		{"curl/8.4.0", false},
		{"some-spider-agent", true},
	}

	for _, tt := range tests {
		if got := SuspiciousUserAgent(tt.ua); got != tt.want {
			t.Errorf("SuspiciousUserAgent(%q) = %v, want %v", tt.ua, got, tt.want)
		}
	}
}

func TestSanitizeJSON(t *testing.T) {
	raw := []byte(`{"name":"<b>Budi</b>","nested":{"note":"a < b"},"tags":["<i>x</i>"],"n":3}`)
	out := SanitizeJSON(raw)

	s := string(out)
	if !strings.Contains(s, "Budi") {
		t.Fatalf("sanitized output %q missing %q", s, "Budi")
	}
	for _, forbidden := range []string{"<b>", "</b>", "<i>"} {
		if strings.Contains(s, forbidden) {
			t.Errorf("sanitized output %q still contains %q", s, forbidden)
		}
	}
}

func TestSanitizeJSONNonJSONPassthrough(t *testing.T) {
	raw := []byte("not json at all")
	if got := SanitizeJSON(raw); string(got) != string(raw) {
		t.Errorf("non-JSON input mutated: %q", got)
	}
}
