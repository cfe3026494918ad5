package format

import "strings"

// FormatNumberString inserts a comma every three digits, counting from the
// right. A leading sign is kept in front.
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}
	sign := ""
	if s[0] == '-' || s[0] == '+' {
		sign, s = s[:1], s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(sign) + n + (n-1)/3)
	b.WriteString(sign)
	first := n % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// TruncateDigits shortens s to its first and last edges characters when it
// is longer than limit. The second return value reports whether s was cut.
func TruncateDigits(s string, limit, edges int) (string, bool) {
	if len(s) <= limit || 2*edges >= len(s) {
		return s, false
	}
	return s[:edges] + "..." + s[len(s)-edges:], true
}
