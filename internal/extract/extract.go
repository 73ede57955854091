// Package extract pulls actionable content out of message bodies: one-time
// numeric codes and the link the recipient is most likely expected to open.
// Everything here is pure string work, safe to call from any goroutine.
package extract

import (
	"regexp"
	"strings"
)

// Result carries what a scan found. Empty fields mean nothing was detected.
type Result struct {
	Code string
	Link string
}

var (
	// First run of 4 to 8 digits with non-digit (or text edge) on both
	// sides. A plain \b does not work here: it would reject codes glued to
	// letters and accept the head of longer runs like phone numbers.
	codeRe = regexp.MustCompile(`(?:^|[^0-9])([0-9]{4,8})(?:[^0-9]|$)`)

	linkRe = regexp.MustCompile(`https?://[^\s"'<>)\]]+`)
)

// URLs containing one of these fragments usually carry the primary call to
// action (confirmation, login, password reset).
var actionKeywords = []string{"confirm", "verify", "login", "signin", "password"}

// Scan inspects plain text and reports the first plausible one-time code
// together with the most actionable link. Empty input yields an empty result.
func Scan(text string) Result {
	return Result{
		Code: Code(text),
		Link: ActionLink(Links(text)),
	}
}

// Code returns the first run of 4 to 8 decimal digits in text, or "" when
// there is none. When several qualifying runs exist only the leftmost one is
// reported.
func Code(text string) string {
	m := codeRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// Links returns all HTTP and HTTPS URLs found in text, in document order.
func Links(text string) []string {
	return linkRe.FindAllString(text, -1)
}

// ActionLink picks the link most likely to require action: the first one
// containing an action keyword (case-insensitive), else the first link
// overall, else "".
func ActionLink(links []string) string {
	for _, link := range links {
		lower := strings.ToLower(link)
		for _, keyword := range actionKeywords {
			if strings.Contains(lower, keyword) {
				return link
			}
		}
	}
	if len(links) > 0 {
		return links[0]
	}
	return ""
}
