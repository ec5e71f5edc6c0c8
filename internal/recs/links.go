package recs

import "regexp"

// bookLinkPattern matches a Goodreads book detail page from the start of
// the string: http(s) scheme, optional www, and a numeric id immediately
// after /book/show/. Scheme and host are case-insensitive.
var bookLinkPattern = regexp.MustCompile(`^(?i:https?://(www\.)?goodreads\.com)/book/show/[0-9]+`)

// IsValidBookLink reports whether link looks like a Goodreads book detail
// page. The check is purely syntactic: the model is untrusted to produce
// correct URLs, so no network access or redirect following happens here.
// Empty input is invalid.
func IsValidBookLink(link string) bool {
	if link == "" {
		return false
	}
	return bookLinkPattern.MatchString(link)
}
