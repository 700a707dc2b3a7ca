package wiktionary

import (
	"regexp"
)

var pipedLinkRE, linkRE *regexp.Regexp

func init() {
	pipedLinkRE = regexp.MustCompile(`\[\[([^\|\]]+)\|([^\]]+)\]\]`)
	linkRE = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
}

// rewriteLinks replaces [[target|display]] with display and [[target]]
// with target.
func rewriteLinks(text string) string {
	text = pipedLinkRE.ReplaceAllString(text, "${2}")
	return linkRE.ReplaceAllString(text, "${1}")
}
