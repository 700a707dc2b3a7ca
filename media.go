package wiktionary

import (
	"regexp"
	"sort"
	"strings"
)

// CommonsFileBase is the Wikimedia Commons page prefix for media files.
const CommonsFileBase = "https://commons.wikimedia.org/wiki/File:"

var audioTagRE, audioTemplateRE *regexp.Regexp

func init() {
	audioTagRE = regexp.MustCompile(`(?i)<audio:([^<>]+?\.(?:wav|ogg|mp3))(?:<a:([^<>]+)>)?`)
	audioTemplateRE = regexp.MustCompile(`(?i)\{\{audio\|[^|]*\|([^|<>]+?\.(?:wav|ogg|mp3))(?:\|a=([^}]+))?\}\}`)
}

// An audioRef is one audio file mentioned in a pronunciation block.
type audioRef struct {
	offset  int
	file    string
	dialect string
}

// findAudio finds the audio files referenced in text, either inline in
// a pronunciation template (<audio:File.wav<a:Dialect>>) or through
// {{audio|lang|File.ogg|a=Dialect}}, in document order.
func findAudio(text string) []audioRef {
	var rv []audioRef
	for _, re := range []*regexp.Regexp{audioTagRE, audioTemplateRE} {
		for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
			ref := audioRef{
				offset: m[0],
				file:   strings.TrimSpace(text[m[2]:m[3]]),
			}
			if m[4] >= 0 {
				ref.dialect = strings.TrimSpace(text[m[4]:m[5]])
			}
			rv = append(rv, ref)
		}
	}
	sort.SliceStable(rv, func(i, j int) bool {
		return rv[i].offset < rv[j].offset
	})
	return rv
}

// URLForFile gets the Commons page URL for the given named file.
func URLForFile(name string) string {
	return CommonsFileBase + name
}
