// Package artifact derives the "current idea" and "current code" views from
// conversation messages.
package artifact

import (
	"regexp"
	"strings"
	"sync"
)

// LanguagePython is the fence tag agents are asked to use for code.
const LanguagePython = "python"

var (
	fenceMu    sync.Mutex
	fenceCache = map[string]*regexp.Regexp{}
)

// ExtractCode returns the bodies of every ```lang fenced block in text, in
// order of appearance, with the fence markers and surrounding blank lines
// removed. Blocks tagged with a different language are ignored.
func ExtractCode(text, lang string) []string {
	matches := fencePattern(lang).FindAllStringSubmatch(text, -1)
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, strings.Trim(m[1], "\r\n"))
	}
	return blocks
}

// ExtractPython is ExtractCode for python fences.
func ExtractPython(text string) []string {
	return ExtractCode(text, LanguagePython)
}

func fencePattern(lang string) *regexp.Regexp {
	fenceMu.Lock()
	defer fenceMu.Unlock()

	if re, ok := fenceCache[lang]; ok {
		return re
	}
	re := regexp.MustCompile("(?s)```" + regexp.QuoteMeta(lang) + `\b(.*?)` + "```")
	fenceCache[lang] = re
	return re
}
