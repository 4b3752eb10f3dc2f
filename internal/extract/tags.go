package extract

import (
	"regexp"
	"sync"
)

var (
	tagPatternsMu sync.RWMutex
	tagPatterns   = map[string]*regexp.Regexp{}
)

// FindTagged returns the body of the first <tag>…</tag> span in raw. The
// match is non-greedy and crosses newlines. The body is returned verbatim.
func FindTagged(raw, tag string) (string, bool) {
	m := tagPattern(tag).FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func tagPattern(tag string) *regexp.Regexp {
	tagPatternsMu.RLock()
	re, ok := tagPatterns[tag]
	tagPatternsMu.RUnlock()
	if ok {
		return re
	}

	q := regexp.QuoteMeta(tag)
	re = regexp.MustCompile(`(?s)<` + q + `>(.*?)</` + q + `>`)

	tagPatternsMu.Lock()
	tagPatterns[tag] = re
	tagPatternsMu.Unlock()
	return re
}
