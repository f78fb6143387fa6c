package providers

import (
	"regexp"
	"strings"
)

// Models are told to return a bare JSON array, but they still wrap it in
// code fences or prose often enough that we go looking for it.

var rxFenceArray = regexp.MustCompile("(?is)```(?:json)?\\s*(\\[[\\s\\S]*?\\])\\s*```")

// ExtractJSONArray pulls the first JSON array out of an LLM reply. Returns ""
// when no array candidate is found; the caller decides what a failed parse
// degrades to.
func ExtractJSONArray(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]") {
		return s
	}

	if m := rxFenceArray.FindStringSubmatch(s); len(m) > 1 {
		return m[1]
	}

	return firstBalancedArray(s)
}

// find the first array by simple bracket balancing
func firstBalancedArray(s string) string {
	start := strings.Index(s, "[")
	if start < 0 {
		return ""
	}
	level := 0
	for i := start; i < len(s); i++ {
		switch s[i] {
		case '[':
			level++
		case ']':
			level--
			if level == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
