package eval

import (
	"container/list"
	"regexp"
)

// regexCache is a bounded LRU cache of compiled regular expressions, so
// that a selection calling match/extract_regex_group with the same
// pattern on every record only pays the compilation cost once. A size of
// zero disables caching entirely: every call recompiles.
type regexCache struct {
	size    int
	entries map[string]*list.Element
	order   *list.List
}

type regexCacheEntry struct {
	pattern string
	re      *regexp.Regexp
}

func newRegexCache(size int) *regexCache {
	return &regexCache{size: size, entries: make(map[string]*list.Element), order: list.New()}
}

func (c *regexCache) compile(pattern string) (*regexp.Regexp, error) {
	if c.size <= 0 {
		return regexp.Compile(pattern)
	}
	if el, found := c.entries[pattern]; found {
		c.order.MoveToFront(el)
		return el.Value.(*regexCacheEntry).re, nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	el := c.order.PushFront(&regexCacheEntry{pattern: pattern, re: re})
	c.entries[pattern] = el
	if c.order.Len() > c.size {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.entries, oldest.Value.(*regexCacheEntry).pattern)
		}
	}
	return re, nil
}
