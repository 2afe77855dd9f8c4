package fields

import (
	"regexp"
	"strings"
	"sync"
)

// pattern compiles its source on first use. The compiled matcher is anchored
// at the start of the input only, so a value matches when some prefix of it
// matches the source.
type pattern struct {
	source string
	once   sync.Once
	re     *regexp.Regexp
	err    error
}

func newPattern(source string) *pattern {
	return &pattern{source: source}
}

func (p *pattern) compile() (*regexp.Regexp, error) {
	p.once.Do(func() {
		// Compile the source on its own first so the diagnostic refers to
		// what the caller wrote, not to the anchored wrapper.
		if _, err := regexp.Compile(p.source); err != nil {
			p.err = invalidRegex(err)
			return
		}
		re, err := regexp.Compile(`\A(?:` + p.source + `)`)
		if err != nil {
			p.err = invalidRegex(err)
			return
		}
		p.re = re
	})
	return p.re, p.err
}

// anchored returns source as a search pattern that only matches at the start
// of the value, for consumers such as JSON Schema that search unanchored.
func anchored(source string) string {
	if strings.HasPrefix(source, "^") && !strings.Contains(source, "|") {
		return source
	}
	return "^(?:" + source + ")"
}

func (p *pattern) matchPrefix(s string) (bool, error) {
	re, err := p.compile()
	if err != nil {
		return false, err
	}
	return re.MatchString(s), nil
}
