package walker

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pachca/pachcagen/internal/spec"
)

// Option configures which operations a Walker yields.
type Option func(*config)

type config struct {
	includeTags map[string]struct{}
	excludeTags map[string]struct{}
	methods     map[spec.HttpMethod]struct{}
	pathRes     []*regexp.Regexp
	err         error
}

// WithIncludeTags keeps only operations that have at least one of the given tags.
func WithIncludeTags(tags []string) Option {
	return func(c *config) { c.includeTags = addTags(c.includeTags, tags) }
}

// WithExcludeTags removes operations that have any of the given tags.
func WithExcludeTags(tags []string) Option {
	return func(c *config) { c.excludeTags = addTags(c.excludeTags, tags) }
}

func addTags(set map[string]struct{}, tags []string) map[string]struct{} {
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if set == nil {
			set = make(map[string]struct{}, len(tags))
		}
		set[t] = struct{}{}
	}
	return set
}

// WithMethods keeps only operations using one of the provided HTTP methods.
func WithMethods(methods []spec.HttpMethod) Option {
	return func(c *config) {
		for _, m := range methods {
			if c.methods == nil {
				c.methods = make(map[spec.HttpMethod]struct{}, len(methods))
			}
			c.methods[m] = struct{}{}
		}
	}
}

// WithPathPatterns keeps only operations whose path matches at least one of
// the regular expressions. An invalid expression makes New fail.
func WithPathPatterns(patterns []string) Option {
	return func(c *config) {
		for _, p := range patterns {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			re, err := regexp.Compile(p)
			if err != nil {
				c.err = fmt.Errorf("walker: invalid path pattern %q: %w", p, err)
				continue
			}
			c.pathRes = append(c.pathRes, re)
		}
	}
}

func (c *config) keepMethod(m spec.HttpMethod) bool {
	if len(c.methods) == 0 {
		return true
	}
	_, ok := c.methods[m]
	return ok
}

func (c *config) keepPath(p string) bool {
	if len(c.pathRes) == 0 {
		return true
	}
	for _, re := range c.pathRes {
		if re.MatchString(p) {
			return true
		}
	}
	return false
}

func (c *config) keepTags(tags []string) bool {
	if len(c.includeTags) > 0 {
		found := false
		for _, t := range tags {
			if _, ok := c.includeTags[t]; ok {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, t := range tags {
		if _, ok := c.excludeTags[t]; ok {
			return false
		}
	}
	return true
}
