package core

import (
	"fmt"
	"sort"
	"strings"
)

// TagFilter restricts a subscription to messages carrying one of a set of
// tags.
//
// Examples:
//
//	"*"            matches every message, tagged or not
//	"TagA"         matches messages tagged "TagA"
//	"TagA || TagB" matches either tag
type TagFilter struct {
	all  bool
	tags map[string]struct{}
}

// ParseTagExpression parses a subscription tag expression. An empty
// expression and "*" both subscribe to everything. Otherwise the expression
// is split on "||"; empty segments are skipped, and an expression that
// yields no tags at all is an error.
func ParseTagExpression(expr string) (*TagFilter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" || expr == "*" {
		return &TagFilter{all: true}, nil
	}

	tags := make(map[string]struct{})
	for _, part := range strings.Split(expr, "||") {
		if tag := strings.TrimSpace(part); tag != "" {
			tags[tag] = struct{}{}
		}
	}
	if len(tags) == 0 {
		return nil, fmt.Errorf("empty tag expression %q", expr)
	}
	return &TagFilter{tags: tags}, nil
}

// Match reports whether a message with the given tag passes the filter.
func (f *TagFilter) Match(tag string) bool {
	if f.all {
		return true
	}
	_, ok := f.tags[tag]
	return ok
}

// MatchAll reports whether the filter accepts every message.
func (f *TagFilter) MatchAll() bool { return f.all }

// Tags returns the accepted tags in sorted order, or nil for a match-all
// filter.
func (f *TagFilter) Tags() []string {
	if f.all || len(f.tags) == 0 {
		return nil
	}
	tags := make([]string, 0, len(f.tags))
	for tag := range f.tags {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// String renders the filter back into canonical expression form.
func (f *TagFilter) String() string {
	if f.all {
		return "*"
	}
	return strings.Join(f.Tags(), " || ")
}
