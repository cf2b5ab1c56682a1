// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/hrx

package hrx

import (
	"fmt"
	"strings"

	"github.com/woozymasta/pathrules"
)

// packFilter holds compiled include/exclude rules for add-list items.
type packFilter struct {
	matcher *pathrules.Matcher
}

// newPackFilter compiles filter rules; nil filter accepts everything.
func newPackFilter(rules []pathrules.Rule, opts pathrules.MatcherOptions) (*packFilter, error) {
	rules = normalizeFilterRules(rules)
	if len(rules) == 0 {
		return nil, nil
	}

	matcher, err := pathrules.NewMatcher(rules, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile: %w", ErrInvalidFilter, err)
	}

	return &packFilter{matcher: matcher}, nil
}

// normalizeFilterRules converts patterns to "/" separators and drops empty ones.
func normalizeFilterRules(rules []pathrules.Rule) []pathrules.Rule {
	normalized := make([]pathrules.Rule, 0, len(rules))
	for _, rule := range rules {
		pattern := strings.TrimPrefix(ToArchivePath(strings.TrimSpace(rule.Pattern)), "./")
		if pattern == "" {
			continue
		}

		normalized = append(normalized, pathrules.Rule{
			Action:  rule.Action,
			Pattern: pattern,
		})
	}

	return normalized
}

// Accept reports whether add-list item passes the filter.
func (f *packFilter) Accept(item string) bool {
	if f == nil || f.matcher == nil {
		return true
	}

	candidate := strings.TrimPrefix(ToArchivePath(item), "./")
	if candidate == "" {
		return false
	}

	return f.matcher.Included(candidate, false)
}
