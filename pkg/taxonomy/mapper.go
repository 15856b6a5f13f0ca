// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package taxonomy

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// countSuffix matches the trailing sample count of Mendeley folder names, as in "Anthracnose(102)".
var countSuffix = regexp.MustCompile(`\s*\(\d+\)\s*$`)

// CleanFolderName strips a trailing "(<digits>)" count, trims spaces and lower-cases the name.
func CleanFolderName(name string) string {
	return strings.ToLower(strings.TrimSpace(countSuffix.ReplaceAllString(name, "")))
}

// Rule maps cleaned folder names to Class. All conditions that are set must hold:
//
//   - Equals: the cleaned name is exactly this.
//   - Any: the cleaned name contains at least one of these keywords.
//   - All: the cleaned name contains every one of these keywords.
//
// A rule with no conditions never matches. Keywords are expected in lower case.
type Rule struct {
	Class  ClassID
	Equals string
	Any    []string
	All    []string
}

// Match returns whether the rule applies to an already cleaned folder name.
func (r Rule) Match(clean string) bool {
	if r.Equals == "" && len(r.Any) == 0 && len(r.All) == 0 {
		return false
	}
	if r.Equals != "" && clean != r.Equals {
		return false
	}
	if len(r.Any) > 0 {
		found := false
		for _, keyword := range r.Any {
			if strings.Contains(clean, keyword) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, keyword := range r.All {
		if !strings.Contains(clean, keyword) {
			return false
		}
	}
	return true
}

// DefaultRules used by DefaultMapper. Order matters: the first matching rule wins, so
// "Healthy" is only taken as an exact name before the defect keywords, and as a
// substring after them.
var DefaultRules = []Rule{
	// Malabar spinach dataset.
	{Class: Good, Equals: "healthy"},
	{Class: Hole, Any: []string{"pest", "damage", "hole"}},
	{Class: FungalSpot, Any: []string{"bacterial"}},
	{Class: FungalSpot, Any: []string{"anthracnose"}},
	{Class: WhiteSpot, Any: []string{"downy", "mildew"}},
	{Class: WhiteSpot, All: []string{"white", "spot"}},

	// Begomovirus / yellow leaf dataset.
	{Class: Yellow, Any: []string{"yellow", "infected", "begomovirus"}},
	{Class: Good, Any: []string{"healthy"}},
}

// Mapper classifies source folder names with an ordered list of rules.
// It holds no state besides the rules, and is safe for concurrent use.
type Mapper struct {
	rules []Rule
}

// NewMapper creates a Mapper that tries the rules in the given order.
func NewMapper(rules ...Rule) *Mapper {
	return &Mapper{rules: rules}
}

// DefaultMapper returns a Mapper with DefaultRules.
func DefaultMapper() *Mapper {
	return NewMapper(DefaultRules...)
}

// Rules returns the rules of the mapper, in the order they are tried.
func (m *Mapper) Rules() []Rule {
	return m.rules
}

// Validate returns an error if any rule maps to a class outside Names.
func (m *Mapper) Validate() error {
	for ii, rule := range m.rules {
		if !rule.Class.Valid() {
			return errors.Wrapf(ErrInvalidClass, "rule #%d maps to %s, valid ids are 0 to %d",
				ii, rule.Class, NumClasses()-1)
		}
	}
	return nil
}

// Classify returns the class of the first rule matching the cleaned folder name, or Unmapped.
func (m *Mapper) Classify(folder string) ClassID {
	clean := CleanFolderName(folder)
	for _, rule := range m.rules {
		if rule.Match(clean) {
			return rule.Class
		}
	}
	return Unmapped
}
