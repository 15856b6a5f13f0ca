// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package taxonomy

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// rulesFile is the YAML layout accepted by ParseRules:
//
//	extend: true
//	rules:
//	  - class: HOLE
//	    any: [leaf miner, chewed]
//	  - class: WSPOT
//	    all: [white, spot]
//	  - class: GOOD
//	    equals: control
//
// With extend set, DefaultRules are tried after the rules in the file.
type rulesFile struct {
	Extend bool       `yaml:"extend"`
	Rules  []ruleSpec `yaml:"rules"`
}

type ruleSpec struct {
	Class  string   `yaml:"class"`
	Equals string   `yaml:"equals,omitempty"`
	Any    []string `yaml:"any,omitempty"`
	All    []string `yaml:"all,omitempty"`
}

// LoadRules reads a YAML rules file from fs and returns the corresponding Mapper.
func LoadRules(fs afero.Fs, filePath string) (*Mapper, error) {
	contents, err := afero.ReadFile(fs, filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rules file %q", filePath)
	}
	m, err := ParseRules(contents)
	if err != nil {
		return nil, errors.WithMessagef(err, "rules file %q", filePath)
	}
	return m, nil
}

// ParseRules parses the YAML rules (see rulesFile) and returns the corresponding Mapper.
func ParseRules(contents []byte) (*Mapper, error) {
	var file rulesFile
	if err := yaml.Unmarshal(contents, &file); err != nil {
		return nil, errors.Wrap(err, "failed to parse rules")
	}
	if len(file.Rules) == 0 && !file.Extend {
		return nil, errors.New("no rules defined")
	}
	rules := make([]Rule, 0, len(file.Rules)+len(DefaultRules))
	for ii, spec := range file.Rules {
		class, err := Parse(spec.Class)
		if err != nil {
			return nil, errors.WithMessagef(err, "rule #%d", ii)
		}
		rule := Rule{
			Class:  class,
			Equals: strings.ToLower(strings.TrimSpace(spec.Equals)),
			Any:    lowerKeywords(spec.Any),
			All:    lowerKeywords(spec.All),
		}
		if rule.Equals == "" && len(rule.Any) == 0 && len(rule.All) == 0 {
			return nil, errors.Errorf("rule #%d for class %s has no equals, any or all condition", ii, class)
		}
		rules = append(rules, rule)
	}
	if file.Extend {
		rules = append(rules, DefaultRules...)
	}
	return NewMapper(rules...), nil
}

func lowerKeywords(keywords []string) []string {
	if len(keywords) == 0 {
		return nil
	}
	lowered := make([]string, 0, len(keywords))
	for _, keyword := range keywords {
		keyword = strings.ToLower(strings.TrimSpace(keyword))
		if keyword != "" {
			lowered = append(lowered, keyword)
		}
	}
	return lowered
}
