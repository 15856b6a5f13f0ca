// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package taxonomy defines the fixed set of spinach defect classes and maps raw
// source folder names (e.g. "Anthracnose(102)") to them.
package taxonomy

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ClassID identifies one of the classes in Names. Its value is the id written to label files.
type ClassID int

const (
	SpinachLeaf ClassID = iota
	Stem
	Good
	Yellow
	Hole
	Track
	WhiteSpot
	FungalSpot
)

// ErrInvalidClass is returned when a rule maps to a ClassID that is not in Names.
var ErrInvalidClass = errors.New("invalid class id")

// Unmapped is returned by Mapper.Classify when no rule matches the folder name.
const Unmapped ClassID = -1

// Names of the classes, indexed by ClassID. The order is the contract with the trained model.
var Names = []string{
	"spinach_leaf",
	"stem",
	"GOOD",
	"YELLOW",
	"HOLE",
	"TRACK",
	"WSPOT",
	"FSPOT",
}

// NumClasses is the number of classes in the taxonomy.
func NumClasses() int { return len(Names) }

// Valid returns whether c is one of the classes in Names.
func (c ClassID) Valid() bool {
	return c >= 0 && int(c) < len(Names)
}

// String implements fmt.Stringer.
func (c ClassID) String() string {
	if !c.Valid() {
		if c == Unmapped {
			return "Unmapped"
		}
		return fmt.Sprintf("ClassID(%d)", int(c))
	}
	return Names[c]
}

// Parse returns the ClassID for the given class name. The exact name is preferred, but
// a case-insensitive match is accepted.
func Parse(name string) (ClassID, error) {
	for ii, candidate := range Names {
		if candidate == name {
			return ClassID(ii), nil
		}
	}
	for ii, candidate := range Names {
		if strings.EqualFold(candidate, name) {
			return ClassID(ii), nil
		}
	}
	return Unmapped, errors.Errorf("unknown class %q, valid classes are %v", name, Names)
}
