// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package taxonomy

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	require.Equal(t, 8, NumClasses())
	assert.Equal(t, "spinach_leaf", SpinachLeaf.String())
	assert.Equal(t, "GOOD", Good.String())
	assert.Equal(t, "FSPOT", FungalSpot.String())
	assert.Equal(t, 7, int(FungalSpot))
	assert.Equal(t, "Unmapped", Unmapped.String())
	assert.False(t, Unmapped.Valid())
	assert.False(t, ClassID(8).Valid())

	c, err := Parse("WSPOT")
	require.NoError(t, err)
	assert.Equal(t, WhiteSpot, c)
	c, err = Parse("hole")
	require.NoError(t, err)
	assert.Equal(t, Hole, c)
	_, err = Parse("rust")
	assert.Error(t, err)
}

func TestCleanFolderName(t *testing.T) {
	assert.Equal(t, "anthracnose", CleanFolderName("Anthracnose(102)"))
	assert.Equal(t, "healthy", CleanFolderName("  Healthy (50) "))
	assert.Equal(t, "pest_damage", CleanFolderName("Pest_Damage"))
	// Only a trailing count is stripped.
	assert.Equal(t, "leaf (3) yellow", CleanFolderName("Leaf (3) Yellow"))
	assert.Equal(t, "spot(a)", CleanFolderName("Spot(a)"))
}

func TestDefaultMapper(t *testing.T) {
	m := DefaultMapper()
	for folder, want := range map[string]ClassID{
		"Healthy(50)":              Good,
		"healthy":                  Good,
		"Pest_Damage":              Hole,
		"Shot Hole(33)":            Hole,
		"Bacterial Spot(88)":       FungalSpot,
		"Anthracnose(102)":         FungalSpot,
		"Downy Mildew":             WhiteSpot,
		"White_Spot(12)":           WhiteSpot,
		"Yellow_Leaf":              Yellow,
		"Begomovirus infected(40)": Yellow,
		"Infected":                 Yellow,
		"Healthy leaves":           Good,
		"Fresh Healthy Yellow":     Yellow, // "yellow" is tried before the substring "healthy".
		"Healthy Pest":             Hole,
	} {
		assert.Equal(t, want, m.Classify(folder), "folder %q", folder)
	}

	for _, folder := range []string{"random_folder", "Rust(10)", "", "White", "spot"} {
		assert.Equal(t, Unmapped, m.Classify(folder), "folder %q", folder)
	}
}

func TestRuleMatch(t *testing.T) {
	assert.False(t, Rule{Class: Good}.Match("healthy"))
	r := Rule{Class: WhiteSpot, Equals: "white spot", All: []string{"white"}}
	assert.True(t, r.Match("white spot"))
	assert.False(t, r.Match("white spots"))
}

func TestMapperValidate(t *testing.T) {
	require.NoError(t, DefaultMapper().Validate())
	for _, class := range []ClassID{ClassID(NumClasses()), ClassID(9), Unmapped} {
		m := NewMapper(DefaultRules[0], Rule{Class: class, Any: []string{"healthy"}})
		err := m.Validate()
		require.Error(t, err, "class %d", class)
		assert.True(t, errors.Is(err, ErrInvalidClass))
		assert.Contains(t, err.Error(), "rule #1")
	}
}

func TestParseRules(t *testing.T) {
	m, err := ParseRules([]byte(`
extend: true
rules:
  - class: TRACK
    any: [Miner, "trail "]
  - class: stem
    equals: Stalks
`))
	require.NoError(t, err)
	require.Len(t, m.Rules(), 2+len(DefaultRules))
	assert.Equal(t, Track, m.Classify("Leaf Miner(20)"))
	assert.Equal(t, Track, m.Classify("trail marks"))
	assert.Equal(t, Stem, m.Classify("Stalks (7)"))
	assert.Equal(t, Good, m.Classify("Healthy"))

	m, err = ParseRules([]byte("rules:\n  - class: TRACK\n    any: [miner]\n"))
	require.NoError(t, err)
	assert.Equal(t, Unmapped, m.Classify("Healthy"))

	_, err = ParseRules([]byte("rules:\n  - class: RUST\n    any: [rust]\n"))
	assert.Error(t, err)
	_, err = ParseRules([]byte("rules:\n  - class: GOOD\n"))
	assert.Error(t, err)
	_, err = ParseRules([]byte("rules: []\n"))
	assert.Error(t, err)
	_, err = ParseRules([]byte("rules: [\n"))
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/rules.yaml", []byte("rules:\n  - class: HOLE\n    all: [leaf, hole]\n"), 0644))
	m, err := LoadRules(fs, "/rules.yaml")
	require.NoError(t, err)
	assert.Equal(t, Hole, m.Classify("Leaf Hole"))
	assert.Equal(t, Unmapped, m.Classify("Hole"))

	_, err = LoadRules(fs, "/missing.yaml")
	assert.Error(t, err)
}
