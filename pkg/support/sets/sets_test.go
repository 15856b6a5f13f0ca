// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package sets

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	s := Make[string](10)
	assert.Len(t, s, 0)

	s.Insert("GOOD_a.jpg", "HOLE_a.jpg")
	assert.Len(t, s, 2)
	assert.True(t, s.Has("GOOD_a.jpg"))
	assert.False(t, s.Has("YELLOW_a.jpg"))

	s2 := MakeWith(".png", ".jpg", ".png")
	assert.Len(t, s2, 2)
	assert.Equal(t, []string{".jpg", ".png"}, Sorted(s2))
}

func TestClaim(t *testing.T) {
	s := Make[string]()
	assert.True(t, s.Claim("GOOD_1.jpg"))
	assert.False(t, s.Claim("GOOD_1.jpg"))
	assert.True(t, s.Claim("GOOD_Healthy_1.jpg"))
	assert.Len(t, s, 2)
}
