// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

package split

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItems(n int) []string {
	items := make([]string, n)
	for ii := range items {
		items[ii] = fmt.Sprintf("img_%04d.jpg", ii)
	}
	return items
}

func TestHeldOutSize(t *testing.T) {
	assert.Equal(t, 3, HeldOutSize(10, 30))
	assert.Equal(t, 30, HeldOutSize(100, 30))
	assert.Equal(t, 1, HeldOutSize(1, 30))
	assert.Equal(t, 4, HeldOutSize(11, 30))
	assert.Equal(t, 2, HeldOutSize(3, 50))
	assert.Equal(t, 0, HeldOutSize(0, 30))
	assert.Equal(t, 0, HeldOutSize(5, 0))
	assert.Equal(t, 5, HeldOutSize(5, 100))
}

func TestPartitionSizes(t *testing.T) {
	for _, tc := range []struct{ n, train, val, test int }{
		{100, 70, 15, 15},
		{1000, 700, 150, 150},
		{10, 7, 1, 2},
		{7, 4, 1, 2},
		{1, 0, 0, 1},
		{0, 0, 0, 0},
	} {
		s := Partition(makeItems(tc.n), DefaultSeed)
		assert.Len(t, s.Train, tc.train, "n=%d", tc.n)
		assert.Len(t, s.Val, tc.val, "n=%d", tc.n)
		assert.Len(t, s.Test, tc.test, "n=%d", tc.n)
		assert.Equal(t, tc.n, s.Len())
	}
}

func TestPartitionIsPartition(t *testing.T) {
	items := makeItems(523)
	s := Partition(items, DefaultSeed)
	seen := make(map[string]string, len(items))
	for _, named := range s.Named() {
		for _, item := range named.Items {
			previous, found := seen[item]
			require.False(t, found, "%q is both in %s and %s", item, previous, named.Name)
			seen[item] = named.Name
		}
	}
	assert.Len(t, seen, len(items))
	for _, item := range items {
		assert.Contains(t, seen, item)
	}
	// Input not modified.
	assert.Equal(t, makeItems(523), items)
}

func TestPartitionReproducible(t *testing.T) {
	items := makeItems(200)
	s1 := Partition(items, DefaultSeed)
	s2 := Partition(items, DefaultSeed)
	assert.Equal(t, s1, s2)

	s3 := Partition(items, 7)
	assert.NotEqual(t, s1.Train, s3.Train)
	assert.Equal(t, len(s1.Train), len(s3.Train))
}

func TestNamed(t *testing.T) {
	s := Splits[int]{Train: []int{1}, Val: []int{2}, Test: []int{3}}
	named := s.Named()
	require.Len(t, named, 3)
	for ii, name := range Names {
		assert.Equal(t, name, named[ii].Name)
		assert.Equal(t, []int{ii + 1}, named[ii].Items)
	}
}
