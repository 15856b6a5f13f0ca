// Copyright 2026 The spinachprep Authors. SPDX-License-Identifier: Apache-2.0

// Package split partitions a list of examples into train, validation and test sets.
//
// The partition is done in two stages, each a seeded shuffle followed by a cut:
// first HoldoutPercent of the examples are held out from training, then
// TestPercentOfHoldout of the held out examples become the test set and the
// rest the validation set. With the defaults that is a 70/15/15 split.
//
// Held out sizes are rounded up, so with N examples:
//
//	heldOut = ceil(0.30 * N), train = N - heldOut
//	test = ceil(0.50 * heldOut), val = heldOut - test
package split

import (
	"math/rand"

	"github.com/seehuhn/mt19937"
)

const (
	// DefaultSeed makes splits reproducible across runs.
	DefaultSeed int64 = 42

	// HoldoutPercent of all examples that are not used for training.
	HoldoutPercent = 30

	// TestPercentOfHoldout is the percentage of the held out examples used for test, the remaining are
	// used for validation.
	TestPercentOfHoldout = 50
)

// Splits holds the three partitions of a dataset.
type Splits[T any] struct {
	Train, Val, Test []T
}

// Len returns the total number of examples in the three splits.
func (s Splits[T]) Len() int {
	return len(s.Train) + len(s.Val) + len(s.Test)
}

// Named returns the splits paired with their names, in the order train, val, test.
func (s Splits[T]) Named() []Named[T] {
	return []Named[T]{
		{Name: "train", Items: s.Train},
		{Name: "val", Items: s.Val},
		{Name: "test", Items: s.Test},
	}
}

// Named is one split with its name, see Splits.Named.
type Named[T any] struct {
	Name  string
	Items []T
}

// Names of the splits, in the order used throughout the dataset layout.
var Names = []string{"train", "val", "test"}

// Partition splits items into train, val and test, see package documentation for the sizes.
// The input slice is not modified. The same items and seed always yield the same splits.
func Partition[T any](items []T, seed int64) Splits[T] {
	train, heldOut := Holdout(items, HoldoutPercent, seed)
	val, test := Holdout(heldOut, TestPercentOfHoldout, seed)
	return Splits[T]{Train: train, Val: val, Test: test}
}

// Holdout shuffles a copy of items with a Mersenne Twister seeded with seed, and cuts it in two:
// the first ceil(percent% * len(items)) elements are returned as heldOut, the others as kept.
func Holdout[T any](items []T, percent int, seed int64) (kept, heldOut []T) {
	n := len(items)
	numHeldOut := HeldOutSize(n, percent)
	shuffled := make([]T, n)
	copy(shuffled, items)
	rng := NewRand(seed)
	rng.Shuffle(n, func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	return shuffled[numHeldOut:], shuffled[:numHeldOut]
}

// HeldOutSize returns ceil(percent% * n), computed in integers so 30% of 10 is exactly 3.
func HeldOutSize(n, percent int) int {
	if percent <= 0 || n <= 0 {
		return 0
	}
	if percent >= 100 {
		return n
	}
	return (n*percent + 99) / 100
}

// NewRand returns a random number generator backed by a seeded MT19937 source.
func NewRand(seed int64) *rand.Rand {
	source := mt19937.New()
	source.Seed(seed)
	return rand.New(source)
}
