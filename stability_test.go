// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blmatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockingPairsOnUnstableMatching(t *testing.T) {
	inst, err := Normalize(smpRequest())
	require.NoError(t, err)

	// Swap Ishaan's and Thomas's stable partners: Thomas and Zora are each
	// other's first choices and now block.
	m := NewMatching([]Pair{
		{Big: "Cindy", Little: "Kevin"},
		{Big: "Ishaan", Little: "Zora"},
		{Big: "Thomas", Little: "Swapneel"},
	})

	assert.Equal(t, []Pair{{Big: "Thomas", Little: "Zora"}}, BlockingPairs(m, inst))
}

func TestBlockingPairsTiesNeverBlock(t *testing.T) {
	req := &Request{
		Variant: VariantSMT,
		Bigs:    specs("A", "B"),
		Littles: specs("X", "Y"),
		BigPrefs: map[string]PrefInput{
			"A": RankPref(map[string]int{"X": 1, "Y": 1}),
			"B": RankPref(map[string]int{"X": 1, "Y": 2}),
		},
		LittlePrefs: map[string]PrefInput{
			"X": RankPref(map[string]int{"A": 1, "B": 1}),
			"Y": RankPref(map[string]int{"A": 1, "B": 1}),
		},
	}
	inst, err := Normalize(req)
	require.NoError(t, err)

	// A is indifferent between X and Y, so (A, X) must not block even
	// though X is "no worse" for A than Y.
	m := NewMatching([]Pair{
		{Big: "A", Little: "Y"},
		{Big: "B", Little: "X"},
	})
	assert.Empty(t, BlockingPairs(m, inst))
}

func TestBlockingPairsUnderCapacity(t *testing.T) {
	two := 2
	req := &Request{
		Variant: VariantOptimized,
		Bigs:    map[string]AgentSpec{"A": {Max: &two}},
		Littles: specs("X", "Y"),
		BigPrefs: map[string]PrefInput{
			"A": RankPref(map[string]int{"X": 1, "Y": 2}),
		},
		LittlePrefs: map[string]PrefInput{
			"X": RankPref(map[string]int{"A": 1}),
			"Y": RankPref(map[string]int{"A": 1}),
		},
	}
	inst, err := Normalize(req)
	require.NoError(t, err)

	// A has a free capacity slot and Y is unmatched: an open-slot pair of
	// mutually acceptable agents blocks.
	m := NewMatching([]Pair{{Big: "A", Little: "X"}})
	assert.Equal(t, []Pair{{Big: "A", Little: "Y"}}, BlockingPairs(m, inst))
}

func TestBlockingPairsDoesNotMutate(t *testing.T) {
	inst, err := Normalize(smpRequest())
	require.NoError(t, err)
	m := NewMatching([]Pair{{Big: "Ishaan", Little: "Zora"}})

	before := m.Pairs()
	_ = BlockingPairs(m, inst)
	assert.Equal(t, before, m.Pairs())
}
