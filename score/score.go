// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package score computes pair utilities for the optimized matcher.
package score

// PairRanks carries everything a scorer may consult about one candidate
// big/little pair: each side's canonical rank of the other (1 = most
// preferred), the worst possible rank on each side (the size of the
// opposite agent set), and the agents' weights.
type PairRanks struct {
	BigRank    int
	LittleRank int

	BigMax    int
	LittleMax int

	BigWeight    float64
	LittleWeight float64
}

// PairScorer turns a candidate pair into a utility; higher is better.
type PairScorer interface {
	Score(r PairRanks) float64
}

// Weighted combines the two sides' rank utilities linearly: W is the
// big-side share in [0,1], 1−W the little-side share. Each side's utility
// is its worst rank minus the achieved rank plus one, so a first choice is
// worth the full span and the last acceptable choice is still worth one.
// Agent weights scale their own side's utility.
type Weighted struct {
	W float64
}

func (s Weighted) Score(r PairRanks) float64 {
	utilBig := float64(r.BigMax - r.BigRank + 1)
	utilLittle := float64(r.LittleMax - r.LittleRank + 1)
	return s.W*r.BigWeight*utilBig + (1-s.W)*r.LittleWeight*utilLittle
}
