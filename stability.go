// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blmatch

import "math"

// BlockingPairs enumerates the blocking pairs of a matching: pairs (B, L)
// not assigned to each other where both would strictly prefer each other
// over their current situation. Equal ranks are indifference and never
// block. An agent below its capacity prefers any acceptable candidate over
// the empty slot.
//
// Pairs are enumerated by big id then little id, so output is reproducible.
// The matching is not mutated; the checker is safe on the output of any
// matcher, including the optimized one, and on externally built matchings.
func BlockingPairs(m Matching, inst *Instance) []Pair {
	blocking := []Pair{}
	for _, b := range inst.Bigs {
		bigRanks := inst.BigPrefs[b.ID]
		assignedToBig := m.OfBig(b.ID)
		for _, l := range inst.Littles {
			if contains(assignedToBig, l.ID) {
				continue
			}
			bigRankOfL, ok := bigRanks.RankOf(l.ID)
			if !ok {
				continue
			}
			littleRanks := inst.LittlePrefs[l.ID]
			littleRankOfB, ok := littleRanks.RankOf(b.ID)
			if !ok {
				continue
			}
			if strictlyPrefers(bigRanks, bigRankOfL, assignedToBig, b.Cap) &&
				strictlyPrefers(littleRanks, littleRankOfB, m.OfLittle(l.ID), l.Cap) {
				blocking = append(blocking, Pair{Big: b.ID, Little: l.ID})
			}
		}
	}
	return blocking
}

// strictlyPrefers reports whether an agent with the given ranking would
// strictly prefer the candidate (at candRank) over its current assignments:
// either a capacity slot is open, or the candidate outranks the worst
// retained partner.
func strictlyPrefers(r Ranking, candRank int, assigned []string, cap int) bool {
	if len(assigned) < cap {
		return true
	}
	worst := 0
	for _, partner := range assigned {
		rank, ok := r.RankOf(partner)
		if !ok {
			// A partner the agent never ranked is worse than any ranked
			// candidate.
			rank = math.MaxInt
		}
		if rank > worst {
			worst = rank
		}
	}
	return candRank < worst
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
