// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blmatch

import (
	"context"
	"fmt"
)

// deferredMatcher runs proposer-side (big-side) deferred acceptance. The
// two flags only widen which instances it accepts; the proposal loop itself
// is shared by all three variants.
type deferredMatcher struct {
	ties       bool
	incomplete bool
}

// ClassicMatcher returns the Gale–Shapley matcher for strict complete
// preferences (SMP). The result is stable and big-optimal among all stable
// matchings. With a FIFO free queue seeded in sorted big-id order the
// outcome is deterministic; at most n² proposals are made.
func ClassicMatcher() Matcher { return deferredMatcher{} }

// TiesMatcher generalizes ClassicMatcher to weak preference orders (SMT).
// A big proposes in increasing rank order, visiting tied counterparts in id
// order; a little abandons its tentative partner only for a strictly
// better-ranked proposer, so among tied candidates the first tentative
// acceptance wins. The result is weakly stable: no pair strictly mutually
// prefers each other over their assignment. No strong or super-stability is
// guaranteed, and the matching need not have maximum cardinality among
// weakly stable matchings.
func TiesMatcher() Matcher { return deferredMatcher{ties: true} }

// IncompleteMatcher extends TiesMatcher to incomplete lists (SMTI). Agents
// never propose to, nor accept, counterparts absent from their own ranking;
// a big whose list is exhausted stays unmatched. The result is weakly
// stable over the acceptable-pairs graph and may leave agents on either
// side unmatched even when a perfect matching exists; that is intrinsic to
// the stability requirement, not a defect.
func IncompleteMatcher() Matcher { return deferredMatcher{ties: true, incomplete: true} }

func (m deferredMatcher) compat(inst *Instance) error {
	switch inst.Variant {
	case VariantSMP:
		return nil
	case VariantSMT:
		if m.ties {
			return nil
		}
	case VariantSMTI:
		if m.ties && m.incomplete {
			return nil
		}
	}
	return fmt.Errorf("%w: %s instance handed to a matcher that cannot solve it", ErrConfig, inst.Variant)
}

// Match runs deferred acceptance to convergence. Validated input cannot
// fail mid-solve; the only error is an instance/matcher variant mismatch.
func (m deferredMatcher) Match(_ context.Context, inst *Instance) (Matching, error) {
	if err := m.compat(inst); err != nil {
		return Matching{}, err
	}

	// Per-big proposal sequence: increasing rank, ties in id order.
	sequence := make(map[string][]string, len(inst.Bigs))
	next := make(map[string]int, len(inst.Bigs))
	for _, b := range inst.Bigs {
		sequence[b.ID] = inst.BigPrefs[b.ID].ordered()
	}

	// engaged maps a little to its tentative big.
	engaged := make(map[string]string, len(inst.Littles))

	// FIFO queue of free bigs, seeded in sorted id order (inst.Bigs is
	// already sorted by Normalize).
	queue := make([]string, 0, len(inst.Bigs))
	for _, b := range inst.Bigs {
		queue = append(queue, b.ID)
	}

	for len(queue) > 0 {
		big := queue[0]
		queue = queue[1:]

		seq := sequence[big]
		if next[big] >= len(seq) {
			// List exhausted: permanently free. Impossible for complete
			// equal-sized lists, expected under SMTI.
			continue
		}
		little := seq[next[big]]
		next[big]++

		littleRanks := inst.LittlePrefs[little]
		rank, acceptable := littleRanks.RankOf(big)
		if !acceptable {
			// Mutually unacceptable under SMTI: the proposal is refused
			// outright and the big moves on.
			queue = append(queue, big)
			continue
		}

		holder, taken := engaged[little]
		if !taken {
			engaged[little] = big
			continue
		}
		holderRank, _ := littleRanks.RankOf(holder)
		if rank < holderRank {
			// Strictly preferred: displace. A tie keeps the incumbent.
			engaged[little] = big
			queue = append(queue, holder)
		} else {
			queue = append(queue, big)
		}
	}

	matching := newMatching()
	for little, big := range engaged {
		matching.add(big, little)
	}
	matching.finalize()
	return matching, nil
}
