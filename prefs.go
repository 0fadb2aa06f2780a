// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blmatch

import (
	"fmt"
	"sort"
)

// Normalize validates a raw solve request and produces the canonical
// instance consumed by every matcher.
//
// Ranks are canonicalized per agent to dense integers starting at 1, ties
// preserved as equal integers. The result is identical whether the input
// arrived as an ordered list (sequential ranks, no ties) or as a rank map,
// and canonicalizing an already-canonical ranking is a no-op.
//
// Validation failures are reported before any solving: ErrReference for
// unknown agent ids, ErrIncompleteList when a complete-list variant (SMP,
// SMT) is fed a non-total list, and ErrConfig for bad capacities, weights,
// ties under SMP, or a malformed variant.
func Normalize(req *Request) (*Instance, error) {
	if !req.Variant.Valid() {
		return nil, fmt.Errorf("%w: unknown variant %q", ErrConfig, req.Variant)
	}
	if w := req.PreferenceWeight; w != nil && (*w < 0 || *w > 1) {
		return nil, fmt.Errorf("%w: preference_weight %v outside [0,1]", ErrConfig, *w)
	}

	bigs, err := buildAgents(req.Bigs, SideBig, req.Variant)
	if err != nil {
		return nil, err
	}
	littles, err := buildAgents(req.Littles, SideLittle, req.Variant)
	if err != nil {
		return nil, err
	}
	for _, b := range bigs {
		if _, ok := req.Littles[b.ID]; ok {
			return nil, fmt.Errorf("%w: agent %q appears on both sides", ErrConfig, b.ID)
		}
	}

	bigPrefs, err := normalizePrefs(req.BigPrefs, bigs, littles, SideBig, req.Variant)
	if err != nil {
		return nil, err
	}
	littlePrefs, err := normalizePrefs(req.LittlePrefs, littles, bigs, SideLittle, req.Variant)
	if err != nil {
		return nil, err
	}

	inst := &Instance{
		Variant:     req.Variant,
		Bigs:        bigs,
		Littles:     littles,
		BigPrefs:    bigPrefs,
		LittlePrefs: littlePrefs,
		bigByID:     make(map[string]Agent, len(bigs)),
		littleByID:  make(map[string]Agent, len(littles)),
	}
	for _, a := range bigs {
		inst.bigByID[a.ID] = a
	}
	for _, a := range littles {
		inst.littleByID[a.ID] = a
	}
	return inst, nil
}

// buildAgents turns the wire-form agent annotations into Agent values,
// sorted by id. Capacities are forced to 1 for the deferred-acceptance
// variants, which match one partner per agent by definition.
func buildAgents(specs map[string]AgentSpec, side Side, variant Variant) ([]Agent, error) {
	agents := make([]Agent, 0, len(specs))
	for id, spec := range specs {
		if id == "" {
			return nil, fmt.Errorf("%w: empty %s id", ErrConfig, side)
		}
		a := Agent{ID: id, Side: side, Cap: 1, Weight: 1.0}
		if spec.Max != nil {
			if *spec.Max < 0 {
				return nil, fmt.Errorf("%w: %s %q has negative capacity %d", ErrConfig, side, id, *spec.Max)
			}
			a.Cap = *spec.Max
		}
		if spec.Weight != nil {
			if *spec.Weight < 0 {
				return nil, fmt.Errorf("%w: %s %q has negative weight %v", ErrConfig, side, id, *spec.Weight)
			}
			a.Weight = *spec.Weight
		}
		if variant != VariantOptimized {
			a.Cap = 1
		}
		agents = append(agents, a)
	}
	sort.Slice(agents, func(i, j int) bool { return agents[i].ID < agents[j].ID })
	return agents, nil
}

// normalizePrefs validates and canonicalizes one side's preference data.
func normalizePrefs(prefs map[string]PrefInput, owners, opposite []Agent, ownerSide Side, variant Variant) (map[string]Ranking, error) {
	oppositeSide := SideLittle
	if ownerSide == SideLittle {
		oppositeSide = SideBig
	}

	ownerSet := make(map[string]bool, len(owners))
	for _, a := range owners {
		ownerSet[a.ID] = true
	}
	for id := range prefs {
		if !ownerSet[id] {
			return nil, fmt.Errorf("%w: preferences given for unknown %s %q", ErrReference, ownerSide, id)
		}
	}

	oppositeSet := make(map[string]bool, len(opposite))
	for _, a := range opposite {
		oppositeSet[a.ID] = true
	}

	out := make(map[string]Ranking, len(owners))
	for _, a := range owners {
		in, ok := prefs[a.ID]
		if !ok {
			if !variant.allowsIncomplete() {
				return nil, fmt.Errorf("%w: %s %q has no preference list", ErrIncompleteList, ownerSide, a.ID)
			}
			out[a.ID] = Ranking{}
			continue
		}
		raw, err := rawRanks(a.ID, ownerSide, in, variant)
		if err != nil {
			return nil, err
		}
		for id := range raw {
			if !oppositeSet[id] {
				return nil, fmt.Errorf("%w: %s %q ranks unknown %s %q", ErrReference, ownerSide, a.ID, oppositeSide, id)
			}
		}
		if !variant.allowsIncomplete() && len(raw) != len(opposite) {
			return nil, fmt.Errorf("%w: %s %q ranks %d of %d %ss", ErrIncompleteList, ownerSide, a.ID, len(raw), len(opposite), oppositeSide)
		}
		out[a.ID] = canonicalize(raw)
	}
	return out, nil
}

// rawRanks converts one raw preference entry into an id→rank map, still in
// the caller's rank scale.
func rawRanks(owner string, side Side, in PrefInput, variant Variant) (map[string]int, error) {
	if in.Order != nil && in.Ranks != nil {
		return nil, fmt.Errorf("%w: %s %q has both list and rank-map preferences", ErrConfig, side, owner)
	}
	if in.Order != nil {
		raw := make(map[string]int, len(in.Order))
		for i, id := range in.Order {
			if _, dup := raw[id]; dup {
				return nil, fmt.Errorf("%w: %s %q lists %q twice", ErrConfig, side, owner, id)
			}
			raw[id] = i + 1
		}
		return raw, nil
	}
	if !variant.allowsTies() {
		// A rank map is accepted for SMP as long as it encodes a strict
		// total order.
		seen := make(map[int]bool, len(in.Ranks))
		for _, rank := range in.Ranks {
			if seen[rank] {
				return nil, fmt.Errorf("%w: %s %q has tied ranks under the strict variant", ErrConfig, side, owner)
			}
			seen[rank] = true
		}
	}
	raw := make(map[string]int, len(in.Ranks))
	for id, rank := range in.Ranks {
		raw[id] = rank
	}
	return raw, nil
}

// canonicalize compresses arbitrary rank values into dense ranks starting
// at 1, keeping ties as equal integers. Idempotent.
func canonicalize(raw map[string]int) Ranking {
	ids := make([]string, 0, len(raw))
	for id := range raw {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if raw[ids[i]] != raw[ids[j]] {
			return raw[ids[i]] < raw[ids[j]]
		}
		return ids[i] < ids[j]
	})
	out := make(Ranking, len(ids))
	rank := 0
	for i, id := range ids {
		if i == 0 || raw[id] != raw[ids[i-1]] {
			rank++
		}
		out[id] = rank
	}
	return out
}
