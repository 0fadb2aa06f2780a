// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blmatch solves two-sided matching problems between two disjoint
// agent sets, "bigs" and "littles", given per-agent preference rankings.
//
// Raw preference input is normalized once into canonical rankings, then fed
// to one of four matchers: classic stable matching over strict complete
// lists (SMP), stable matching with ties (SMT), stable matching with ties
// and incomplete lists (SMTI), or capacity-constrained optimized matching
// that delegates to a pseudo-boolean solver. Any produced matching can be
// audited for blocking pairs with BlockingPairs.
package blmatch

import (
	"context"
	"errors"
	"sort"
)

// Side tells which of the two agent sets an agent belongs to.
type Side string

const (
	SideBig    Side = "big"
	SideLittle Side = "little"
)

// Variant selects the matching problem to solve and the validation rules
// applied to the preference input.
type Variant string

const (
	// VariantSMP is classic stable matching: strict, complete lists.
	VariantSMP Variant = "smp"
	// VariantSMT allows ties (equal ranks) in preference lists.
	VariantSMT Variant = "smt"
	// VariantSMTI allows ties and incomplete lists; omitted counterparts
	// are unacceptable and agents may end up unmatched.
	VariantSMTI Variant = "smti"
	// VariantOptimized maximizes aggregate preference satisfaction under
	// capacity constraints instead of guaranteeing stability.
	VariantOptimized Variant = "optimized"
)

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	switch v {
	case VariantSMP, VariantSMT, VariantSMTI, VariantOptimized:
		return true
	}
	return false
}

// allowsTies reports whether preference lists may contain equal ranks.
func (v Variant) allowsTies() bool { return v != VariantSMP }

// allowsIncomplete reports whether preference lists may omit counterparts.
func (v Variant) allowsIncomplete() bool {
	return v == VariantSMTI || v == VariantOptimized
}

// Validation failures, detected before any solving begins.
var (
	// ErrReference marks preference data naming an unknown agent.
	ErrReference = errors.New("blmatch: preference refers to unknown agent")
	// ErrIncompleteList marks a non-total preference list handed to a
	// variant that requires complete lists.
	ErrIncompleteList = errors.New("blmatch: preference list does not cover the opposite side")
	// ErrConfig marks an invalid agent or solve configuration.
	ErrConfig = errors.New("blmatch: invalid configuration")
)

// Solve-time outcomes of the optimized matcher. Callers routinely branch on
// these, so they are sentinel values rather than opaque failures.
var (
	// ErrInfeasible means no assignment satisfies the capacity constraints.
	ErrInfeasible = errors.New("blmatch: no feasible assignment")
	// ErrSolverTimeout means the solver exceeded its time budget.
	ErrSolverTimeout = errors.New("blmatch: solver exceeded time budget")
)

// Agent is one participant. Cap and Weight are consumed only by the
// optimized matcher; the deferred-acceptance variants match every agent to
// at most one counterpart.
type Agent struct {
	ID     string
	Side   Side
	Cap    int
	Weight float64
}

// Ranking maps counterpart ids to canonical ranks. Ranks start at 1,
// smaller is more preferred, and equal ranks mean indifference. A missing
// id means the counterpart is unacceptable.
type Ranking map[string]int

// RankOf returns the rank of id and whether id is acceptable.
func (r Ranking) RankOf(id string) (int, bool) {
	rank, ok := r[id]
	return rank, ok
}

// ordered returns the ranked ids from most to least preferred. Ids sharing
// a rank are ordered by id, which is the documented, preference-neutral
// proposal order among ties.
func (r Ranking) ordered() []string {
	ids := make([]string, 0, len(r))
	for id := range r {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ri, rj := r[ids[i]], r[ids[j]]
		if ri != rj {
			return ri < rj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Instance is a normalized, validated matching problem. Build one with
// Normalize; it is not mutated by any matcher.
type Instance struct {
	Variant Variant

	// Bigs and Littles are sorted by id.
	Bigs    []Agent
	Littles []Agent

	BigPrefs    map[string]Ranking
	LittlePrefs map[string]Ranking

	bigByID    map[string]Agent
	littleByID map[string]Agent
}

// BigAgent looks up a big by id.
func (in *Instance) BigAgent(id string) (Agent, bool) {
	a, ok := in.bigByID[id]
	return a, ok
}

// LittleAgent looks up a little by id.
func (in *Instance) LittleAgent(id string) (Agent, bool) {
	a, ok := in.littleByID[id]
	return a, ok
}

// Acceptable reports whether big and little each rank the other.
func (in *Instance) Acceptable(big, little string) bool {
	_, okB := in.BigPrefs[big][little]
	_, okL := in.LittlePrefs[little][big]
	return okB && okL
}

// Matcher produces a matching for a normalized instance. Implementations
// must leave the instance untouched. The context bounds solver calls made
// by the optimized matcher; the deferred-acceptance matchers terminate in
// O(n²) proposals and ignore it.
type Matcher interface {
	Match(ctx context.Context, inst *Instance) (Matching, error)
}

// Pair is one matched (or blocking) big/little pair.
type Pair struct {
	Big    string `json:"big"`
	Little string `json:"little"`
}

// Matching is a symmetric assignment between bigs and littles: big B is
// assigned little L iff L is assigned B. The zero value is an empty
// matching. Matchings are finalized by their producer and read-only after.
type Matching struct {
	ofBig    map[string][]string
	ofLittle map[string][]string
}

// NewMatching builds a matching from explicit pairs, so that externally
// produced assignments can be fed to BlockingPairs.
func NewMatching(pairs []Pair) Matching {
	m := newMatching()
	for _, p := range pairs {
		m.add(p.Big, p.Little)
	}
	m.finalize()
	return m
}

func newMatching() Matching {
	return Matching{
		ofBig:    make(map[string][]string),
		ofLittle: make(map[string][]string),
	}
}

// add records an assignment in both directions, keeping the symmetry
// invariant structural.
func (m Matching) add(big, little string) {
	m.ofBig[big] = append(m.ofBig[big], little)
	m.ofLittle[little] = append(m.ofLittle[little], big)
}

// finalize sorts partner lists for deterministic iteration.
func (m Matching) finalize() {
	for _, ps := range m.ofBig {
		sort.Strings(ps)
	}
	for _, ps := range m.ofLittle {
		sort.Strings(ps)
	}
}

// OfBig returns the littles assigned to big, sorted by id.
func (m Matching) OfBig(big string) []string { return m.ofBig[big] }

// OfLittle returns the bigs assigned to little, sorted by id.
func (m Matching) OfLittle(little string) []string { return m.ofLittle[little] }

// Len returns the number of matched pairs.
func (m Matching) Len() int {
	n := 0
	for _, ps := range m.ofBig {
		n += len(ps)
	}
	return n
}

// Pairs lists all matched pairs sorted by big id, then little id.
func (m Matching) Pairs() []Pair {
	pairs := make([]Pair, 0, m.Len())
	for big, ps := range m.ofBig {
		for _, little := range ps {
			pairs = append(pairs, Pair{Big: big, Little: little})
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Big != pairs[j].Big {
			return pairs[i].Big < pairs[j].Big
		}
		return pairs[i].Little < pairs[j].Little
	})
	return pairs
}
