// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blmatch

import (
	"context"
	"fmt"
	"math"

	"github.com/greeklink/blmatch/score"
)

// objectiveScale converts float pair scores into the integer coefficients
// the pseudo-boolean backend needs. Three decimal places is enough to keep
// the ordering of any realistic weight/rank combination.
const objectiveScale = 1000

// DefaultPreferenceWeight is the big-side share of the objective when the
// request leaves it unset.
const DefaultPreferenceWeight = 0.5

// PairVar is one binary decision variable: chosen means the pair is
// matched.
type PairVar struct {
	Big    string
	Little string
}

// Bound constrains how many of the listed variables may be chosen:
// Min ≤ Σ x ≤ Max.
type Bound struct {
	VarIdx []int
	Min    int
	Max    int
}

// Problem is a capacity-constrained weighted assignment formulation.
// Variables are listed in canonical (big id, little id) order so any
// deterministic solver yields reproducible assignments.
type Problem struct {
	Vars      []PairVar
	Bounds    []Bound
	Objective []int // coefficient per variable; maximize Σ c·x
}

// Assignment is a solver verdict: which variables were chosen and the
// objective value achieved.
type Assignment struct {
	Chosen    []bool
	Objective int
}

// Solver is the external combinatorial-optimization collaborator. It must
// return the objective-optimal feasible assignment, ErrInfeasible when no
// assignment satisfies the bounds, or ErrSolverTimeout when the context
// deadline cuts it off. Implementations must be deterministic for a fixed
// problem.
type Solver interface {
	Solve(ctx context.Context, p *Problem) (*Assignment, error)
}

// Formulate builds the assignment problem for an instance: one binary
// variable per mutually acceptable pair, per-agent bounds of
// 1 ≤ assigned ≤ capacity (or exactly 1 when exactlyOne is set), and a
// weighted preference objective. Stability is not encoded; audit the
// resulting matching with BlockingPairs if a stability report is wanted.
func Formulate(inst *Instance, preferenceWeight float64, exactlyOne bool) *Problem {
	scorer := score.Weighted{W: preferenceWeight}

	p := &Problem{}
	byBig := make(map[string][]int, len(inst.Bigs))
	byLittle := make(map[string][]int, len(inst.Littles))

	for _, b := range inst.Bigs {
		for _, l := range inst.Littles {
			if !inst.Acceptable(b.ID, l.ID) {
				continue
			}
			bigRank, _ := inst.BigPrefs[b.ID].RankOf(l.ID)
			littleRank, _ := inst.LittlePrefs[l.ID].RankOf(b.ID)
			s := scorer.Score(score.PairRanks{
				BigRank:      bigRank,
				LittleRank:   littleRank,
				BigMax:       len(inst.Littles),
				LittleMax:    len(inst.Bigs),
				BigWeight:    b.Weight,
				LittleWeight: l.Weight,
			})
			idx := len(p.Vars)
			p.Vars = append(p.Vars, PairVar{Big: b.ID, Little: l.ID})
			p.Objective = append(p.Objective, int(math.Round(s*objectiveScale)))
			byBig[b.ID] = append(byBig[b.ID], idx)
			byLittle[l.ID] = append(byLittle[l.ID], idx)
		}
	}

	addBounds := func(agents []Agent, byAgent map[string][]int) {
		for _, a := range agents {
			max := a.Cap
			if exactlyOne {
				max = 1
			}
			p.Bounds = append(p.Bounds, Bound{
				VarIdx: byAgent[a.ID],
				Min:    1,
				Max:    max,
			})
		}
	}
	addBounds(inst.Bigs, byBig)
	addBounds(inst.Littles, byLittle)

	return p
}

// Optimizer is the capacity/weight-optimized matcher. Unset fields take
// defaults; the Solver collaborator is mandatory.
type Optimizer struct {
	// PreferenceWeight trades big-side against little-side utility,
	// default DefaultPreferenceWeight.
	PreferenceWeight *float64

	// ExactlyOne forces every agent to exactly one partner.
	ExactlyOne bool

	// Solver performs the delegated combinatorial search.
	Solver Solver

	w float64
}

func (o *Optimizer) init() error {
	if o.Solver == nil {
		return fmt.Errorf("%w: optimizer needs a solver", ErrConfig)
	}
	if o.PreferenceWeight == nil {
		o.w = DefaultPreferenceWeight
	} else {
		o.w = *o.PreferenceWeight
	}
	if o.w < 0 || o.w > 1 {
		return fmt.Errorf("%w: preference weight %v outside [0,1]", ErrConfig, o.w)
	}
	return nil
}

// Match formulates the assignment problem and delegates to the solver. It
// returns ErrInfeasible when no assignment satisfies the bounds and
// ErrSolverTimeout when the context deadline expires first; both are normal
// solve-time outcomes for the caller to branch on. The result is optimal
// for the objective but not necessarily stable.
func (o *Optimizer) Match(ctx context.Context, inst *Instance) (Matching, error) {
	if inst.Variant != VariantOptimized {
		return Matching{}, fmt.Errorf("%w: %s instance handed to the optimized matcher", ErrConfig, inst.Variant)
	}
	if err := o.init(); err != nil {
		return Matching{}, err
	}

	p := Formulate(inst, o.w, o.ExactlyOne)
	asg, err := o.Solver.Solve(ctx, p)
	if err != nil {
		return Matching{}, err
	}
	if len(asg.Chosen) != len(p.Vars) {
		return Matching{}, fmt.Errorf("solver returned %d values for %d variables", len(asg.Chosen), len(p.Vars))
	}

	matching := newMatching()
	for i, chosen := range asg.Chosen {
		if chosen {
			matching.add(p.Vars[i].Big, p.Vars[i].Little)
		}
	}
	matching.finalize()
	return matching, nil
}
