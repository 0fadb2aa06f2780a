// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blmatch

import (
	"context"
	"errors"
	"time"

	"github.com/greeklink/blmatch/score"
)

// Status is the solve-time outcome of a request. Validation problems are
// returned as errors instead; see Normalize.
type Status string

const (
	// StatusMatched means a matching was produced.
	StatusMatched Status = "matched"
	// StatusInfeasible means no assignment satisfies the optimized
	// variant's constraints.
	StatusInfeasible Status = "infeasible"
	// StatusTimeout means the solver collaborator exceeded the caller's
	// time budget.
	StatusTimeout Status = "timeout"
)

// SideStats summarizes one side of a matching. AvgRank is the mean
// canonical rank agents on this side assigned to the partners they
// received; it is 0 when nothing matched.
type SideStats struct {
	Matched   int     `json:"matched"`
	Unmatched int     `json:"unmatched"`
	AvgRank   float64 `json:"avg_rank"`
}

// Stats bundles the per-side summaries of one solve.
type Stats struct {
	Bigs    SideStats `json:"bigs"`
	Littles SideStats `json:"littles"`
}

// Result is the bundle returned by Solve: the matching, its statistics,
// and the blocking pairs found by the instability checker. Instabilities
// are empty by construction for the deferred-acceptance variants and may be
// non-empty for the optimized one. Objective is set only for the optimized
// variant.
type Result struct {
	Variant       Variant  `json:"variant"`
	Status        Status   `json:"status"`
	Matching      []Pair   `json:"matching"`
	Stats         Stats    `json:"statistics"`
	Instabilities []Pair   `json:"instabilities"`
	Objective     *float64 `json:"objective,omitempty"`
	ElapsedMS     float64  `json:"elapsed_ms"`
}

// Option configures one Solve call.
type Option func(*solveConfig)

type solveConfig struct {
	solver Solver
}

// WithSolver injects the combinatorial-optimization collaborator used by
// the optimized variant. Tests substitute a stub here.
func WithSolver(s Solver) Option {
	return func(c *solveConfig) { c.solver = s }
}

// Solve runs one complete solve: normalize, match by variant, audit for
// blocking pairs, and bundle statistics. Each call owns all of its state,
// so independent calls may run concurrently.
//
// Validation failures (ErrReference, ErrIncompleteList, ErrConfig) are
// returned as errors before any solving. Infeasibility and solver timeouts
// of the optimized variant are reported through Result.Status, since
// callers treat them as normal branches.
func Solve(ctx context.Context, req *Request, opts ...Option) (*Result, error) {
	var cfg solveConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	inst, err := Normalize(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{
		Variant:       inst.Variant,
		Status:        StatusMatched,
		Matching:      []Pair{},
		Instabilities: []Pair{},
	}

	var matching Matching
	switch inst.Variant {
	case VariantSMP:
		matching, err = ClassicMatcher().Match(ctx, inst)
	case VariantSMT:
		matching, err = TiesMatcher().Match(ctx, inst)
	case VariantSMTI:
		matching, err = IncompleteMatcher().Match(ctx, inst)
	case VariantOptimized:
		opt := &Optimizer{
			PreferenceWeight: req.PreferenceWeight,
			ExactlyOne:       req.ExactlyOne,
			Solver:           cfg.solver,
		}
		matching, err = opt.Match(ctx, inst)
		switch {
		case errors.Is(err, ErrInfeasible):
			res.Status = StatusInfeasible
			err = nil
		case errors.Is(err, ErrSolverTimeout):
			res.Status = StatusTimeout
			err = nil
		case err == nil:
			obj := objectiveOf(inst, matching, opt.w)
			res.Objective = &obj
		}
	}
	if err != nil {
		return nil, err
	}
	res.ElapsedMS = float64(time.Since(start)) / float64(time.Millisecond)

	if res.Status != StatusMatched {
		res.Stats = buildStats(inst, Matching{})
		return res, nil
	}

	res.Matching = matching.Pairs()
	res.Stats = buildStats(inst, matching)
	res.Instabilities = BlockingPairs(matching, inst)
	return res, nil
}

// objectiveOf recomputes the unscaled objective value of a matching with
// the same scorer the formulation used.
func objectiveOf(inst *Instance, m Matching, w float64) float64 {
	scorer := score.Weighted{W: w}
	total := 0.0
	for _, p := range m.Pairs() {
		b, _ := inst.BigAgent(p.Big)
		l, _ := inst.LittleAgent(p.Little)
		bigRank, _ := inst.BigPrefs[p.Big].RankOf(p.Little)
		littleRank, _ := inst.LittlePrefs[p.Little].RankOf(p.Big)
		total += scorer.Score(score.PairRanks{
			BigRank:      bigRank,
			LittleRank:   littleRank,
			BigMax:       len(inst.Littles),
			LittleMax:    len(inst.Bigs),
			BigWeight:    b.Weight,
			LittleWeight: l.Weight,
		})
	}
	return total
}

func buildStats(inst *Instance, m Matching) Stats {
	var s Stats
	s.Bigs = sideStats(inst.Bigs, inst.BigPrefs, m.OfBig)
	s.Littles = sideStats(inst.Littles, inst.LittlePrefs, m.OfLittle)
	return s
}

func sideStats(agents []Agent, prefs map[string]Ranking, assigned func(string) []string) SideStats {
	var st SideStats
	rankSum, rankCount := 0, 0
	for _, a := range agents {
		partners := assigned(a.ID)
		if len(partners) == 0 {
			st.Unmatched++
			continue
		}
		st.Matched++
		for _, p := range partners {
			if rank, ok := prefs[a.ID].RankOf(p); ok {
				rankSum += rank
				rankCount++
			}
		}
	}
	if rankCount > 0 {
		st.AvgRank = float64(rankSum) / float64(rankCount)
	}
	return st
}
