// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pbsat implements the blmatch solver collaborator on top of the
// gophersat pseudo-boolean solver.
//
// The assignment bounds map directly onto pseudo-boolean constraints. The
// objective is maximized by searching the largest k for which the base
// constraints plus Σ c·x ≥ k stay satisfiable, halving the interval with
// one SAT call per step.
package pbsat

import (
	"context"
	"errors"

	gsat "github.com/crillab/gophersat/solver"

	"github.com/greeklink/blmatch"
)

// Solver solves blmatch assignment problems with gophersat. The zero value
// is ready to use. gophersat is deterministic for a fixed input, and
// blmatch submits variables in canonical order, so repeated solves of the
// same problem agree.
type Solver struct{}

// New returns a ready solver.
func New() *Solver { return &Solver{} }

// Solve returns the objective-optimal assignment, blmatch.ErrInfeasible if
// the bounds admit none, or blmatch.ErrSolverTimeout when the context
// deadline expires before the search finishes.
func (s *Solver) Solve(ctx context.Context, p *blmatch.Problem) (*blmatch.Assignment, error) {
	n := len(p.Vars)

	for _, b := range p.Bounds {
		if b.Min > len(b.VarIdx) {
			// Fewer candidate pairs than the lower bound demands.
			return nil, blmatch.ErrInfeasible
		}
	}

	// The solver owns the constraint slices it is handed, so every probe
	// gets a fresh encoding.
	baseConstrs := func() []gsat.PBConstr {
		base := make([]gsat.PBConstr, 0, 2*len(p.Bounds)+1)
		for _, b := range p.Bounds {
			if b.Min > 0 {
				lits, ones := unitTerms(b.VarIdx)
				base = append(base, gsat.GtEq(lits, ones, b.Min))
			}
			if b.Max < len(b.VarIdx) {
				lits, ones := unitTerms(b.VarIdx)
				base = append(base, gsat.LtEq(lits, ones, b.Max))
			}
		}
		return base
	}

	if n == 0 {
		// No candidate pairs at all; any per-agent lower bound was already
		// rejected above.
		return &blmatch.Assignment{Chosen: []bool{}}, nil
	}

	// Objective terms with non-zero coefficients form the PB left hand
	// side of the bound probes.
	total := 0
	for _, c := range p.Objective {
		if c > 0 {
			total += c
		}
	}

	feasible := func(atLeast int) ([]bool, bool, error) {
		constrs := baseConstrs()
		if atLeast > 0 {
			var objLits, objWeights []int
			for i, c := range p.Objective {
				if c > 0 {
					objLits = append(objLits, i+1)
					objWeights = append(objWeights, c)
				}
			}
			constrs = append(constrs, gsat.GtEq(objLits, objWeights, atLeast))
		}
		gs := gsat.New(gsat.ParsePBConstrs(constrs))
		status, err := solveBounded(ctx, gs)
		if err != nil {
			return nil, false, err
		}
		if status != gsat.Sat {
			return nil, false, nil
		}
		// Model panics unless the last Solve returned Sat, checked above.
		return gs.Model(), true, nil
	}

	best, ok, err := feasible(0)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, blmatch.ErrInfeasible
	}

	// Largest satisfiable objective bound, by bisection over [0, total].
	// Same shape as a SAT-backed Minimize: one feasibility probe per step.
	lo, hi := 0, total
	for lo < hi {
		mid := lo + (hi-lo+1)/2
		model, ok, err := feasible(mid)
		if err != nil {
			return nil, err
		}
		if ok {
			lo = mid
			best = model
		} else {
			hi = mid - 1
		}
	}

	asg := &blmatch.Assignment{Chosen: make([]bool, n)}
	for i := 0; i < n && i < len(best); i++ {
		asg.Chosen[i] = best[i]
	}
	for i, c := range p.Objective {
		if asg.Chosen[i] {
			asg.Objective += c
		}
	}
	return asg, nil
}

// unitTerms builds the literal and unit-weight slices for one bound. The
// constraint constructors mutate their arguments (LtEq negates the
// literals in place), so every constructor call needs its own copies.
func unitTerms(varIdx []int) (lits, weights []int) {
	lits = make([]int, len(varIdx))
	weights = make([]int, len(varIdx))
	for i, idx := range varIdx {
		lits[i] = idx + 1
		weights[i] = 1
	}
	return lits, weights
}

// solveBounded runs one SAT call under the context deadline. The search
// goroutine is abandoned on timeout; it holds no shared state.
func solveBounded(ctx context.Context, gs *gsat.Solver) (gsat.Status, error) {
	if err := ctx.Err(); err != nil {
		return gsat.Indet, mapCtxErr(err)
	}
	done := make(chan gsat.Status, 1)
	go func() { done <- gs.Solve() }()
	select {
	case <-ctx.Done():
		return gsat.Indet, mapCtxErr(ctx.Err())
	case status := <-done:
		return status, nil
	}
}

func mapCtxErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return blmatch.ErrSolverTimeout
	}
	return err
}
