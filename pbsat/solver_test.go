// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pbsat_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greeklink/blmatch"
	"github.com/greeklink/blmatch/pbsat"
)

func problem(t *testing.T, req *blmatch.Request) *blmatch.Problem {
	t.Helper()
	inst, err := blmatch.Normalize(req)
	require.NoError(t, err)
	w := blmatch.DefaultPreferenceWeight
	if req.PreferenceWeight != nil {
		w = *req.PreferenceWeight
	}
	return blmatch.Formulate(inst, w, req.ExactlyOne)
}

func twoByTwo() *blmatch.Request {
	return &blmatch.Request{
		Variant: blmatch.VariantOptimized,
		Bigs:    map[string]blmatch.AgentSpec{"b1": {}, "b2": {}},
		Littles: map[string]blmatch.AgentSpec{"l1": {}, "l2": {}},
		BigPrefs: map[string]blmatch.PrefInput{
			"b1": blmatch.ListPref("l1", "l2"),
			"b2": blmatch.ListPref("l1", "l2"),
		},
		LittlePrefs: map[string]blmatch.PrefInput{
			"l1": blmatch.ListPref("b1", "b2"),
			"l2": blmatch.ListPref("b2", "b1"),
		},
	}
}

func TestSolveFindsOptimum(t *testing.T) {
	p := problem(t, twoByTwo())
	// Coefficients are 2000, 1000, 1500, 1500 for (b1,l1), (b1,l2),
	// (b2,l1), (b2,l2); the unique optimum picks the diagonal.
	asg, err := pbsat.New().Solve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, []bool{true, false, false, true}, asg.Chosen)
	assert.Equal(t, 3500, asg.Objective)
}

func TestSolveIsDeterministic(t *testing.T) {
	p := problem(t, twoByTwo())
	s := pbsat.New()

	first, err := s.Solve(context.Background(), p)
	require.NoError(t, err)
	second, err := s.Solve(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestSolveInfeasibleZeroCapacity(t *testing.T) {
	zero := 0
	req := twoByTwo()
	req.Littles["l1"] = blmatch.AgentSpec{Max: &zero}
	req.Littles["l2"] = blmatch.AgentSpec{Max: &zero}

	_, err := pbsat.New().Solve(context.Background(), problem(t, req))
	require.ErrorIs(t, err, blmatch.ErrInfeasible)
}

func TestSolveInfeasibleSingleZeroCapacity(t *testing.T) {
	// Only l1 is closed. Its bound emits both an at-least-one and an
	// at-most-zero constraint, and the lower bound must survive the upper
	// bound's encoding: the problem is infeasible, not an empty success.
	zero := 0
	req := twoByTwo()
	req.Littles["l1"] = blmatch.AgentSpec{Max: &zero}

	_, err := pbsat.New().Solve(context.Background(), problem(t, req))
	require.ErrorIs(t, err, blmatch.ErrInfeasible)
}

func TestSolveInfeasibleNoCandidates(t *testing.T) {
	// b2 is acceptable to nobody, but must still be matched at least once.
	req := twoByTwo()
	req.LittlePrefs["l1"] = blmatch.ListPref("b1")
	req.LittlePrefs["l2"] = blmatch.ListPref("b1")

	_, err := pbsat.New().Solve(context.Background(), problem(t, req))
	require.ErrorIs(t, err, blmatch.ErrInfeasible)
}

func TestSolveTimeout(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := pbsat.New().Solve(ctx, problem(t, twoByTwo()))
	require.ErrorIs(t, err, blmatch.ErrSolverTimeout)
}

func TestSolveRespectsCapacities(t *testing.T) {
	two := 2
	req := &blmatch.Request{
		Variant: blmatch.VariantOptimized,
		Bigs:    map[string]blmatch.AgentSpec{"b1": {Max: &two}},
		Littles: map[string]blmatch.AgentSpec{"l1": {}, "l2": {}, "l3": {}},
		BigPrefs: map[string]blmatch.PrefInput{
			"b1": blmatch.ListPref("l1", "l2", "l3"),
		},
		LittlePrefs: map[string]blmatch.PrefInput{
			"l1": blmatch.ListPref("b1"),
			"l2": blmatch.ListPref("b1"),
			"l3": blmatch.ListPref("b1"),
		},
	}
	// Three littles each demand a partner but b1 can hold only two: the
	// littles' lower bounds make this infeasible rather than partially
	// matched.
	_, err := pbsat.New().Solve(context.Background(), problem(t, req))
	require.ErrorIs(t, err, blmatch.ErrInfeasible)
}
