// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/greeklink/blmatch"
	"github.com/greeklink/blmatch/pbsat"
)

func doSolve(ctx context.Context, inFile, outFile, variant string,
	weight float64, weightSet, exactlyOne bool,
	budget time.Duration, quiet bool) error {

	req, err := loadRequest(inFile)
	if err != nil {
		return fmt.Errorf("load request file failed: %w", err)
	}

	if variant != "" {
		req.Variant = blmatch.Variant(variant)
	}
	if weightSet {
		req.PreferenceWeight = &weight
	}
	if exactlyOne {
		req.ExactlyOne = true
	}

	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	res, err := blmatch.Solve(ctx, req, blmatch.WithSolver(pbsat.New()))
	if err != nil {
		return err
	}

	if !quiet {
		render(res)
	}

	if outFile != "" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(outFile, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write result file failed: %w", err)
		}
	}
	return nil
}

func loadRequest(file string) (*blmatch.Request, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	var req blmatch.Request
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &req)
	default:
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func render(res *blmatch.Result) {
	switch res.Status {
	case blmatch.StatusInfeasible:
		color.Red("no feasible assignment under the given capacities")
		return
	case blmatch.StatusTimeout:
		color.Red("solver exceeded its time budget")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Big", "Little"})
	for _, p := range res.Matching {
		t.AppendRow(table.Row{p.Big, p.Little})
	}
	t.Render()

	st := table.NewWriter()
	st.SetOutputMirror(os.Stdout)
	st.SetStyle(table.StyleLight)
	st.AppendHeader(table.Row{"Side", "Matched", "Unmatched", "Avg Rank"})
	st.AppendRow(table.Row{"bigs", res.Stats.Bigs.Matched, res.Stats.Bigs.Unmatched,
		fmt.Sprintf("%.2f", res.Stats.Bigs.AvgRank)})
	st.AppendRow(table.Row{"littles", res.Stats.Littles.Matched, res.Stats.Littles.Unmatched,
		fmt.Sprintf("%.2f", res.Stats.Littles.AvgRank)})
	st.Render()

	if res.Objective != nil {
		fmt.Printf("total preference score: %.2f\n", *res.Objective)
	}
	fmt.Printf("solved in %.1fms\n", res.ElapsedMS)

	if len(res.Instabilities) == 0 {
		color.Green("no blocking pairs - the matching is stable")
	} else {
		color.Yellow("found %d blocking pairs:", len(res.Instabilities))
		for _, p := range res.Instabilities {
			fmt.Printf("  (%s, %s)\n", p.Big, p.Little)
		}
	}
}
