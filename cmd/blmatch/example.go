// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/greeklink/blmatch"
)

func doExample(variant, outFile string) error {
	req, err := exampleRequest(blmatch.Variant(variant))
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(req, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	if outFile == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(outFile, data, 0644)
}

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func plain() blmatch.AgentSpec { return blmatch.AgentSpec{} }

func capped(max int) blmatch.AgentSpec { return blmatch.AgentSpec{Max: intPtr(max)} }

// exampleRequest returns the sample dataset for a variant.
func exampleRequest(v blmatch.Variant) (*blmatch.Request, error) {
	switch v {
	case blmatch.VariantSMP:
		return &blmatch.Request{
			Variant: v,
			Bigs:    map[string]blmatch.AgentSpec{"Ishaan": plain(), "Cindy": plain(), "Thomas": plain()},
			Littles: map[string]blmatch.AgentSpec{"Swapneel": plain(), "Zora": plain(), "Kevin": plain()},
			BigPrefs: map[string]blmatch.PrefInput{
				"Ishaan": blmatch.ListPref("Swapneel", "Zora", "Kevin"),
				"Cindy":  blmatch.ListPref("Kevin", "Swapneel", "Zora"),
				"Thomas": blmatch.ListPref("Zora", "Kevin", "Swapneel"),
			},
			LittlePrefs: map[string]blmatch.PrefInput{
				"Swapneel": blmatch.ListPref("Thomas", "Ishaan", "Cindy"),
				"Zora":     blmatch.ListPref("Cindy", "Thomas", "Ishaan"),
				"Kevin":    blmatch.ListPref("Ishaan", "Cindy", "Thomas"),
			},
		}, nil

	case blmatch.VariantSMT:
		return &blmatch.Request{
			Variant: v,
			Bigs:    map[string]blmatch.AgentSpec{"Ishaan": plain(), "Cindy": plain(), "Thomas": plain()},
			Littles: map[string]blmatch.AgentSpec{"Swapneel": plain(), "Zora": plain(), "Kevin": plain()},
			BigPrefs: map[string]blmatch.PrefInput{
				"Ishaan": blmatch.RankPref(map[string]int{"Swapneel": 1, "Kevin": 2, "Zora": 1}),
				"Cindy":  blmatch.RankPref(map[string]int{"Swapneel": 3, "Kevin": 1, "Zora": 2}),
				"Thomas": blmatch.RankPref(map[string]int{"Swapneel": 1, "Kevin": 2, "Zora": 3}),
			},
			LittlePrefs: map[string]blmatch.PrefInput{
				"Swapneel": blmatch.RankPref(map[string]int{"Ishaan": 2, "Cindy": 3, "Thomas": 1}),
				"Zora":     blmatch.RankPref(map[string]int{"Ishaan": 3, "Cindy": 1, "Thomas": 2}),
				"Kevin":    blmatch.RankPref(map[string]int{"Ishaan": 1, "Cindy": 1, "Thomas": 2}),
			},
		}, nil

	case blmatch.VariantSMTI:
		return &blmatch.Request{
			Variant: v,
			Bigs:    map[string]blmatch.AgentSpec{"Ishaan": plain(), "Cindy": plain(), "Thomas": plain()},
			Littles: map[string]blmatch.AgentSpec{"Swapneel": plain(), "Zora": plain(), "Kevin": plain()},
			BigPrefs: map[string]blmatch.PrefInput{
				"Ishaan": blmatch.RankPref(map[string]int{"Swapneel": 1, "Zora": 1}),
				"Cindy":  blmatch.RankPref(map[string]int{"Swapneel": 3, "Kevin": 1, "Zora": 2}),
				"Thomas": blmatch.RankPref(map[string]int{"Swapneel": 1, "Kevin": 2}),
			},
			LittlePrefs: map[string]blmatch.PrefInput{
				"Swapneel": blmatch.RankPref(map[string]int{"Ishaan": 2, "Thomas": 1}),
				"Zora":     blmatch.RankPref(map[string]int{"Ishaan": 3, "Cindy": 1, "Thomas": 2}),
				"Kevin":    blmatch.RankPref(map[string]int{"Ishaan": 1, "Cindy": 1}),
			},
		}, nil

	case blmatch.VariantOptimized:
		return &blmatch.Request{
			Variant:          v,
			PreferenceWeight: floatPtr(0.5),
			Bigs: map[string]blmatch.AgentSpec{
				"Ishaan": capped(1), "Cindy": capped(2), "Thomas": capped(1),
			},
			Littles: map[string]blmatch.AgentSpec{
				"Swapneel": capped(1), "Zora": capped(1), "Kevin": capped(1), "Morgan": capped(1),
			},
			BigPrefs: map[string]blmatch.PrefInput{
				"Ishaan": blmatch.ListPref("Swapneel", "Zora", "Kevin", "Morgan"),
				"Cindy":  blmatch.ListPref("Zora", "Swapneel", "Morgan", "Kevin"),
				"Thomas": blmatch.ListPref("Kevin", "Morgan", "Swapneel", "Zora"),
			},
			LittlePrefs: map[string]blmatch.PrefInput{
				"Swapneel": blmatch.ListPref("Ishaan", "Cindy", "Thomas"),
				"Zora":     blmatch.ListPref("Cindy", "Ishaan", "Thomas"),
				"Kevin":    blmatch.ListPref("Thomas", "Ishaan", "Cindy"),
				"Morgan":   blmatch.ListPref("Thomas", "Cindy", "Ishaan"),
			},
		}, nil
	}
	return nil, fmt.Errorf("unknown variant %q", v)
}
