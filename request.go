// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blmatch

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// AgentSpec is the wire form of an agent annotation. Max defaults to 1 and
// Weight to 1.0; both are consumed only by the optimized variant.
type AgentSpec struct {
	Max    *int     `json:"max,omitempty" yaml:"max,omitempty"`
	Weight *float64 `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// PrefInput is one agent's raw preference data. It decodes from either an
// ordered id sequence (strict form) or a counterpart-id → rank mapping
// (tie-capable form); exactly one of Order and Ranks is set after decoding.
type PrefInput struct {
	Order []string
	Ranks map[string]int
}

// ListPref builds the strict ordered form, most preferred first.
func ListPref(ids ...string) PrefInput { return PrefInput{Order: ids} }

// RankPref builds the rank-map form.
func RankPref(ranks map[string]int) PrefInput { return PrefInput{Ranks: ranks} }

func (p *PrefInput) UnmarshalJSON(data []byte) error {
	var order []string
	if err := json.Unmarshal(data, &order); err == nil {
		*p = PrefInput{Order: order}
		return nil
	}
	var ranks map[string]int
	if err := json.Unmarshal(data, &ranks); err != nil {
		return fmt.Errorf("preference must be an id list or an id→rank map: %w", err)
	}
	*p = PrefInput{Ranks: ranks}
	return nil
}

func (p PrefInput) MarshalJSON() ([]byte, error) {
	if p.Order != nil {
		return json.Marshal(p.Order)
	}
	return json.Marshal(p.Ranks)
}

func (p *PrefInput) UnmarshalYAML(value *yaml.Node) error {
	var order []string
	if err := value.Decode(&order); err == nil {
		*p = PrefInput{Order: order}
		return nil
	}
	var ranks map[string]int
	if err := value.Decode(&ranks); err != nil {
		return fmt.Errorf("preference must be an id list or an id→rank map: %w", err)
	}
	*p = PrefInput{Ranks: ranks}
	return nil
}

func (p PrefInput) MarshalYAML() (interface{}, error) {
	if p.Order != nil {
		return p.Order, nil
	}
	return p.Ranks, nil
}

// Request is one solve request as it arrives from the presentation layer,
// decodable from JSON or YAML.
type Request struct {
	Bigs    map[string]AgentSpec `json:"bigs" yaml:"bigs"`
	Littles map[string]AgentSpec `json:"littles" yaml:"littles"`

	BigPrefs    map[string]PrefInput `json:"big_prefs" yaml:"big_prefs"`
	LittlePrefs map[string]PrefInput `json:"little_prefs" yaml:"little_prefs"`

	Variant Variant `json:"variant" yaml:"variant"`

	// PreferenceWeight trades big-side utility against little-side utility
	// in the optimized objective; it must lie in [0,1] and defaults to 0.5.
	PreferenceWeight *float64 `json:"preference_weight,omitempty" yaml:"preference_weight,omitempty"`

	// ExactlyOne forces every agent to exactly one partner in the
	// optimized variant, regardless of declared capacities.
	ExactlyOne bool `json:"exactly_one,omitempty" yaml:"exactly_one,omitempty"`
}
