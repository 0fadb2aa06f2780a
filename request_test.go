// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blmatch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestRequestDecodeJSON(t *testing.T) {
	data := []byte(`{
		"variant": "smti",
		"bigs": {"A": {"max": 2, "weight": 0.5}, "B": {}},
		"littles": {"X": {}, "Y": {}},
		"big_prefs": {
			"A": ["X", "Y"],
			"B": {"X": 1, "Y": 1}
		},
		"little_prefs": {
			"X": {"A": 1, "B": 2},
			"Y": {"A": 1}
		},
		"preference_weight": 0.7
	}`)

	var req Request
	require.NoError(t, json.Unmarshal(data, &req))

	assert.Equal(t, VariantSMTI, req.Variant)
	require.NotNil(t, req.Bigs["A"].Max)
	assert.Equal(t, 2, *req.Bigs["A"].Max)
	require.NotNil(t, req.PreferenceWeight)
	assert.Equal(t, 0.7, *req.PreferenceWeight)

	assert.Equal(t, []string{"X", "Y"}, req.BigPrefs["A"].Order, "list form")
	assert.Equal(t, map[string]int{"X": 1, "Y": 1}, req.BigPrefs["B"].Ranks, "rank-map form")
}

func TestRequestDecodeYAML(t *testing.T) {
	data := []byte(`
variant: smt
bigs:
  A: {}
littles:
  X: {}
big_prefs:
  A:
    X: 1
little_prefs:
  X:
    - A
`)
	var req Request
	require.NoError(t, yaml.Unmarshal(data, &req))

	assert.Equal(t, VariantSMT, req.Variant)
	assert.Equal(t, map[string]int{"X": 1}, req.BigPrefs["A"].Ranks)
	assert.Equal(t, []string{"A"}, req.LittlePrefs["X"].Order)
}

func TestPrefInputJSONRoundTrip(t *testing.T) {
	for _, in := range []PrefInput{
		ListPref("X", "Y"),
		RankPref(map[string]int{"X": 1, "Y": 1}),
	} {
		data, err := json.Marshal(in)
		require.NoError(t, err)
		var out PrefInput
		require.NoError(t, json.Unmarshal(data, &out))
		assert.Equal(t, in, out)
	}
}

func TestPrefInputRejectsGarbage(t *testing.T) {
	var p PrefInput
	assert.Error(t, json.Unmarshal([]byte(`42`), &p))
	assert.Error(t, json.Unmarshal([]byte(`{"X": "first"}`), &p))
}
