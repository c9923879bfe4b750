// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpuspect/internal/asic"
)

func testSource() Source {
	return Source{
		Chips: []Chip{
			{Label: "a", Match: asic.ClassifyMatch(asic.FamilyNV, 0x28), Revision: 0x28},
			{Label: "b", Match: asic.ClassifyMatch(asic.FamilySI, 0x01), Revision: 0x01},
		},
		LLVMMajor: asic.DefaultLLVMMajor,
	}
}

func TestGetValuesForTable(t *testing.T) {
	def := TableDefinition{
		Name:    "Names",
		HasRows: true,
		FieldsFunc: func(source Source) []Field {
			fields := []Field{{Name: "Label"}, {Name: "ASIC"}}
			for _, chip := range source.Chips {
				fields[0].Values = append(fields[0].Values, chip.Label)
				fields[1].Values = append(fields[1].Values, chip.Variant().Name())
			}
			return fields
		},
		InsightsFunc: func(source Source, tv TableValues) []Insight {
			var insights []Insight
			for _, chip := range source.Chips {
				if !chip.Match.OK() {
					insights = append(insights, Insight{Recommendation: chip.Label})
				}
			}
			return insights
		},
	}
	tv := GetValuesForTable(def, testSource())
	require.Len(t, tv.Fields, 2)
	assert.Equal(t, []string{"a", "b"}, tv.Fields[0].Values)
	assert.Equal(t, []string{"NAVI21", "UNKNOWN"}, tv.Fields[1].Values)
	require.Len(t, tv.Insights, 1)
	assert.Equal(t, "b", tv.Insights[0].Recommendation)

	idx, err := GetFieldIndex("ASIC", tv)
	require.NoError(t, err)
	assert.Equal(t, 1, idx)
	_, err = GetFieldIndex("Missing", tv)
	assert.EqualError(t, err, "field [Missing] not found in table [Names]")
}

func TestGetValuesForTableInvalid(t *testing.T) {
	def := TableDefinition{
		Name: "Uneven",
		FieldsFunc: func(Source) []Field {
			return []Field{{Name: "A", Values: []string{"1", "2"}}, {Name: "B", Values: []string{"1"}}}
		},
	}
	tv := GetValuesForTable(def, Source{})
	assert.Empty(t, tv.Fields)
	assert.Panics(t, func() { GetValuesForTable(TableDefinition{Name: "nil"}, Source{}) })
}

func TestProcessTables(t *testing.T) {
	defs := []TableDefinition{
		{Name: "One", FieldsFunc: func(Source) []Field { return []Field{{Name: "X", Values: []string{"1"}}} }},
		{Name: "Two", FieldsFunc: func(Source) []Field { return nil }},
	}
	all := ProcessTables(defs, Source{})
	require.Len(t, all, 2)
	assert.Equal(t, "One", all[0].Name)
	assert.Empty(t, all[1].Fields)
}
