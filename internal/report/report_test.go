// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v2"

	"gpuspect/internal/asic"
	"gpuspect/internal/device"
	"gpuspect/internal/table"
)

func chip(label string, family asic.Family, rev uint32) table.Chip {
	return table.Chip{Label: label, Match: asic.ClassifyID(uint32(family), rev), Revision: rev}
}

func asicSource() table.Source {
	return table.Source{
		Chips:     []table.Chip{chip("navi21", asic.FamilyNV, 0x28)},
		LLVMMajor: asic.DefaultLLVMMajor,
	}
}

func TestCreateInvalidFormat(t *testing.T) {
	_, err := Create("pdf", nil)
	assert.EqualError(t, err, "expected one of txt, json, yaml, xlsx, html, got pdf")
	assert.False(t, IsValidFormat("pdf"))
	for _, format := range FormatOptions {
		assert.True(t, IsValidFormat(format))
	}
}

func TestCreateMismatchedFields(t *testing.T) {
	tv := table.TableValues{
		TableDefinition: table.TableDefinition{Name: "Broken"},
		Fields: []table.Field{
			{Name: "A", Values: []string{"1", "2"}},
			{Name: "B", Values: []string{"1"}},
		},
	}
	_, err := Create(FormatTxt, []table.TableValues{tv})
	assert.Error(t, err)
}

func TestCreateText(t *testing.T) {
	all := ProcessTables(ASICTables, asicSource())
	require.Len(t, all, len(ASICTables))
	out, err := Create(FormatTxt, all)
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, "ASIC Identification\n===================\n")
	assert.Contains(t, text, "Sienna Cichlid")
	assert.Contains(t, text, "NAVI21")
	assert.Contains(t, text, "GFX10_3")
	assert.Contains(t, text, "gfx1030")
	assert.Contains(t, text, "128 KiB")
}

func TestCreateTextNoData(t *testing.T) {
	all := ProcessTables(DeviceTables, table.Source{LLVMMajor: asic.DefaultLLVMMajor})
	out, err := Create(FormatTxt, all)
	require.NoError(t, err)
	assert.Contains(t, string(out), "No amdgpu devices found.")
	assert.Contains(t, string(out), NoDataFound)
}

func TestCreateJson(t *testing.T) {
	all := ProcessTables(ASICTables, asicSource())
	out, err := Create(FormatJson, all)
	require.NoError(t, err)
	var decoded map[string][]map[string]string
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded[IdentificationTableName], 1)
	row := decoded[IdentificationTableName][0]
	assert.Equal(t, "NV", row["Family"])
	assert.Equal(t, "143", row["Family ID"])
	assert.Equal(t, "0x28", row["Revision"])
	assert.Equal(t, "NAVI21", row["Name"])
	assert.Equal(t, "gfx1030", decoded[CompilerTableName][0]["GFX Target"])
}

func TestCreateHtml(t *testing.T) {
	source := asicSource()
	source.Chips = append(source.Chips, chip("<b>bad</b>", asic.FamilyNV, 0xF0))
	all := ProcessTables(ASICTables, source)
	all = append(all, ProcessTables([]string{DeviceTableName}, table.Source{})...)
	out, err := Create(FormatHtml, all)
	require.NoError(t, err)
	html := string(out)
	assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"))
	assert.Contains(t, html, `<a href="#asic-identification">ASIC Identification</a>`)
	assert.Contains(t, html, `<h2 id="compiler-targets">Compiler Targets</h2>`)
	assert.Contains(t, html, "<td>Sienna Cichlid/Navi21</td>")
	assert.Contains(t, html, "&lt;b&gt;bad&lt;/b&gt;")
	assert.NotContains(t, html, "<b>bad</b>")
	assert.Contains(t, html, "<p>No amdgpu devices found.</p>")
}

func TestCreateYaml(t *testing.T) {
	all := ProcessTables(ASICTables, asicSource())
	out, err := Create(FormatYaml, all)
	require.NoError(t, err)
	var decoded yaml.MapSlice
	require.NoError(t, yaml.Unmarshal(out, &decoded))
	require.Len(t, decoded, len(ASICTables))
	// report order is preserved
	for i, name := range ASICTables {
		assert.Equal(t, name, decoded[i].Key)
	}
	assert.True(t, strings.Index(string(out), "Label:") < strings.Index(string(out), "Family:"))
}

func TestCreateXlsx(t *testing.T) {
	source := asicSource()
	source.Chips = append(source.Chips, chip("bogus", asic.FamilyNV, 0xF0))
	all := ProcessTables(ASICTables, source)
	all = append(all, InsightsTableValues(all))
	out, err := Create(FormatXlsx, all)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	name, err := f.GetCellValue(XlsxPrimarySheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, IdentificationTableName, name)
	header, err := f.GetCellValue(XlsxPrimarySheetName, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Label", header)
	label, err := f.GetCellValue(XlsxPrimarySheetName, "B3")
	require.NoError(t, err)
	assert.Equal(t, "navi21", label)
	idx, err := f.GetSheetIndex(XlsxInsightsSheetName)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, idx, 0)
	insightsName, err := f.GetCellValue(XlsxInsightsSheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, InsightsTableName, insightsName)
}

func TestGetValueForCell(t *testing.T) {
	assert.Equal(t, 42, getValueForCell("42"))
	assert.Equal(t, 1.5, getValueForCell("1.5"))
	assert.Equal(t, "0x28", getValueForCell("0x28"))
	assert.Equal(t, "gfx1030", getValueForCell("gfx1030"))
}

func TestInsights(t *testing.T) {
	tests := []struct {
		name     string
		source   table.Source
		tables   []string
		expected []string // substrings of the recommendations, in order
	}{
		{
			name:     "known chip, current llvm",
			source:   asicSource(),
			tables:   ASICTables,
			expected: nil,
		},
		{
			name: "unknown revision",
			source: table.Source{
				Chips:     []table.Chip{chip("bogus", asic.FamilyNV, 0xF0)},
				LLVMMajor: asic.DefaultLLVMMajor,
			},
			tables:   ASICTables,
			expected: []string{"Verify the family and revision of bogus"},
		},
		{
			name: "old llvm",
			source: table.Source{
				Chips:     []table.Chip{chip("navi22", asic.FamilyNV, 0x32)},
				LLVMMajor: 11,
			},
			tables:   ASICTables,
			expected: []string{"Consider a newer LLVM release to target gfx1031 natively for navi22."},
		},
		{
			name: "no compute target",
			source: table.Source{
				Chips:     []table.Chip{{Label: "r300", Match: asic.Match{Variant: asic.ChipR300, Row: -1}}},
				LLVMMajor: asic.DefaultLLVMMajor,
			},
			tables:   CatalogTables,
			expected: []string{"Use a graphics driver stack to program r300."},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insights := InsightsTableValues(ProcessTables(tt.tables, tt.source))
			require.Len(t, insights.Fields, 2)
			require.Len(t, insights.Fields[0].Values, len(tt.expected))
			for i, expected := range tt.expected {
				assert.Contains(t, insights.Fields[0].Values[i], expected)
				assert.NotEmpty(t, insights.Fields[1].Values[i])
			}
		})
	}
}

func TestDeviceTable(t *testing.T) {
	info := device.DeviceInfo{
		Family:           uint32(asic.FamilyNV),
		ExternalRevision: 0x28,
		NumShaderEngines: 4,
		CUActiveNumber:   80,
		VRAMBitWidth:     256,
		NumTCCBlocks:     16,
	}
	ok := device.GPU{Card: "card1", PCIID: "1002:73bf", RenderNode: "/dev/dri/renderD128", Info: info, Match: asic.ClassifyID(info.Family, info.ExternalRevision)}
	failed := device.GPU{Card: "card2", Match: asic.Match{Variant: asic.ChipUnknown, Row: -1}, Err: errors.New("permission denied")}
	source := table.Source{
		Chips: []table.Chip{
			{Label: ok.Card, Match: ok.Match, Revision: info.ExternalRevision, GPU: &ok},
			{Label: failed.Card, Match: failed.Match, GPU: &failed},
		},
		LLVMMajor: asic.DefaultLLVMMajor,
	}
	tv := table.GetValuesForTable(GetTableByName(DeviceTableName), source)
	status, err := table.GetFieldIndex("Status", tv)
	require.NoError(t, err)
	assert.Equal(t, []string{"OK", "permission denied"}, tv.Fields[status].Values)
	l2, err := table.GetFieldIndex("L2 Total", tv)
	require.NoError(t, err)
	assert.Equal(t, "4 MiB", tv.Fields[l2].Values[0])
	l3, err := table.GetFieldIndex("L3 Total", tv)
	require.NoError(t, err)
	assert.Equal(t, "128 MiB", tv.Fields[l3].Values[0])
	require.Len(t, tv.Insights, 1)
	assert.Contains(t, tv.Insights[0].Recommendation, "card2")
}

func TestRevisionTable(t *testing.T) {
	source := table.Source{Families: []asic.Family{asic.FamilyKV, asic.FamilyCZ}}
	tv := table.GetValuesForTable(GetTableByName(RevisionTableName), source)
	shadowIdx, err := table.GetFieldIndex("Shadowed By", tv)
	require.NoError(t, err)
	revIdx, err := table.GetFieldIndex("Revisions", tv)
	require.NoError(t, err)
	// KV has 8 rows, CZ has 3
	require.Len(t, tv.Fields[shadowIdx].Values, 11)
	assert.Equal(t, []string{"", "", "", "2", "", "4", "", "", "", "0", ""}, tv.Fields[shadowIdx].Values)
	assert.Equal(t, "0x01-0x40", tv.Fields[revIdx].Values[0])
	assert.Equal(t, "0xA1-0xFE", tv.Fields[revIdx].Values[7])

	text := revisionTableTextRenderer(tv)
	assert.True(t, strings.HasPrefix(text, RevisionTableName))
	assert.Contains(t, text, "KV (125)")
	assert.Contains(t, text, "CZ (135)")
	assert.Contains(t, text, "[3] 0x61-0x70 LIVERPOOL (Liverpool) shadowed by [2]")
	assert.Contains(t, text, "[1] 0x10-0x20 CARRIZO (Bristol) shadowed by [0]")
}

func TestRevisionTableRenderers(t *testing.T) {
	source := table.Source{Families: []asic.Family{asic.FamilyKV}}
	all := ProcessTables(FamilyTables, source)

	out, err := Create(FormatTxt, all)
	require.NoError(t, err)
	assert.Contains(t, string(out), "[3] 0x61-0x70 LIVERPOOL (Liverpool) shadowed by [2]")

	out, err = Create(FormatHtml, all)
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, "<pre>"+RevisionTableName)
	assert.Contains(t, html, "KV (125)")
	assert.Contains(t, html, "<th>Shadowed By</th>")

	// a table missing a tree field falls back to the default renderers
	broken := table.TableValues{
		TableDefinition: table.TableDefinition{Name: RevisionTableName, HasRows: true},
		Fields:          []table.Field{{Name: "Family", Values: []string{"KV"}}},
	}
	assert.NotContains(t, revisionTableHTMLRenderer(broken), "<pre>")
	assert.Contains(t, revisionTableHTMLRenderer(broken), "<td>KV</td>")
	assert.Equal(t, DefaultTextTableRendererFunc(broken), revisionTableTextRenderer(broken))
}

func TestGetTableByNamePanics(t *testing.T) {
	assert.Panics(t, func() { GetTableByName("Nope") })
}
