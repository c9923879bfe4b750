package common

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpuspect/internal/asic"
	"gpuspect/internal/report"
	"gpuspect/internal/table"
)

func TestChipsFromIdentifiers(t *testing.T) {
	chips, err := ChipsFromIdentifiers([]Identifier{
		{Name: "workstation", Family: "NV", Revision: "0x28"},
		{Family: "AMDGPU_FAMILY_GC_11_0_0", Revision: "1"},
		{Name: "sweep", Family: "143", Revision: "0x32-0x33"},
		{Family: "NV", Revision: "0x1FF"},
	})
	require.NoError(t, err)
	require.Len(t, chips, 5)
	assert.Equal(t, "workstation", chips[0].Label)
	assert.Equal(t, asic.ChipNavi21, chips[0].Variant())
	assert.Equal(t, "GC_11_0_0/0x01", chips[1].Label)
	assert.Equal(t, asic.ChipGFX1100, chips[1].Variant())
	assert.Equal(t, "sweep:NV/0x32", chips[2].Label)
	assert.Equal(t, "sweep:NV/0x33", chips[3].Label)
	assert.Equal(t, asic.ChipNavi22, chips[3].Variant())
	assert.Equal(t, "NV/0x1FF", chips[4].Label)
	assert.Equal(t, asic.ChipUnknown, chips[4].Variant())
	assert.Equal(t, uint32(0x1FF), chips[4].Revision)
}

func TestChipsFromIdentifiersErrors(t *testing.T) {
	tests := []struct {
		name        string
		identifiers []Identifier
		errContains string
	}{
		{"bad family", []Identifier{{Family: "XX", Revision: "1"}}, "identifier 1: family not found: XX"},
		{"empty family", []Identifier{{Revision: "1"}}, "family cannot be empty"},
		{"bad revision", []Identifier{{Family: "NV", Revision: "x"}}, "invalid revision x"},
		{"empty revision", []Identifier{{Family: "NV"}}, "revision cannot be empty"},
		{"duplicate", []Identifier{{Name: "a", Family: "NV", Revision: "1"}, {Name: "a", Family: "AI", Revision: "1"}}, "duplicate identifier name found: a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ChipsFromIdentifiers(tt.identifiers)
			assert.ErrorContains(t, err, tt.errContains)
		})
	}
}

func TestParseRevisions(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        []uint32
		errContains string
	}{
		{name: "single", input: "0x28", want: []uint32{0x28}},
		{name: "list and range", input: " 0x28,0x32-0x33 ", want: []uint32{0x28, 0x32, 0x33}},
		{name: "duplicates dropped", input: "0x32-0x33,0x32", want: []uint32{0x32, 0x33}},
		{name: "wider than a byte", input: "0x1FF", want: []uint32{0x1FF}},
		{name: "empty", input: " ", errContains: "revision cannot be empty"},
		{name: "oversized range", input: "0-0x1FFFF", errContains: "holds more than 256 values"},
		{name: "whole uint32 space", input: "0-0xFFFFFFFF", errContains: "invalid revision 0-0xFFFFFFFF"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRevisions(tt.input)
			if tt.errContains != "" {
				assert.ErrorContains(t, err, tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadIdentifiersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "identifiers.yaml")
	content := `identifiers:
  - name: workstation
    family: NV
    revision: 0x28
  - name: laptop
    family: 148
    revision: 0x80
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	identifiers, err := ReadIdentifiersFile(path)
	require.NoError(t, err)
	require.Len(t, identifiers, 2)
	assert.Equal(t, Identifier{Name: "workstation", Family: "NV", Revision: "0x28"}, identifiers[0])
	chips, err := ChipsFromIdentifiers(identifiers)
	require.NoError(t, err)
	assert.Equal(t, asic.ChipNavi21, chips[0].Variant())
	assert.Equal(t, asic.ChipGFX1103_R2, chips[1].Variant())

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("identifiers: []\n"), 0644))
	_, err = ReadIdentifiersFile(empty)
	assert.ErrorContains(t, err, "no identifiers found")

	_, err = ReadIdentifiersFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read identifiers file")
}

func TestWriteReport(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, WriteReport(&stdout, []byte("report"), report.FormatTxt, ""))
	assert.Equal(t, "report", stdout.String())

	// a buffer is not a terminal
	stdout.Reset()
	require.NoError(t, WriteReport(&stdout, []byte("xlsx"), report.FormatXlsx, ""))
	assert.Equal(t, "xlsx", stdout.String())

	path := filepath.Join(t.TempDir(), "report.json")
	stdout.Reset()
	require.NoError(t, WriteReport(&stdout, []byte("{}"), report.FormatJson, path))
	assert.Empty(t, stdout.String())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	err = WriteReport(&stdout, []byte("{}"), report.FormatJson, filepath.Join(t.TempDir(), "missing", "report.json"))
	assert.ErrorContains(t, err, "failed to write report file")
}

func TestReportingCommandRun(t *testing.T) {
	FlagFormat = report.FormatJson
	FlagOutput = ""
	defer func() { FlagFormat = "" }()
	var stdout bytes.Buffer
	root := &cobra.Command{Use: "gpuspect"}
	root.SetContext(context.WithValue(context.Background(), AppContext{}, AppContext{Version: "1.2.3", Timestamp: "2025-01-02_03-04-05", LogFilePath: "gpuspect.log"}))
	cmd := &cobra.Command{Use: "asic"}
	root.AddCommand(cmd)
	cmd.SetOut(&stdout)
	rc := ReportingCommand{
		Cmd:        cmd,
		TableNames: report.ASICTables,
		SourceFunc: func(cmd *cobra.Command) (table.Source, error) {
			chips, err := ChipsFromIdentifiers([]Identifier{{Name: "bogus", Family: "NV", Revision: "0xF0"}})
			return table.Source{Chips: chips, LLVMMajor: asic.DefaultLLVMMajor}, err
		},
		InsightsFunc: report.InsightsTableValues,
	}
	require.NoError(t, rc.Run())
	out := stdout.String()
	assert.Contains(t, out, `"ASIC Identification"`)
	assert.Contains(t, out, `"Insights"`)
	assert.Contains(t, out, `"Version": "1.2.3"`)
	assert.Contains(t, out, `"Started": "2025-01-02_03-04-05"`)
	assert.Contains(t, out, `"Log File": "gpuspect.log"`)
	assert.Equal(t, "1.2.3", GetAppContext(cmd).Version)
}

func TestApplicationTableValues(t *testing.T) {
	tv := applicationTableValues(AppContext{Version: "1.2.3", Timestamp: "2025-01-02_03-04-05"})
	assert.Equal(t, TableNameGpuspect, tv.Name)
	names := []string{}
	for _, field := range tv.Fields {
		names = append(names, field.Name)
		assert.Len(t, field.Values, 1)
	}
	// no log file when logging to stdout or syslog
	assert.Equal(t, []string{"Version", "Args", "Started"}, names)

	tv = applicationTableValues(AppContext{Version: "1.2.3", LogFilePath: "gpuspect.log"})
	assert.Equal(t, "Log File", tv.Fields[len(tv.Fields)-1].Name)
	assert.Equal(t, []string{"gpuspect.log"}, tv.Fields[len(tv.Fields)-1].Values)
}

func TestGetAppContextMissing(t *testing.T) {
	assert.Equal(t, AppContext{}, GetAppContext(&cobra.Command{Use: "orphan"}))
}
