package identify

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gpuspect/internal/asic"
	"gpuspect/internal/common"
	"gpuspect/internal/report"
)

func TestRunCmd(t *testing.T) {
	require.NoError(t, Cmd.Flags().Set("family", "NV"))
	require.NoError(t, Cmd.Flags().Set("revision", "0x28,0x32"))
	common.FlagFormat = report.FormatJson
	common.FlagOutput = ""
	common.FlagLLVMMajor = 11
	defer func() {
		common.FlagFormat = ""
		common.FlagLLVMMajor = asic.DefaultLLVMMajor
	}()
	var stdout bytes.Buffer
	Cmd.SetOut(&stdout)
	defer Cmd.SetOut(nil)
	require.NoError(t, runCmd(Cmd, nil))
	out := stdout.String()
	assert.Contains(t, out, `"NV/0x28"`)
	assert.Contains(t, out, `"Sienna Cichlid/Navi21"`)
	assert.Contains(t, out, `"Navy Flounder/Navi22"`)
	// navi22 has no native processor name before LLVM 12
	assert.Contains(t, out, "Consider a newer LLVM release to target")
}
