// Package identify is a subcommand of the root command. It classifies amdgpu
// (family, revision) identifiers and reports the ASIC's capabilities.
package identify

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gpuspect/internal/common"
	"gpuspect/internal/report"
	"gpuspect/internal/table"
)

const cmdName = "asic"

var examples = []string{
	fmt.Sprintf("  Identify by family name:         $ %s %s --family NV --revision 0x28", common.AppName, cmdName),
	fmt.Sprintf("  Identify a range of revisions:   $ %s %s --family GC_11_0_1 --revision 0x01,0x80-0x81", common.AppName, cmdName),
	fmt.Sprintf("  Identify with an older compiler: $ %s %s --family 143 --revision 0x32 --llvm 11", common.AppName, cmdName),
	fmt.Sprintf("  Identify from a file:            $ %s %s --input identifiers.yaml --format yaml", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Aliases:       []string{"identify"},
	Short:         "Identify ASICs by amdgpu family and revision",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

func init() {
	common.AddIdentifierFlags(Cmd)
	common.AddLLVMFlag(Cmd)

	Cmd.SetUsageFunc(common.NewUsageFunc(getFlagGroups))
}

func getFlagGroups() []common.FlagGroup {
	return []common.FlagGroup{
		common.GetIdentifierFlagGroup(),
		{
			GroupName: "Other Options",
			Flags:     []common.Flag{common.GetLLVMFlag()},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if err := common.ValidateIdentifierFlags(cmd); err != nil {
		return common.FlagValidationError(cmd, err.Error())
	}
	return common.ValidateLLVMFlag(cmd)
}

func runCmd(cmd *cobra.Command, args []string) error {
	reportingCommand := common.ReportingCommand{
		Cmd:          cmd,
		TableNames:   report.ASICTables,
		SourceFunc:   getSource,
		InsightsFunc: report.InsightsTableValues,
	}
	return reportingCommand.Run()
}

func getSource(cmd *cobra.Command) (table.Source, error) {
	chips, err := common.GetChips(cmd)
	if err != nil {
		return table.Source{}, err
	}
	return table.Source{Chips: chips, LLVMMajor: common.FlagLLVMMajor}, nil
}
