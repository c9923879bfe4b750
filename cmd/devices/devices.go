// Package devices is a subcommand of the root command. It enumerates the local
// amdgpu devices, classifies them and reports their capabilities.
package devices

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gpuspect/internal/common"
	"gpuspect/internal/device"
	"gpuspect/internal/report"
	"gpuspect/internal/table"
)

const cmdName = "device"

var examples = []string{
	fmt.Sprintf("  Report the local GPUs:            $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  Report to a spreadsheet:          $ %s %s --format xlsx --output gpus.xlsx", common.AppName, cmdName),
	fmt.Sprintf("  Report from a copied sysfs tree:  $ %s %s --sysfs /tmp/sys", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Aliases:       []string{"devices"},
	Short:         "Classify the amdgpu devices on this system",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

func init() {
	common.AddSysfsFlag(Cmd)
	common.AddLLVMFlag(Cmd)

	Cmd.SetUsageFunc(common.NewUsageFunc(getFlagGroups))
}

func getFlagGroups() []common.FlagGroup {
	return []common.FlagGroup{
		{
			GroupName: "Device Options",
			Flags:     []common.Flag{common.GetSysfsFlag()},
		},
		{
			GroupName: "Other Options",
			Flags:     []common.Flag{common.GetLLVMFlag()},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if err := common.ValidateSysfsFlag(cmd); err != nil {
		return err
	}
	return common.ValidateLLVMFlag(cmd)
}

func runCmd(cmd *cobra.Command, args []string) error {
	reportingCommand := common.ReportingCommand{
		Cmd:          cmd,
		TableNames:   report.DeviceTables,
		SourceFunc:   getSource,
		InsightsFunc: report.InsightsTableValues,
	}
	return reportingCommand.Run()
}

func getSource(cmd *cobra.Command) (table.Source, error) {
	gpus, err := device.NewProberFrom(common.FlagSysfs, device.NewQuerier()).Probe()
	if err != nil {
		return table.Source{}, err
	}
	return table.Source{Chips: chipsFromGPUs(gpus), LLVMMajor: common.FlagLLVMMajor}, nil
}

func chipsFromGPUs(gpus []device.GPU) []table.Chip {
	chips := make([]table.Chip, 0, len(gpus))
	for i := range gpus {
		chips = append(chips, table.Chip{
			Label:    gpus[i].Card,
			Match:    gpus[i].Match,
			Revision: gpus[i].Info.ExternalRevision,
			GPU:      &gpus[i],
		})
	}
	return chips
}
