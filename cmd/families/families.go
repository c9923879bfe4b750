// Package families is a subcommand of the root command. It reports the
// revision ranges used to classify each amdgpu family.
package families

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"gpuspect/internal/asic"
	"gpuspect/internal/common"
	"gpuspect/internal/report"
	"gpuspect/internal/table"
)

const cmdName = "families"

var examples = []string{
	fmt.Sprintf("  Show all revision tables:      $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  Show two families as a tree:   $ %s %s --family KV,CZ", common.AppName, cmdName),
	fmt.Sprintf("  Export the tables as JSON:     $ %s %s --format json", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Aliases:       []string{"family"},
	Short:         "Show the revision ranges of amdgpu families",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var flagFamilies []string

const flagFamiliesName = "family"

func init() {
	Cmd.Flags().StringSliceVar(&flagFamilies, flagFamiliesName, []string{}, "")

	Cmd.SetUsageFunc(common.NewUsageFunc(getFlagGroups))
}

func getFlagGroups() []common.FlagGroup {
	familyNames := []string{}
	for _, family := range asic.AllFamilies() {
		familyNames = append(familyNames, family.Name())
	}
	return []common.FlagGroup{
		{
			GroupName: "Selection Options",
			Flags: []common.Flag{
				{Name: flagFamiliesName, Help: fmt.Sprintf("include only the family(ies), default is all: %s", strings.Join(familyNames, ", "))},
			},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if _, err := parseFamilies(flagFamilies); err != nil {
		return common.FlagValidationError(cmd, err.Error())
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	reportingCommand := common.ReportingCommand{
		Cmd:        cmd,
		TableNames: report.FamilyTables,
		SourceFunc: getSource,
	}
	return reportingCommand.Run()
}

func getSource(cmd *cobra.Command) (table.Source, error) {
	families, err := parseFamilies(flagFamilies)
	if err != nil {
		return table.Source{}, err
	}
	return table.Source{Families: families, LLVMMajor: asic.DefaultLLVMMajor}, nil
}

// parseFamilies returns the named families in the order given, or every
// registered family when none are named. Unregistered ids have no revision
// table and are rejected.
func parseFamilies(names []string) ([]asic.Family, error) {
	if len(names) == 0 {
		return asic.AllFamilies(), nil
	}
	families := []asic.Family{}
	for _, name := range names {
		family, err := asic.ParseFamily(name)
		if err != nil {
			return nil, err
		}
		if !family.IsKnown() {
			return nil, fmt.Errorf("family has no revision table: %s", name)
		}
		families = append(families, family)
	}
	return families, nil
}
