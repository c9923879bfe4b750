// Package list is a subcommand of the root command. It lists the known ASICs
// and their capabilities.
package list

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	"log/slog"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/spf13/cobra"

	"gpuspect/internal/asic"
	"gpuspect/internal/common"
	"gpuspect/internal/filter"
	"gpuspect/internal/report"
	"gpuspect/internal/table"
)

const cmdName = "list"

var examples = []string{
	fmt.Sprintf("  List all ASICs:                 $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  List ASICs of two generations:  $ %s %s --class GFX11,GFX11_5", common.AppName, cmdName),
	fmt.Sprintf("  List ASICs matching a filter:   $ %s %s --filter \"L3CacheSizeMBPerChannel > 0 && Class == 'GFX10_3'\"", common.AppName, cmdName),
	fmt.Sprintf("  List ASICs with a rank window:  $ %s %s --filter \"atLeast(Rank, 'NAVI10') && atMost(Rank, 'NAVI24')\"", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "List known ASICs and their capabilities",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

// flag vars
var (
	flagClass  []string
	flagFilter string
	flagDetail bool
)

// flag names
const (
	flagClassName  = "class"
	flagFilterName = "filter"
	flagDetailName = "detail"
)

func init() {
	Cmd.Flags().StringSliceVar(&flagClass, flagClassName, []string{}, "")
	Cmd.Flags().StringVar(&flagFilter, flagFilterName, "", "")
	Cmd.Flags().BoolVar(&flagDetail, flagDetailName, false, "")
	common.AddLLVMFlag(Cmd)

	Cmd.SetUsageFunc(common.NewUsageFunc(getFlagGroups))
}

func getFlagGroups() []common.FlagGroup {
	classNames := []string{}
	for _, class := range asic.AllClasses() {
		classNames = append(classNames, class.String())
	}
	return []common.FlagGroup{
		{
			GroupName: "Selection Options",
			Flags: []common.Flag{
				{Name: flagClassName, Help: fmt.Sprintf("include only ASICs of the chip class(es): %s", strings.Join(classNames, ", "))},
				{Name: flagFilterName, Help: "include only ASICs for which the expression over their capabilities is true"},
			},
		},
		{
			GroupName: "Other Options",
			Flags: []common.Flag{
				{Name: flagDetailName, Help: "include the compute, cache and compiler tables"},
				common.GetLLVMFlag(),
			},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	for _, class := range flagClass {
		if _, err := asic.ParseChipClass(class); err != nil {
			return common.FlagValidationError(cmd, err.Error())
		}
	}
	if err := common.ValidateLLVMFlag(cmd); err != nil {
		return err
	}
	if flagFilter != "" {
		if _, err := filter.New(flagFilter, common.FlagLLVMMajor); err != nil {
			return common.FlagValidationError(cmd, err.Error())
		}
	}
	return nil
}

func runCmd(cmd *cobra.Command, args []string) error {
	tableNames := []string{report.VariantTableName}
	if flagDetail {
		tableNames = report.CatalogTables
	}
	reportingCommand := common.ReportingCommand{
		Cmd:          cmd,
		TableNames:   tableNames,
		SourceFunc:   getSource,
		InsightsFunc: report.InsightsTableValues,
	}
	return reportingCommand.Run()
}

func getSource(cmd *cobra.Command) (table.Source, error) {
	variants, err := selectVariants(flagClass, flagFilter, common.FlagLLVMMajor)
	if err != nil {
		return table.Source{}, err
	}
	chips := make([]table.Chip, 0, len(variants))
	for _, v := range variants {
		chips = append(chips, table.Chip{
			Label: v.Name(),
			Match: asic.Match{Variant: v, Row: -1},
		})
	}
	return table.Source{Chips: chips, LLVMMajor: common.FlagLLVMMajor}, nil
}

// selectVariants returns the known variants, in rank order, that belong to one
// of the classes (all when none are given) and satisfy the filter expression.
func selectVariants(classNames []string, expression string, llvmMajor int) ([]asic.Variant, error) {
	classes := mapset.NewThreadUnsafeSet[asic.ChipClass]()
	for _, name := range classNames {
		class, err := asic.ParseChipClass(name)
		if err != nil {
			return nil, err
		}
		classes.Add(class)
	}
	variants := []asic.Variant{}
	for _, v := range asic.AllVariants() {
		if !v.IsKnown() {
			continue
		}
		if classes.Cardinality() > 0 && !classes.Contains(v.Class()) {
			continue
		}
		variants = append(variants, v)
	}
	if expression == "" {
		return variants, nil
	}
	f, err := filter.New(expression, llvmMajor)
	if err != nil {
		return nil, err
	}
	matched, err := f.Apply(variants)
	if err != nil {
		return nil, err
	}
	slog.Debug("filtered variants", slog.String("filter", expression), slog.Int("matched", len(matched)), slog.Int("total", len(variants)))
	return matched, nil
}
