package common

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"gpuspect/internal/asic"
	"gpuspect/internal/util"
)

var (
	FlagLLVMMajor int
	FlagSysfs     string
)

const (
	FlagLLVMMajorName = "llvm"
	FlagSysfsName     = "sysfs"
)

// oldest LLVM release with AMDGPU processor names
const minLLVMMajor = 3

func AddLLVMFlag(cmd *cobra.Command) {
	cmd.Flags().IntVar(&FlagLLVMMajor, FlagLLVMMajorName, asic.DefaultLLVMMajor, "")
}

func GetLLVMFlag() Flag {
	return Flag{Name: FlagLLVMMajorName, Help: "LLVM major version used to select compiler processor names"}
}

func ValidateLLVMFlag(cmd *cobra.Command) error {
	if FlagLLVMMajor < minLLVMMajor {
		return FlagValidationError(cmd, fmt.Sprintf("--%s must be at least %d", FlagLLVMMajorName, minLLVMMajor))
	}
	return nil
}

func AddSysfsFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&FlagSysfs, FlagSysfsName, "/sys", "")
}

func GetSysfsFlag() Flag {
	return Flag{Name: FlagSysfsName, Help: "sysfs mount point to enumerate GPUs from"}
}

func ValidateSysfsFlag(cmd *cobra.Command) error {
	exists, err := util.DirectoryExists(FlagSysfs)
	if err != nil {
		return FlagValidationError(cmd, err.Error())
	}
	if !exists {
		return FlagValidationError(cmd, fmt.Sprintf("sysfs directory does not exist: %s", FlagSysfs))
	}
	return nil
}

// NewUsageFunc renders the command's flags in groups followed by the global flags.
func NewUsageFunc(getFlagGroups func() []FlagGroup) func(cmd *cobra.Command) error {
	return func(cmd *cobra.Command) error {
		cmd.Printf("Usage: %s [flags]\n\n", cmd.CommandPath())
		if cmd.Example != "" {
			cmd.Printf("Examples:\n%s\n\n", cmd.Example)
		}
		cmd.Println("Flags:")
		for _, group := range getFlagGroups() {
			cmd.Printf("  %s:\n", group.GroupName)
			for _, flag := range group.Flags {
				flagDefault := ""
				if cmd.Flags().Lookup(flag.Name).DefValue != "" {
					flagDefault = fmt.Sprintf(" (default: %s)", cmd.Flags().Lookup(flag.Name).DefValue)
				}
				cmd.Printf("    --%-20s %s%s\n", flag.Name, flag.Help, flagDefault)
			}
		}
		cmd.Println("\nGlobal Flags:")
		cmd.Root().PersistentFlags().VisitAll(func(pf *pflag.Flag) {
			flagDefault := ""
			if pf.DefValue != "" && pf.DefValue != "false" {
				flagDefault = fmt.Sprintf(" (default: %s)", pf.DefValue)
			}
			cmd.Printf("  --%-20s %s%s\n", pf.Name, pf.Usage, flagDefault)
		})
		return nil
	}
}
