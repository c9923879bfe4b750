// Package serve is a subcommand of the root command. It exports the
// classification of the local amdgpu devices as Prometheus metrics.
package serve

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gpuspect/internal/common"
	"gpuspect/internal/device"
	"gpuspect/internal/exporter"
)

const cmdName = "serve"

var examples = []string{
	fmt.Sprintf("  Serve metrics on the default port:  $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  Serve on localhost, refresh 1m:     $ %s %s --listen 127.0.0.1:9101 --interval 1m", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Export amdgpu device classification as Prometheus metrics",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "other",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

// flag vars
var (
	flagListen   string
	flagInterval time.Duration
)

// flag names
const (
	flagListenName   = "listen"
	flagIntervalName = "interval"
)

const minInterval = time.Second

func init() {
	Cmd.Flags().StringVar(&flagListen, flagListenName, ":9101", "")
	Cmd.Flags().DurationVar(&flagInterval, flagIntervalName, 30*time.Second, "")
	common.AddSysfsFlag(Cmd)

	Cmd.SetUsageFunc(common.NewUsageFunc(getFlagGroups))
}

func getFlagGroups() []common.FlagGroup {
	return []common.FlagGroup{
		{
			GroupName: "Server Options",
			Flags: []common.Flag{
				{Name: flagListenName, Help: "address the metrics server listens on"},
				{Name: flagIntervalName, Help: "time between device refreshes"},
			},
		},
		{
			GroupName: "Device Options",
			Flags:     []common.Flag{common.GetSysfsFlag()},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if _, _, err := net.SplitHostPort(flagListen); err != nil {
		return common.FlagValidationError(cmd, fmt.Sprintf("invalid listen address %s: %v", flagListen, err))
	}
	if flagInterval < minInterval {
		return common.FlagValidationError(cmd, fmt.Sprintf("--%s must be at least %s", flagIntervalName, minInterval))
	}
	return common.ValidateSysfsFlag(cmd)
}

func runCmd(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	prober := device.NewProberFrom(common.FlagSysfs, device.NewQuerier())
	err := exporter.New(prober).Serve(ctx, flagListen, flagInterval)
	if err != nil {
		err = fmt.Errorf("metrics server failed: %w", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		cmd.SilenceUsage = true
		return err
	}
	return nil
}
