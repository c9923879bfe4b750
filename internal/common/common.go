// Package common defines data structures and functions that are used by multiple
// application commands, e.g., asic, list, families, device.
package common

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"gpuspect/internal/report"
	"gpuspect/internal/table"
)

var AppName = filepath.Base(os.Args[0])

// AppContext represents the application context that can be accessed from all commands.
type AppContext struct {
	Timestamp   string // Timestamp is the application startup time.
	LogFilePath string // LogFilePath is the path to the log file, empty when not logging to a file.
	Version     string // Version is the version of the application.
}

type Flag struct {
	Name string
	Help string
}
type FlagGroup struct {
	GroupName string
	Flags     []Flag
}

const (
	TableNameGpuspect = "gpuspect"
)

var (
	FlagFormat string
	FlagOutput string
)

const (
	FlagFormatName = "format"
	FlagOutputName = "output"
)

// SourceFunc builds the table source from the command's flags.
type SourceFunc func(cmd *cobra.Command) (table.Source, error)

// InsightsFunc builds the insights table from the processed tables.
type InsightsFunc func([]table.TableValues) table.TableValues

type ReportingCommand struct {
	Cmd          *cobra.Command
	TableNames   []string
	SourceFunc   SourceFunc
	InsightsFunc InsightsFunc
}

// Run is the common flow/logic for all reporting commands, i.e., 'asic', 'list', 'families', 'device'
// The individual commands populate the ReportingCommand struct with the details specific to the command
// and then call this Run function.
func (rc *ReportingCommand) Run() error {
	appContext := GetAppContext(rc.Cmd)
	source, err := rc.SourceFunc(rc.Cmd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		rc.Cmd.SilenceUsage = true
		return err
	}
	allTableValues := report.ProcessTables(rc.TableNames, source)
	// special case - add tableValues for Insights, only when there are some
	if rc.InsightsFunc != nil {
		insightsTableValues := rc.InsightsFunc(allTableValues)
		if len(insightsTableValues.Fields) > 0 && len(insightsTableValues.Fields[0].Values) > 0 {
			allTableValues = append(allTableValues, insightsTableValues)
		}
	}
	// special case - add tableValues for the application version
	allTableValues = append(allTableValues, applicationTableValues(appContext))
	reportBytes, err := report.Create(FlagFormat, allTableValues)
	if err != nil {
		err = fmt.Errorf("failed to create report: %w", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		rc.Cmd.SilenceUsage = true
		return err
	}
	if err := WriteReport(rc.Cmd.OutOrStdout(), reportBytes, FlagFormat, FlagOutput); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		rc.Cmd.SilenceUsage = true
		return err
	}
	return nil
}

// applicationTableValues describes the run that produced the report.
func applicationTableValues(appContext AppContext) table.TableValues {
	fields := []table.Field{
		{Name: "Version", Values: []string{appContext.Version}},
		{Name: "Args", Values: []string{strings.Join(os.Args, " ")}},
		{Name: "Started", Values: []string{appContext.Timestamp}},
	}
	if appContext.LogFilePath != "" {
		fields = append(fields, table.Field{Name: "Log File", Values: []string{appContext.LogFilePath}})
	}
	return table.TableValues{
		TableDefinition: table.TableDefinition{
			Name: TableNameGpuspect,
		},
		Fields: fields,
	}
}

// GetAppContext returns the application context set by the root command, or
// an empty context when the command runs without one, e.g., in tests.
func GetAppContext(cmd *cobra.Command) AppContext {
	for c := cmd; c != nil; c = c.Parent() {
		if ctx := c.Context(); ctx != nil {
			if appContext, ok := ctx.Value(AppContext{}).(AppContext); ok {
				return appContext
			}
		}
	}
	return AppContext{}
}

// WriteReport writes the report to the output file, or to stdout when no
// output file is given. Binary formats are not written to a terminal.
func WriteReport(stdout io.Writer, reportBytes []byte, format string, outputPath string) error {
	if outputPath == "" {
		if format == report.FormatXlsx && isTerminal(stdout) {
			return fmt.Errorf("refusing to write %s report to a terminal, use --%s", format, FlagOutputName)
		}
		_, err := stdout.Write(reportBytes)
		return err
	}
	err := os.WriteFile(outputPath, reportBytes, 0644) // #nosec G306
	if err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	slog.Info("report written", slog.String("path", outputPath), slog.String("format", format))
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// FlagValidationError is used to report an error with a flag
func FlagValidationError(cmd *cobra.Command, msg string) error {
	err := errors.New(msg)
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	fmt.Fprintf(os.Stderr, "See '%s --help' for usage details.\n", cmd.CommandPath())
	cmd.SilenceUsage = true
	return err
}

// ValidateFormat checks the global --format flag.
func ValidateFormat(cmd *cobra.Command) error {
	if !report.IsValidFormat(FlagFormat) {
		return FlagValidationError(cmd, fmt.Sprintf("format options are: %s", strings.Join(report.FormatOptions, ", ")))
	}
	return nil
}
