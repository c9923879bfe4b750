// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"

	"gpuspect/internal/table"
)

func createTextReport(allTableValues []table.TableValues) (out []byte, err error) {
	var sb strings.Builder
	for _, tableValues := range allTableValues {
		sb.WriteString(fmt.Sprintf("%s\n", tableValues.Name))
		sb.WriteString(strings.Repeat("=", len(tableValues.Name)))
		sb.WriteString("\n")
		if len(tableValues.Fields) == 0 || len(tableValues.Fields[0].Values) == 0 {
			msg := NoDataFound
			if tableValues.NoDataFound != "" {
				msg = tableValues.NoDataFound
			}
			sb.WriteString(msg + "\n\n")
			continue
		}
		// custom renderer defined?
		if renderer := tableValues.TextTableRendererFunc; renderer != nil {
			sb.WriteString(renderer(tableValues))
		} else {
			sb.WriteString(DefaultTextTableRendererFunc(tableValues))
		}
		sb.WriteString("\n")
	}
	out = []byte(sb.String())
	return
}

// DefaultTextTableRendererFunc renders row tables with column headings and
// other tables as a list of "name: value" lines.
func DefaultTextTableRendererFunc(tableValues table.TableValues) string {
	var sb strings.Builder
	if tableValues.HasRows {
		writer := tablewriter.NewWriter(&sb)
		setBorderlessTable(writer)
		header := make([]string, 0, len(tableValues.Fields))
		for _, field := range tableValues.Fields {
			header = append(header, field.Name)
		}
		writer.SetHeader(header)
		numRows := len(tableValues.Fields[0].Values)
		for row := range numRows {
			record := make([]string, 0, len(tableValues.Fields))
			for _, field := range tableValues.Fields {
				record = append(record, field.Values[row])
			}
			writer.Append(record)
		}
		writer.Render()
	} else {
		// get the longest field name to format the table nicely
		maxFieldNameLen := 0
		for _, field := range tableValues.Fields {
			if len(field.Name) > maxFieldNameLen {
				maxFieldNameLen = len(field.Name)
			}
		}
		// print the field names followed by their value
		for _, field := range tableValues.Fields {
			var value string
			if len(field.Values) > 0 {
				value = field.Values[0]
			}
			sb.WriteString(fmt.Sprintf("%s%-*s %s\n", field.Name, maxFieldNameLen-len(field.Name)+1, ":", value))
		}
	}
	return sb.String()
}

func setBorderlessTable(writer *tablewriter.Table) {
	writer.SetBorder(false)
	writer.SetAutoFormatHeaders(false)
	writer.SetAutoWrapText(false)
	writer.SetAlignment(tablewriter.ALIGN_LEFT)
	writer.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	writer.SetHeaderLine(true)
	writer.SetCenterSeparator("")
	writer.SetColumnSeparator("")
	writer.SetRowSeparator("-")
	writer.SetTablePadding("   ")
	writer.SetNoWhiteSpace(true)
}
