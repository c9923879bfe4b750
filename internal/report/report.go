// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

// Package report provides functions to generate reports in various formats such as txt, json, yaml, xlsx, html.
package report

import (
	"fmt"
	"slices"
	"strings"

	"gpuspect/internal/table"
)

const (
	FormatTxt  = "txt"
	FormatJson = "json"
	FormatYaml = "yaml"
	FormatXlsx = "xlsx"
	FormatHtml = "html"
)

const NoDataFound = "No data found."

var FormatOptions = []string{FormatTxt, FormatJson, FormatYaml, FormatXlsx, FormatHtml}

// IsValidFormat reports whether format is one of FormatOptions.
func IsValidFormat(format string) bool {
	return slices.Contains(FormatOptions, format)
}

// Create generates a report in the specified format from the table values.
// The function ensures that all fields of a table have the same number of
// values before generating the report.
//
// Parameters:
// - format: The desired format of the report (txt, json, yaml, xlsx, html).
// - allTableValues: The values for each field in each table.
//
// Returns:
// - out: The generated report as a byte slice.
// - err: An error, if any occurred during report generation.
func Create(format string, allTableValues []table.TableValues) (out []byte, err error) {
	// make sure that all fields have the same number of values
	for _, tableValue := range allTableValues {
		numRows := -1
		for _, fieldValues := range tableValue.Fields {
			if numRows == -1 {
				numRows = len(fieldValues.Values)
				continue
			}
			if len(fieldValues.Values) != numRows {
				return nil, fmt.Errorf("expected %d value(s) for field, found %d", numRows, len(fieldValues.Values))
			}
		}
	}
	switch format {
	case FormatTxt:
		return createTextReport(allTableValues)
	case FormatJson:
		return createJsonReport(allTableValues)
	case FormatYaml:
		return createYamlReport(allTableValues)
	case FormatXlsx:
		return createXlsxReport(allTableValues)
	case FormatHtml:
		return createHtmlReport(allTableValues)
	}
	return nil, fmt.Errorf("expected one of %s, got %s", strings.Join(FormatOptions, ", "), format)
}
