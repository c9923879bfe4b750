// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"fmt"

	"gopkg.in/yaml.v2"

	"gpuspect/internal/table"
)

// createYamlReport keeps tables and fields in report order, unlike the json
// report whose keys are sorted.
func createYamlReport(allTableValues []table.TableValues) (out []byte, err error) {
	var oReport yaml.MapSlice
	for _, tableValues := range allTableValues {
		var records []yaml.MapSlice
		numRecords := 0
		if len(tableValues.Fields) > 0 {
			numRecords = len(tableValues.Fields[0].Values)
		}
		for recordIdx := range numRecords {
			var record yaml.MapSlice
			for _, field := range tableValues.Fields {
				record = append(record, yaml.MapItem{Key: field.Name, Value: field.Values[recordIdx]})
			}
			records = append(records, record)
		}
		if records == nil {
			records = []yaml.MapSlice{}
		}
		oReport = append(oReport, yaml.MapItem{Key: tableValues.Name, Value: records})
	}
	out, err = yaml.Marshal(oReport)
	if err != nil {
		err = fmt.Errorf("failed to marshal yaml report: %w", err)
	}
	return
}
