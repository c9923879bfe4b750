// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

package report

import (
	"encoding/json"

	"gpuspect/internal/table"
)

type outRecord map[string]string
type outTable []outRecord
type outReport map[string]outTable

// reportRecords converts the table values into one record per row, keyed by
// field name. A table without rows gets a single empty record.
func reportRecords(allTableValues []table.TableValues) outReport {
	oReport := make(outReport)
	for _, tableValues := range allTableValues {
		oTable := outTable{}
		if len(tableValues.Fields) == 0 {
			oReport[tableValues.Name] = oTable
			continue
		}
		numRecords := len(tableValues.Fields[0].Values)
		if numRecords > 0 {
			for recordIdx := range numRecords {
				oRecord := make(outRecord)
				for _, field := range tableValues.Fields {
					oRecord[field.Name] = field.Values[recordIdx]
				}
				oTable = append(oTable, oRecord)
			}
		} else {
			// insert an empty record
			oRecord := make(outRecord)
			for _, field := range tableValues.Fields {
				oRecord[field.Name] = ""
			}
			oTable = append(oTable, oRecord)
		}
		oReport[tableValues.Name] = oTable
	}
	return oReport
}

func createJsonReport(allTableValues []table.TableValues) (out []byte, err error) {
	return json.MarshalIndent(reportRecords(allTableValues), "", " ")
}
