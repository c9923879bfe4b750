package report

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"fmt"
	htmltemplate "html/template"
	"strings"

	"gpuspect/internal/table"
)

func getHtmlReportBegin() string {
	var sb strings.Builder
	sb.WriteString(`<!DOCTYPE html>
<html lang="en">
`)
	sb.WriteString("<head>\n")
	sb.WriteString(`    <meta charset="UTF-8">
    <title>GPUSpect</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
`)
	sb.WriteString(`	<style>
		body { font-family: sans-serif; margin: 2em; }
		nav a { margin-right: 1em; }
		table.report-table { border-collapse: collapse; margin-bottom: 2em; }
		table.report-table th, table.report-table td { border: 1px solid #cbcbcb; padding: 0.3em 0.8em; text-align: left; }
		table.report-table thead { background-color: #e0e0e0; }
		table.report-table tbody tr:nth-child(2n-1) td { background-color: #f2f2f2; }
	</style>
`)
	sb.WriteString("</head>\n")
	return sb.String()
}

func getHtmlReportMenu(allTableValues []table.TableValues) string {
	var sb strings.Builder
	sb.WriteString("<nav>\n")
	for _, tableValues := range allTableValues {
		name := htmltemplate.HTMLEscapeString(tableValues.Name)
		sb.WriteString(fmt.Sprintf("<a href=\"#%s\">%s</a>\n", tableAnchor(tableValues.Name), name))
	}
	sb.WriteString("</nav>\n")
	return sb.String()
}

// tableAnchor turns a table name into an id attribute value.
func tableAnchor(tableName string) string {
	return htmltemplate.HTMLEscapeString(strings.ReplaceAll(strings.ToLower(tableName), " ", "-"))
}

func createHtmlReport(allTableValues []table.TableValues) (out []byte, err error) {
	var sb strings.Builder
	sb.WriteString(getHtmlReportBegin())
	sb.WriteString("<body>\n")
	sb.WriteString("<h1>GPUSpect</h1>\n")
	sb.WriteString(getHtmlReportMenu(allTableValues))
	for _, tableValues := range allTableValues {
		sb.WriteString(fmt.Sprintf("<h2 id=\"%s\">%s</h2>\n", tableAnchor(tableValues.Name), htmltemplate.HTMLEscapeString(tableValues.Name)))
		// if there's no data in the table, print a message and continue
		if len(tableValues.Fields) == 0 || len(tableValues.Fields[0].Values) == 0 {
			msg := NoDataFound
			if tableValues.NoDataFound != "" {
				msg = tableValues.NoDataFound
			}
			sb.WriteString("<p>" + htmltemplate.HTMLEscapeString(msg) + "</p>\n")
			continue
		}
		if renderer := tableValues.HTMLTableRendererFunc; renderer != nil {
			sb.WriteString(renderer(tableValues))
		} else {
			sb.WriteString(DefaultHTMLTableRendererFunc(tableValues))
		}
		sb.WriteString("\n")
	}
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
	out = []byte(sb.String())
	return
}

// CreateFieldNameWithDescription creates HTML for a field name with an optional description tooltip
func CreateFieldNameWithDescription(fieldName, description string) string {
	if description == "" {
		return htmltemplate.HTMLEscapeString(fieldName)
	}
	return `<span title="` + htmltemplate.HTMLEscapeString(description) + `">` + htmltemplate.HTMLEscapeString(fieldName) + `</span>`
}

// RenderHTMLTable renders pre-escaped headers and values as an HTML table.
func RenderHTMLTable(tableHeaders []string, tableValues [][]string, class string, valuesStyle [][]string) string {
	var sb strings.Builder
	sb.WriteString(`<table class="` + class + `">`)
	if len(tableHeaders) > 0 {
		sb.WriteString(`<thead><tr>`)
		for _, label := range tableHeaders {
			sb.WriteString(`<th>` + label + `</th>`)
		}
		sb.WriteString(`</tr></thead>`)
	}
	sb.WriteString(`<tbody>`)
	for rowIdx, rowValues := range tableValues {
		sb.WriteString(`<tr>`)
		for colIdx, value := range rowValues {
			var style string
			if len(valuesStyle) > rowIdx && len(valuesStyle[rowIdx]) > colIdx {
				style = ` style="` + valuesStyle[rowIdx][colIdx] + `"`
			}
			sb.WriteString(`<td` + style + `>` + value + `</td>`)
		}
		sb.WriteString(`</tr>`)
	}
	sb.WriteString(`</tbody>`)
	sb.WriteString(`</table>`)
	return sb.String()
}

func DefaultHTMLTableRendererFunc(tableValues table.TableValues) string {
	if tableValues.HasRows { // print the field names as column headings across the top of the table
		headers := []string{}
		for _, field := range tableValues.Fields {
			headers = append(headers, CreateFieldNameWithDescription(field.Name, field.Description))
		}
		values := [][]string{}
		for row := range tableValues.Fields[0].Values {
			rowValues := []string{}
			for _, field := range tableValues.Fields {
				rowValues = append(rowValues, htmltemplate.HTMLEscapeString(field.Values[row]))
			}
			values = append(values, rowValues)
		}
		return RenderHTMLTable(headers, values, "report-table", [][]string{})
	}
	// print the field name followed by its value
	values := [][]string{}
	var tableValueStyles [][]string
	for _, field := range tableValues.Fields {
		rowValues := []string{CreateFieldNameWithDescription(field.Name, field.Description)}
		if len(field.Values) > 0 {
			rowValues = append(rowValues, htmltemplate.HTMLEscapeString(field.Values[0]))
		} else {
			rowValues = append(rowValues, "")
		}
		values = append(values, rowValues)
		tableValueStyles = append(tableValueStyles, []string{"font-weight:bold"})
	}
	return RenderHTMLTable([]string{}, values, "report-table", tableValueStyles)
}
